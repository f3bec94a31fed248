package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tiafledger/core"
	"tiafledger/core/query"
	"tiafledger/wire"
)

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *Server) handleChain(w http.ResponseWriter, _ *http.Request) {
	var blocks []core.Block
	s.Chain.ForEach(func(b core.Block) bool {
		blocks = append(blocks, b)
		return true
	})
	writeJSON(w, http.StatusOK, wire.ChainFull{Blocks: blocks})
}

func (s *Server) handleChainTail(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseUint(mux.Vars(r)["n"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "n must be a non-negative integer")
		return
	}
	blocks := s.Chain.Tail(n)
	writeJSON(w, http.StatusOK, wire.ChainPartial{PartialBlocks: blocks, TotalLength: s.Chain.Len()})
}

func (s *Server) handleChainSince(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["hash"]
	blocks := s.Chain.Since(hash)
	writeJSON(w, http.StatusOK, wire.ChainPartial{PartialBlocks: blocks, TotalLength: s.Chain.Len()})
}

func (s *Server) handleChainCompare(w http.ResponseWriter, r *http.Request) {
	var body wire.ChainFull
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid chain payload")
		return
	}
	result := s.Chain.CompareOtherChain(body.Blocks)
	resp := wire.CompareResponse{}
	switch {
	case result.Invalid:
		resp.Result = wire.CompareInvalid
		resp.Reason = result.Reason
	case result.Longer:
		resp.Result = wire.CompareLonger
	default:
		resp.Result = wire.CompareShorterOrSame
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatistics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, wire.Statistics{
		NodeID:          s.NodeID,
		ChainLength:     s.Chain.Len(),
		PoolSize:        s.Pool.Length(),
		UpstreamCount:   s.Upstreams.Count(),
		DownstreamCount: s.Downstreams.Count(),
	})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	var body wire.DataRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid data payload")
		return
	}
	rec := core.NewRecord(body.Data)
	if err := s.Pool.Put(rec); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okEnvelope())
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	var rec core.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record payload")
		return
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Pool.Put(rec); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okEnvelope())
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	q, err := query.New(text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	matched := s.Chain.Query(q.Compile())
	writeJSON(w, http.StatusOK, matched)
}

func statusFor(err error) int {
	if core.AsKind(err, core.KindConflict) {
		return http.StatusConflict
	}
	if core.AsKind(err, core.KindValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
