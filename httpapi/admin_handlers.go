package httpapi

import (
	"encoding/json"
	"net/http"

	"tiafledger/wire"
)

func (s *Server) handleAdminUpstreamGet(w http.ResponseWriter, _ *http.Request) {
	hosts := s.Upstreams.Snapshot()
	urls := make([]string, 0, len(hosts))
	for _, h := range hosts {
		urls = append(urls, h.URL)
	}
	writeJSON(w, http.StatusOK, wire.PeerSet{URLs: urls, Sweeping: s.Upstreams.IsSweeping()})
}

func (s *Server) handleAdminUpstreamPost(w http.ResponseWriter, r *http.Request) {
	var body wire.PeerSet
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid peer-set payload")
		return
	}
	for _, url := range body.URLs {
		s.Upstreams.Add(url)
	}
	writeJSON(w, http.StatusOK, okEnvelope())
}

func (s *Server) handleAdminUpstreamDelete(w http.ResponseWriter, r *http.Request) {
	var body wire.PeerSet
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid peer-set payload")
		return
	}
	for _, url := range body.URLs {
		s.Upstreams.Remove(url)
	}
	writeJSON(w, http.StatusOK, okEnvelope())
}

func (s *Server) handleAdminUpstreamToggle(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"sweeping": s.Upstreams.Toggle()})
}

func (s *Server) handleAdminDownstreamGet(w http.ResponseWriter, _ *http.Request) {
	hosts := s.Downstreams.Snapshot()
	urls := make([]string, 0, len(hosts))
	for _, h := range hosts {
		urls = append(urls, h.URL)
	}
	writeJSON(w, http.StatusOK, wire.PeerSet{URLs: urls, Sweeping: s.Downstreams.IsSweeping()})
}

func (s *Server) handleAdminDownstreamPost(w http.ResponseWriter, r *http.Request) {
	var body wire.PeerSet
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid peer-set payload")
		return
	}
	for _, url := range body.URLs {
		s.Downstreams.Add(url)
	}
	writeJSON(w, http.StatusOK, okEnvelope())
}

func (s *Server) handleAdminDownstreamDelete(w http.ResponseWriter, r *http.Request) {
	var body wire.PeerSet
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid peer-set payload")
		return
	}
	for _, url := range body.URLs {
		s.Downstreams.Remove(url)
	}
	writeJSON(w, http.StatusOK, okEnvelope())
}

func (s *Server) handleAdminDownstreamToggle(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"sweeping": s.Downstreams.Toggle()})
}
