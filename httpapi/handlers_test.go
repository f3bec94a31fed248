package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"tiafledger/core"
	"tiafledger/wire"
)

func newTestServer() *Server {
	logger := logrus.New()
	logger.SetOutput(testDiscard{})
	return New(":0", &Server{
		Chain:       core.NewChain(),
		Pool:        core.NewMemPool(1024),
		Upstreams:   core.NewUpstreams(),
		Downstreams: core.NewDownstreams(),
		NodeID:      "test-node",
		AdminKey:    "secret",
		Logger:      logger,
	})
}

type testDiscard struct{}

func (testDiscard) Write(p []byte) (int, error) { return len(p), nil }

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	srv := newTestServer()
	rr := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("expected 200 OK body, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestPreflightOptionsReturnsOK(t *testing.T) {
	srv := newTestServer()
	rr := doRequest(t, srv, http.MethodOptions, "/api/v1/chain", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS header on preflight response")
	}
}

func TestDataEndpointAcceptsAndPoolsRecord(t *testing.T) {
	srv := newTestServer()
	body, _ := json.Marshal(wire.DataRequest{Data: `{"x":"1"}`})
	rr := doRequest(t, srv, http.MethodPost, "/api/v1/data", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if srv.Pool.Length() != 1 {
		t.Fatalf("expected pool length 1, got %d", srv.Pool.Length())
	}
}

func TestRecordEndpointRejectsInvalidHash(t *testing.T) {
	srv := newTestServer()
	rec := core.NewRecord("x")
	rec.Entry = "tampered"
	body, _ := json.Marshal(rec)
	rr := doRequest(t, srv, http.MethodPost, "/api/v1/record", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for tampered record, got %d", rr.Code)
	}
}

func TestAdminEndpointRequiresKey(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/upstream", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin key, got %d", rr.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/admin/upstream", nil)
	req2.Header.Set("X-TIAF-ADMIN-KEY", "secret")
	rr2 := httptest.NewRecorder()
	srv.router.ServeHTTP(rr2, req2)
	if rr2.Code != http.StatusOK {
		t.Fatalf("expected 200 with correct admin key, got %d", rr2.Code)
	}
}

func TestAdminUpstreamAddAndRemove(t *testing.T) {
	srv := newTestServer()
	add, _ := json.Marshal(wire.PeerSet{URLs: []string{"http://peer:8080"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/upstream", bytes.NewReader(add))
	req.Header.Set("X-TIAF-ADMIN-KEY", "secret")
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 adding upstream, got %d", rr.Code)
	}
	if srv.Upstreams.Count() != 1 {
		t.Fatalf("expected 1 upstream after add, got %d", srv.Upstreams.Count())
	}

	req2 := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/upstream", bytes.NewReader(add))
	req2.Header.Set("X-TIAF-ADMIN-KEY", "secret")
	rr2 := httptest.NewRecorder()
	srv.router.ServeHTTP(rr2, req2)
	if rr2.Code != http.StatusOK {
		t.Fatalf("expected 200 removing upstream, got %d", rr2.Code)
	}
	if srv.Upstreams.Count() != 0 {
		t.Fatalf("expected 0 upstreams after remove, got %d", srv.Upstreams.Count())
	}
}

func TestChainTailInvalidN(t *testing.T) {
	srv := newTestServer()
	rr := doRequest(t, srv, http.MethodGet, "/api/v1/chain/tail/notanumber", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected mux to 404 on non-numeric n, got %d", rr.Code)
	}
}

func TestQueryEndpointBadExpression(t *testing.T) {
	srv := newTestServer()
	rr := doRequest(t, srv, http.MethodGet, "/api/v1/query?q=1%2B", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed query, got %d", rr.Code)
	}
}

func TestStatisticsReportsChainLength(t *testing.T) {
	srv := newTestServer()
	rr := doRequest(t, srv, http.MethodGet, "/api/v1/statistics", nil)
	var stats wire.Statistics
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if stats.ChainLength != 1 {
		t.Fatalf("expected chain length 1 for a fresh chain, got %d", stats.ChainLength)
	}
}
