// Package httpapi is the HTTP boundary: it turns the core chain,
// mempool, and peer registries into the named operations in the
// spec's interface table. Routing, CORS, and status mapping live here
// and nowhere else — core itself never imports net/http.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"tiafledger/core"
)

// Server wires the chain, mempool, and peer registries to a
// gorilla/mux router.
type Server struct {
	Chain       *core.Chain
	Pool        *core.MemPool
	Upstreams   *core.Upstreams
	Downstreams *core.Downstreams
	NodeID      string
	AdminKey    string
	Logger      *logrus.Logger

	router     *mux.Router
	httpServer *http.Server
}

// New builds the router and the underlying http.Server bound to addr.
func New(addr string, s *Server) *Server {
	s.router = mux.NewRouter()
	s.router.Use(corsMiddleware)
	s.router.Use(loggingMiddleware(s.Logger))
	s.routes()
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

// ListenAndServe starts serving; it blocks until the server stops.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the underlying http.Server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
