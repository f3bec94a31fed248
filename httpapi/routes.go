package httpapi

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods("GET", "OPTIONS")

	s.router.HandleFunc("/api/v1/chain", s.handleChain).Methods("GET", "OPTIONS")
	s.router.HandleFunc("/api/v1/chain/tail/{n:[0-9]+}", s.handleChainTail).Methods("GET", "OPTIONS")
	s.router.HandleFunc("/api/v1/chain/since/{hash}", s.handleChainSince).Methods("GET", "OPTIONS")
	s.router.HandleFunc("/api/v1/chain/compare", s.handleChainCompare).Methods("POST", "OPTIONS")

	s.router.HandleFunc("/api/v1/statistics", s.handleStatistics).Methods("GET", "OPTIONS")

	s.router.HandleFunc("/api/v1/data", s.handleData).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/v1/record", s.handleRecord).Methods("POST", "OPTIONS")

	s.router.HandleFunc("/api/v1/query", s.handleQuery).Methods("GET", "OPTIONS")

	s.router.HandleFunc("/api/v1/admin/upstream", s.adminAuth(s.handleAdminUpstreamGet)).Methods("GET", "OPTIONS")
	s.router.HandleFunc("/api/v1/admin/upstream", s.adminAuth(s.handleAdminUpstreamPost)).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/v1/admin/upstream", s.adminAuth(s.handleAdminUpstreamDelete)).Methods("DELETE", "OPTIONS")
	s.router.HandleFunc("/api/v1/admin/upstream/toggle", s.adminAuth(s.handleAdminUpstreamToggle)).Methods("POST", "OPTIONS")

	s.router.HandleFunc("/api/v1/admin/downstream", s.adminAuth(s.handleAdminDownstreamGet)).Methods("GET", "OPTIONS")
	s.router.HandleFunc("/api/v1/admin/downstream", s.adminAuth(s.handleAdminDownstreamPost)).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/v1/admin/downstream", s.adminAuth(s.handleAdminDownstreamDelete)).Methods("DELETE", "OPTIONS")
	s.router.HandleFunc("/api/v1/admin/downstream/toggle", s.adminAuth(s.handleAdminDownstreamToggle)).Methods("POST", "OPTIONS")
}
