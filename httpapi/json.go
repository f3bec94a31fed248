package httpapi

import (
	"encoding/json"
	"net/http"

	"tiafledger/wire"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, wire.ErrorEnvelope{Error: message})
}

func okEnvelope() wire.OK { return wire.OK{OK: true} }
