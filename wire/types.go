// Package wire defines the JSON shapes carried across the HTTP
// boundary — both served by httpapi and consumed by the replication
// workers when they talk to peer nodes. Keeping them in one place
// means a puller and the handler it talks to can never drift apart.
package wire

import "tiafledger/core"

// ChainPartial is the response shape for both the tail and since
// endpoints: a run of blocks plus the reporting node's total chain
// length, so a requester can tell whether following up is worthwhile
// without re-fetching the whole chain.
type ChainPartial struct {
	PartialBlocks []core.Block `json:"partial_blocks"`
	TotalLength   uint64       `json:"total_length"`
}

// ChainFull is the whole-chain response/request shape used by
// GET /api/v1/chain and POST /api/v1/chain/compare.
type ChainFull struct {
	Blocks []core.Block `json:"blocks"`
}

// CompareResponse reports the verdict of comparing a posted candidate
// chain against the local one.
type CompareResponse struct {
	Result string `json:"result"`
	Reason string `json:"reason,omitempty"`
}

const (
	CompareLonger        = "Longer"
	CompareShorterOrSame = "ShorterOrSame"
	CompareInvalid       = "Invalid"
)

// DataRequest is the body of POST /api/v1/data.
type DataRequest struct {
	Data string `json:"data"`
}

// Statistics is the response shape for GET /api/v1/statistics.
type Statistics struct {
	NodeID          string `json:"node_id"`
	ChainLength     uint64 `json:"chain_length"`
	PoolSize        int    `json:"pool_size"`
	UpstreamCount   int    `json:"upstream_count"`
	DownstreamCount int    `json:"downstream_count"`
}

// OK is the generic success envelope used by endpoints with no
// meaningful payload.
type OK struct {
	OK bool `json:"ok"`
}

// ErrorEnvelope is the generic failure envelope.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// PeerSet is the admin request/response shape for listing or
// replacing a peer set.
type PeerSet struct {
	URLs     []string `json:"urls"`
	Sweeping bool     `json:"sweeping"`
}
