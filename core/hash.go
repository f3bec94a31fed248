package core

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Genesis/sealing sentinels. These must round-trip bit-exactly across
// nodes, so they are plain string constants rather than derived values.
const (
	// GenesisPreviousHash is the previous-hash literal stored on the
	// block at index 0.
	GenesisPreviousHash = "EIN SOF"
	// blockInitHash is the hash a Block carries before seal() runs.
	blockInitHash = "BLOCK_INIT_HASH"
	// recordInitHash is the hash a Record carries before it is hashed.
	recordInitHash = "rec-init"
)

// sum256Hex hashes the concatenation of parts with SHA3-256 and renders
// the digest as lowercase hex. The exact byte layout of parts is the
// caller's responsibility — Record and Block each define their own
// canonical ordering.
func sum256Hex(parts ...[]byte) string {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func beUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
