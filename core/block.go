package core

import (
	"strconv"
	"time"
)

// Block is a hash-linked batch of records at a fixed index in the
// chain. Index 0 is always the genesis block, whose PreviousHash is
// the sentinel GenesisPreviousHash.
type Block struct {
	Index        uint64   `json:"index"`
	PreviousHash string   `json:"previous_hash"`
	Timestamp    uint64   `json:"timestamp"`
	Data         []Record `json:"data"`
	Hash         string   `json:"hash"`
}

// GenesisBlock returns the block at index 0: previous hash EIN SOF,
// data containing exactly the genesis record, sealed.
func GenesisBlock() Block {
	b := Block{
		Index:        0,
		PreviousHash: GenesisPreviousHash,
		Timestamp:    0,
		Data:         []Record{GenesisRecord()},
		Hash:         blockInitHash,
	}
	b.seal()
	return b
}

// NewBlock builds and seals a block at index, chained to previousHash,
// containing records. records must be non-empty; callers (the chain)
// are responsible for guarding that before calling NewBlock.
func NewBlock(index uint64, previousHash string, records []Record) Block {
	b := Block{
		Index:        index,
		PreviousHash: previousHash,
		Timestamp:    uint64(time.Now().UnixMilli()),
		Data:         records,
		Hash:         blockInitHash,
	}
	b.seal()
	return b
}

// seal computes and fixes the block's hash over
// big_endian(timestamp) || previous_hash_bytes || concat(record hashes).
func (b *Block) seal() {
	parts := make([][]byte, 0, 2+len(b.Data))
	parts = append(parts, beUint64(b.Timestamp), []byte(b.PreviousHash))
	for _, r := range b.Data {
		parts = append(parts, []byte(r.Hash))
	}
	b.Hash = sum256Hex(parts...)
}

func (b Block) recomputeHash() string {
	cp := b
	cp.seal()
	return cp.Hash
}

// Equal reports whether both blocks have been sealed (neither carries
// the pre-hash sentinel) and their hashes match.
func (b Block) Equal(other Block) bool {
	if b.Hash == blockInitHash || other.Hash == blockInitHash {
		return false
	}
	return b.Hash == other.Hash
}

// Validate enforces the block-level invariants from the data model:
// non-empty data, genesis/non-genesis previous-hash shape, the
// recorded hash matching the recomputed one, and every contained
// record validating.
func (b Block) Validate() error {
	if len(b.Data) == 0 {
		return newErr(KindValidation, "block has no records")
	}
	if b.Index == 0 && b.PreviousHash != GenesisPreviousHash {
		return newErr(KindValidation, "genesis block has wrong previous hash")
	}
	if b.Index > 0 && b.PreviousHash == "" {
		return newErr(KindValidation, "non-genesis block has empty previous hash")
	}
	if b.Hash == blockInitHash {
		return newErr(KindValidation, "block is not sealed")
	}
	if b.recomputeHash() != b.Hash {
		return newErr(KindValidation, "block hash mismatch")
	}
	for i, r := range b.Data {
		if err := r.Validate(); err != nil {
			return wrapErr(KindValidation, "record failed validation (index "+strconv.Itoa(i)+")", err)
		}
	}
	return nil
}
