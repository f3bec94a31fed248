package core

import (
	"encoding/json"
	"sync"
)

// CompareResult is the outcome of comparing a candidate chain (fetched
// from a peer) against the local one.
type CompareResult struct {
	Longer  bool
	Invalid bool
	Reason  string
}

// Chain is the ordered, hash-linked sequence of blocks rooted at the
// genesis block. All mutation goes through AppendRecords /
// AppendNewRecords / AppendBlocks; reads are served under a read lock.
type Chain struct {
	mu           sync.RWMutex
	blocks       map[uint64]Block
	length       uint64
	blockHashes  map[string]struct{}
	recordHashes map[string]struct{}
	maxVerified  uint64
}

// NewChain returns a chain containing only the genesis block, with its
// block hash and record hash already seeded into the known-hash sets.
func NewChain() *Chain {
	g := GenesisBlock()
	c := &Chain{
		blocks:       map[uint64]Block{0: g},
		length:       1,
		blockHashes:  map[string]struct{}{g.Hash: {}},
		recordHashes: map[string]struct{}{},
	}
	for _, r := range g.Data {
		c.recordHashes[r.Hash] = struct{}{}
	}
	return c
}

// Len returns the number of blocks in the chain.
func (c *Chain) Len() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.length
}

// Get returns the block at index i, or false if out of range.
func (c *Chain) Get(i uint64) (Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.blocks[i]
	return b, ok
}

func (c *Chain) head() Block {
	// caller must hold at least a read lock
	return c.blocks[c.length-1]
}

// Tail returns the last min(n, length) blocks in ascending index
// order.
func (c *Chain) Tail(n uint64) []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n > c.length {
		n = c.length
	}
	start := c.length - n
	out := make([]Block, 0, n)
	for i := start; i < c.length; i++ {
		out = append(out, c.blocks[i])
	}
	return out
}

// Since walks backwards from the head, collecting blocks until it
// meets one whose hash equals hash, then returns the collected blocks
// reversed (ascending order). The matching block itself is not
// included. Since never fails: if the walk reaches index 0 without a
// match, the whole chain, genesis block included, is returned in
// ascending order.
func (c *Chain) Since(hash string) []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var collected []Block
	i := c.length - 1
	for {
		b := c.blocks[i]
		if b.Hash == hash {
			break
		}
		collected = append(collected, b)
		if i == 0 {
			break
		}
		i--
	}
	// reverse into ascending order
	for l, r := 0, len(collected)-1; l < r; l, r = l+1, r-1 {
		collected[l], collected[r] = collected[r], collected[l]
	}
	return collected
}

// RecordSeen reports whether a record with this hash is already known
// to the chain.
func (c *Chain) RecordSeen(hash string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.recordHashes[hash]
	return ok
}

// BlockSeen reports whether a block with this hash is already known to
// the chain.
func (c *Chain) BlockSeen(hash string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.blockHashes[hash]
	return ok
}

// AppendRecords seals a new block at the current length, chained to
// the current head, containing records, and appends it. records must
// be non-empty — an empty batch is refused here (chain-layer guard per
// the spec's open question 2) rather than left to the caller.
func (c *Chain) AppendRecords(records []Record) (Block, error) {
	if len(records) == 0 {
		return Block{}, newErr(KindValidation, "refusing to append an empty-record batch")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	b := NewBlock(c.length, c.head().Hash, records)
	if err := b.Validate(); err != nil {
		return Block{}, err
	}
	c.insertLocked(b)
	return b, nil
}

// AppendNewRecords filters records to drop any whose hash is already
// known to the chain, then appends the remainder as a new block. It is
// idempotent with respect to the record-hash set: a repeated call with
// the same batch is a no-op after the first.
func (c *Chain) AppendNewRecords(records []Record) (Block, error) {
	c.mu.RLock()
	fresh := make([]Record, 0, len(records))
	for _, r := range records {
		if _, seen := c.recordHashes[r.Hash]; !seen {
			fresh = append(fresh, r)
		}
	}
	c.mu.RUnlock()
	if len(fresh) == 0 {
		return Block{}, newErr(KindValidation, "no new records to seal")
	}
	return c.AppendRecords(fresh)
}

// AppendBlocks merges a contiguous run of blocks fetched from a peer
// onto the head of the chain. blocks[0].PreviousHash must equal the
// current head's hash. Blocks are not re-validated here — the caller
// (the upstream puller) must have already validated the blocks and
// their linkage before calling this.
func (c *Chain) AppendBlocks(blocks []Block) error {
	if len(blocks) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if blocks[0].PreviousHash != c.head().Hash {
		return newErr(KindConflict, "graft point does not chain to local head")
	}
	for _, b := range blocks {
		c.insertLocked(b)
	}
	return nil
}

func (c *Chain) insertLocked(b Block) {
	c.blocks[c.length] = b
	c.length++
	c.blockHashes[b.Hash] = struct{}{}
	for _, r := range b.Data {
		c.recordHashes[r.Hash] = struct{}{}
	}
}

// Validate incrementally validates blocks from the max-verified
// watermark to the end of the chain, advancing the watermark on
// success.
func (c *Chain) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := c.maxVerified; i < c.length; i++ {
		if err := c.validateBlockLocked(i); err != nil {
			return err
		}
	}
	c.maxVerified = c.length
	return nil
}

// FullValidate validates the same range as Validate but never advances
// the watermark; it is safe to call concurrently with readers.
func (c *Chain) FullValidate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := c.maxVerified; i < c.length; i++ {
		if err := c.validateBlockLocked(i); err != nil {
			return err
		}
	}
	return nil
}

func (c *Chain) validateBlockLocked(i uint64) error {
	b := c.blocks[i]
	if err := b.Validate(); err != nil {
		return err
	}
	if i > 0 {
		prev := c.blocks[i-1]
		if b.PreviousHash != prev.Hash {
			return newErr(KindValidation, "block does not chain to its predecessor")
		}
	}
	return nil
}

// CompareOtherChain compares a candidate chain's blocks (e.g. fetched
// from a peer) against this one. An empty current chain or an empty
// candidate is always Invalid; a candidate that fails full validation
// is Invalid with a reason; otherwise Longer iff the candidate has
// strictly more blocks.
func (c *Chain) CompareOtherChain(candidate []Block) CompareResult {
	c.mu.RLock()
	localLen := c.length
	c.mu.RUnlock()

	if localLen == 0 {
		return CompareResult{Invalid: true, Reason: "local chain is empty"}
	}
	if len(candidate) == 0 {
		return CompareResult{Invalid: true, Reason: "candidate chain is empty"}
	}
	if err := validateChainSlice(candidate); err != nil {
		return CompareResult{Invalid: true, Reason: err.Error()}
	}
	if uint64(len(candidate)) > localLen {
		return CompareResult{Longer: true}
	}
	return CompareResult{}
}

func validateChainSlice(blocks []Block) error {
	for i, b := range blocks {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 && b.PreviousHash != blocks[i-1].Hash {
			return newErr(KindValidation, "candidate chain is not internally linked")
		}
	}
	return nil
}

// ForEach calls fn for every block in ascending index order. It does
// not mutate Chain and stops early if fn returns false.
func (c *Chain) ForEach(fn func(Block) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := uint64(0); i < c.length; i++ {
		if !fn(c.blocks[i]) {
			return
		}
	}
}

// chainWire is the textual serialisation shape: only data and size are
// carried, matching spec.md's "round-trips through a textual format
// carrying only data and size" contract.
type chainWire struct {
	Data []Block `json:"data"`
	Size uint64  `json:"size"`
}

// MarshalChainWire renders the chain to its wire form.
func (c *Chain) MarshalChainWire() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	blocks := make([]Block, 0, c.length)
	for i := uint64(0); i < c.length; i++ {
		blocks = append(blocks, c.blocks[i])
	}
	return json.Marshal(chainWire{Data: blocks, Size: c.length})
}

// ChainFromWire rebuilds a Chain from its wire form. The known-hash
// indices are rebuilt from the decoded blocks and the max-verified
// watermark starts at zero, then Validate is invoked to rebuild trust
// over every block.
func ChainFromWire(data []byte) (*Chain, error) {
	var w chainWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, wrapErr(KindParse, "decode chain wire form", err)
	}
	if uint64(len(w.Data)) != w.Size {
		return nil, newErr(KindValidation, "chain wire size does not match block count")
	}
	c := &Chain{
		blocks:       make(map[uint64]Block, len(w.Data)),
		blockHashes:  make(map[string]struct{}, len(w.Data)),
		recordHashes: make(map[string]struct{}),
	}
	for i, b := range w.Data {
		if b.Index != uint64(i) {
			return nil, newErr(KindValidation, "chain wire block index out of order")
		}
		c.blocks[uint64(i)] = b
		c.blockHashes[b.Hash] = struct{}{}
		for _, r := range b.Data {
			c.recordHashes[r.Hash] = struct{}{}
		}
	}
	c.length = w.Size
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
