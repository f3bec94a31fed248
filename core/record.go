package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// genesisEntry is the entry text of the distinguished genesis record,
// preserved verbatim so every node derives the same genesis hash.
const genesisEntry = "בְּרֵאשִׁ֖ית בָּרָ֣א"

// Record is the immutable, content-hashed unit of user data. Identity
// in every container that holds records is the hash alone — two
// records are equal iff their hashes are equal.
type Record struct {
	UUID      uuid.UUID `json:"uuid"`
	Timestamp uint64    `json:"timestamp"`
	Entry     string    `json:"entry"`
	Hash      string    `json:"hash"`
}

// GenesisRecord returns the distinguished genesis record: zero uuid,
// timestamp 0, a fixed entry, hashed like any other record.
func GenesisRecord() Record {
	r := Record{
		UUID:      uuid.Nil,
		Timestamp: 0,
		Entry:     genesisEntry,
	}
	r.Hash = r.computeHash()
	return r
}

// NewRecord builds a Record from user-supplied entry text: it fills in
// a fresh uuid, the current wall-clock second, and seals the hash.
func NewRecord(entry string) Record {
	r := Record{
		UUID:      uuid.New(),
		Timestamp: uint64(time.Now().Unix()),
		Entry:     entry,
	}
	r.Hash = r.computeHash()
	return r
}

// computeHash hashes big_endian(timestamp) || entry_bytes || uuid_bytes,
// in that exact order.
func (r Record) computeHash() string {
	id := r.UUID
	return sum256Hex(beUint64(r.Timestamp), []byte(r.Entry), id[:])
}

// Validate recomputes the record's hash and compares it against the
// stored one. A record whose Hash is not the pre-seal sentinel must
// pass this check.
func (r Record) Validate() error {
	if r.Hash == recordInitHash {
		return newErr(KindValidation, "record not yet sealed")
	}
	if r.computeHash() != r.Hash {
		return newErr(KindValidation, "record hash mismatch")
	}
	return nil
}

// Equal reports whether two records share the same hash.
func (r Record) Equal(other Record) bool {
	return r.Hash == other.Hash
}

// StructuredEntry parses Entry as a flat JSON object (string keys,
// string values). It fails if Entry is not such an object — nested
// objects, arrays, and non-string values are all rejected.
func (r Record) StructuredEntry() (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(r.Entry), &raw); err != nil {
		return nil, wrapErr(KindValidation, "entry is not a JSON object", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, newErr(KindValidation, "entry field "+k+" is not a string")
		}
		out[k] = s
	}
	return out, nil
}
