package core

import "tiafledger/core/query"

// Query iterates every block in ascending index order and, for each
// record whose entry parses as a flat string-to-string mapping,
// invokes predicate against that mapping. Records whose entry is not
// such a mapping are silently skipped, as are records for which the
// predicate itself errors — only a true verdict includes the record
// in the result.
func (c *Chain) Query(predicate query.Predicate) []Record {
	var matched []Record
	c.ForEach(func(b Block) bool {
		for _, r := range b.Data {
			env, err := r.StructuredEntry()
			if err != nil {
				continue
			}
			ok, err := predicate(query.Env(env))
			if err != nil {
				continue
			}
			if ok {
				matched = append(matched, r)
			}
		}
		return true
	})
	return matched
}
