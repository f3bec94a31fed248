package core

import "testing"

func TestMemPoolDedup(t *testing.T) {
	mp := NewMemPool(10)
	r := NewRecord("x")
	if err := mp.Put(r); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if err := mp.Put(r); err != nil {
		t.Fatalf("second put of same record failed: %v", err)
	}
	if mp.Length() != 1 {
		t.Fatalf("expected dedup to leave cardinality at 1, got %d", mp.Length())
	}
}

// S6: bound 10, insert 10 distinct ok, 11th Full.
func TestMemPoolBoundScenarioS6(t *testing.T) {
	mp := NewMemPool(10)
	for i := 0; i < 10; i++ {
		if err := mp.Put(NewRecord(string(rune('a' + i)))); err != nil {
			t.Fatalf("put %d failed: %v", i, err)
		}
	}
	if err := mp.Put(NewRecord("eleventh")); !AsKind(err, KindConflict) {
		t.Fatalf("expected Conflict error on 11th put, got %v", err)
	}
}

func TestMemPoolResetDrainsAndEmpties(t *testing.T) {
	mp := NewMemPool(10)
	mp.Put(NewRecord("a"))
	mp.Put(NewRecord("b"))
	drained := mp.Reset()
	if len(drained) != 2 {
		t.Fatalf("expected 2 drained records, got %d", len(drained))
	}
	if mp.Length() != 0 {
		t.Fatalf("expected pool empty after reset, got %d", mp.Length())
	}
}
