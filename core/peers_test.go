package core

import (
	"testing"
	"time"
)

func TestDownstreamsToggleDefaultsOff(t *testing.T) {
	d := NewDownstreams()
	if d.IsSweeping() {
		t.Fatalf("expected sweeping to default to false until an operator opts in")
	}
	if !d.Toggle() {
		t.Fatalf("expected toggle to flip to true")
	}
	if !d.IsSweeping() {
		t.Fatalf("expected sweeping true after toggle")
	}
}

func TestDownstreamsAddRemove(t *testing.T) {
	d := NewDownstreams()
	d.Add("http://peer-a")
	d.Add("http://peer-a")
	if d.Count() != 1 {
		t.Fatalf("expected idempotent add, got count %d", d.Count())
	}
	d.Remove("http://peer-a")
	if d.Count() != 0 {
		t.Fatalf("expected count 0 after remove, got %d", d.Count())
	}
}

func TestUpstreamsMarkSweptUpdatesProgress(t *testing.T) {
	u := NewUpstreams()
	u.Add("http://peer-b")
	u.MarkSwept("http://peer-b", "abc123", time.Now())
	snap := u.Snapshot()
	if len(snap) != 1 || snap[0].LatestHash != "abc123" {
		t.Fatalf("expected progress update to stick, got %+v", snap)
	}
}
