package hub

import (
	"testing"

	"github.com/ksk1130/tsvloggen/internal/model"
)

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) OnLine(line model.Line, size int) {
	*r.log = append(*r.log, r.name+":line:"+line.Level)
}

func (r recorder) OnProgress(p model.Progress) {
	*r.log = append(*r.log, r.name+":progress")
}

func TestBroadcastOrder(t *testing.T) {
	var got []string
	h := New(recorder{"a", &got}, recorder{"b", &got})

	h.OnLine(model.Line{Level: "WARN"}, 10)
	h.OnProgress(model.Progress{Lines: 1})

	want := []string{"a:line:WARN", "b:line:WARN", "a:progress", "b:progress"}
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSubscribeIgnoresNil(t *testing.T) {
	h := New(nil)
	if h.Len() != 0 {
		t.Errorf("expected 0 subscribers, got %d", h.Len())
	}

	var got []string
	h.Subscribe(recorder{"a", &got})
	if h.Len() != 1 {
		t.Errorf("expected 1 subscriber, got %d", h.Len())
	}

	// A hub without subscribers must not panic.
	New().OnLine(model.Line{}, 1)
}
