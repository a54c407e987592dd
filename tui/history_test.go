package tui

import "testing"

func TestHistory_PrevWalksBackwards(t *testing.T) {
	h := NewHistory(5)
	for _, cmd := range []string{"look", "go village", "buy tonic"} {
		h.Push(cmd)
	}

	for _, want := range []string{"buy tonic", "go village", "look", "look"} {
		got, ok := h.Prev()
		if !ok || got != want {
			t.Fatalf("Prev() = %q (ok=%v), want %q", got, ok, want)
		}
	}
}

func TestHistory_NextPastNewest(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("explore forest")
	h.Prev()
	h.Prev()

	if got, ok := h.Next(); !ok || got != "explore forest" {
		t.Errorf("Next() = %q (ok=%v), want explore forest", got, ok)
	}
	if _, ok := h.Next(); ok {
		t.Error("expected false past the newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("Prev on empty history")
	}
	if _, ok := h.Next(); ok {
		t.Error("Next on empty history")
	}
}

func TestHistory_Eviction(t *testing.T) {
	h := NewHistory(2)
	h.Push("attack")
	h.Push("flee")
	h.Push("look")

	got := []string{}
	for range 3 {
		s, _ := h.Prev()
		got = append(got, s)
	}
	want := []string{"look", "flee", "flee"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Prev sequence = %v, want %v", got, want)
		}
	}
}

func TestHistory_SkipsRepeats(t *testing.T) {
	h := NewHistory(5)
	h.Push("attack")
	h.Push("attack")
	if len(h.lines) != 1 {
		t.Errorf("entries = %d, want 1", len(h.lines))
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("status")
	h.Prev()
	h.Prev()
	h.Reset()

	if got, _ := h.Prev(); got != "status" {
		t.Errorf("Prev after reset = %q, want status", got)
	}
}
