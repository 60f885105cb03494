package ws

import (
	"fmt"
	"testing"
)

func mkMsg(i int) ChatMessage {
	return ChatMessage{Type: "chat", Username: "u", Text: fmt.Sprintf("m%d", i), Timestamp: int64(i)}
}

func TestHistory_CapacityBound(t *testing.T) {
	var h History
	for i := 1; i <= 60; i++ {
		h.Append(mkMsg(i))
	}
	if h.Len() != maxHistory {
		t.Fatalf("Len() = %d, want %d", h.Len(), maxHistory)
	}
	got := h.Since(0)
	if len(got) != maxHistory {
		t.Fatalf("Since(0) len = %d, want %d", len(got), maxHistory)
	}
	// retained suffix is exactly the last 50 appends, in append order
	for i, m := range got {
		want := int64(i + 11)
		if m.Timestamp != want {
			t.Errorf("Since(0)[%d].Timestamp = %d, want %d", i, m.Timestamp, want)
		}
	}
}

func TestHistory_Since(t *testing.T) {
	var h History
	for i := 1; i <= 10; i++ {
		h.Append(mkMsg(i))
	}
	got := h.Since(5)
	if len(got) != 5 {
		t.Fatalf("Since(5) len = %d, want 5", len(got))
	}
	for i, m := range got {
		if m.Timestamp <= 5 {
			t.Errorf("Since(5)[%d].Timestamp = %d, want > 5", i, m.Timestamp)
		}
		if m.Timestamp != int64(i+6) {
			t.Errorf("Since(5)[%d].Timestamp = %d, want %d (suffix order)", i, m.Timestamp, i+6)
		}
	}
}

func TestHistory_SinceZeroReturnsAll(t *testing.T) {
	var h History
	for i := 1; i <= 3; i++ {
		h.Append(mkMsg(i))
	}
	if got := h.Since(0); len(got) != 3 {
		t.Errorf("Since(0) len = %d, want 3", len(got))
	}
}

func TestHistory_SinceFuture(t *testing.T) {
	var h History
	h.Append(mkMsg(1))
	got := h.Since(100)
	if got == nil {
		t.Fatal("Since(100) = nil, want empty non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("Since(100) len = %d, want 0", len(got))
	}
}

func TestHistory_SinceAfterEviction(t *testing.T) {
	var h History
	for i := 1; i <= 60; i++ {
		h.Append(mkMsg(i))
	}
	// messages 1..10 were evicted; a since older than the oldest retained
	// message silently skips them
	got := h.Since(3)
	if len(got) != maxHistory {
		t.Fatalf("Since(3) len = %d, want %d", len(got), maxHistory)
	}
	if got[0].Timestamp != 11 {
		t.Errorf("Since(3)[0].Timestamp = %d, want 11 (oldest retained)", got[0].Timestamp)
	}
}
