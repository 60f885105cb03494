package ws

import (
	"encoding/hex"
	"testing"
)

func newTestClient(h *Hub, id, username string) *Client {
	return &Client{
		hub:      h,
		send:     make(chan []byte, 256),
		done:     make(chan struct{}),
		id:       id,
		username: username,
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.groups == nil || hub.clients == nil {
		t.Error("NewHub() maps not initialized")
	}
}

func TestCreateGroup_Code(t *testing.T) {
	hub := NewHub()
	g := hub.CreateGroup("Standup")
	if len(g.Code()) != 8 {
		t.Errorf("Code() length = %d, want 8", len(g.Code()))
	}
	if _, err := hex.DecodeString(g.Code()); err != nil {
		t.Errorf("Code() = %q, want hex string", g.Code())
	}
	if g.Name() != "Standup" {
		t.Errorf("Name() = %q, want Standup", g.Name())
	}
}

func TestCreateGroup_NameDefaultsToCode(t *testing.T) {
	hub := NewHub()
	g := hub.CreateGroup("")
	if g.Name() != g.Code() {
		t.Errorf("Name() = %q, want code %q", g.Name(), g.Code())
	}
}

func TestCreateGroup_UniqueCodes(t *testing.T) {
	hub := NewHub()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		g := hub.CreateGroup("")
		if seen[g.Code()] {
			t.Fatalf("duplicate code %q", g.Code())
		}
		seen[g.Code()] = true
	}
}

func TestFindGroup(t *testing.T) {
	hub := NewHub()
	g := hub.CreateGroup("x")
	if hub.FindGroup(g.Code()) != g {
		t.Error("FindGroup() did not return created group")
	}
	if hub.FindGroup("deadbeef") != nil {
		t.Error("FindGroup() for unknown code should return nil")
	}
}

func TestClientRegistry(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub, "c1", "alice")
	hub.register(c)
	if hub.Client("c1") != c {
		t.Error("Client() did not return registered connection")
	}
	hub.unregister(c)
	if hub.Client("c1") != nil {
		t.Error("Client() after unregister should return nil")
	}
}

func TestHub_Online(t *testing.T) {
	hub := NewHub()
	if hub.Online("deadbeef") != 0 {
		t.Error("Online() for unknown group should be 0")
	}
	g := hub.CreateGroup("")
	c := newTestClient(hub, "c1", "alice")
	c.group = g
	g.addMember(c, 0)
	if hub.Online(g.Code()) != 1 {
		t.Errorf("Online() = %d, want 1", hub.Online(g.Code()))
	}
}
