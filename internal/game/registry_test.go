package game

import (
	"errors"
	"testing"

	"github.com/NeoGalaxy/terminity/internal/core"
)

// stub is a minimal game used to exercise the registry.
type stub struct {
	created bool
}

func (s *stub) Init(Config) error                  { s.created = true; return nil }
func (s *stub) Render(core.Rect) []core.CellUpdate { return nil }
func (s *stub) HandleInput(core.KeyEvent) Action   { return Continue }
func (s *stub) Teardown()                          {}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("stub", "Stub Game", func() Game { return &stub{} }); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	g, err := r.Create("stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g == nil {
		t.Fatal("Create() returned nil game")
	}

	// Every Create returns a fresh instance.
	g2, _ := r.Create("stub")
	if g == g2 {
		t.Error("Create() should construct a new instance each time")
	}
}

func TestRegistryUnknownName(t *testing.T) {
	r := NewRegistry()

	g, err := r.Create("nope")
	if g != nil {
		t.Error("Create() of unknown name should construct nothing")
	}

	var cfgErr *core.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Create() error = %v, expected *core.ConfigError", err)
	}
	if cfgErr.Name != "nope" {
		t.Errorf("ConfigError.Name = %q, expected %q", cfgErr.Name, "nope")
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("stub", "Stub", func() Game { return &stub{} }); err != nil {
		t.Fatalf("first Register() failed: %v", err)
	}
	if err := r.Register("stub", "Stub", func() Game { return &stub{} }); err == nil {
		t.Error("second Register() of same name should fail")
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("b", "B", func() Game { return &stub{} })
	_ = r.Register("a", "A", func() Game { return &stub{} })

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d entries, expected 2", len(list))
	}
	if list[0].Name != "a" || list[1].Name != "b" {
		t.Errorf("List() not sorted by name: %v", list)
	}

	r.Clear()
	if len(r.List()) != 0 {
		t.Error("Clear() should empty the registry")
	}
}
