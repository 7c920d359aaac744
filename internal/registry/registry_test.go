package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

type stubGame struct {
	id    string
	snap  core.Snapshot
	dirs  []core.Direction
	ticks int
}

func (s *stubGame) ID() string          { return s.id }
func (s *stubGame) Title() string       { return strings.ToUpper(s.id) }
func (s *stubGame) Description() string { return "stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig) error {
	s.snap = core.Snapshot{Status: core.StatusRunning, Running: true}
	return nil
}
func (s *stubGame) SetDirection(d core.Direction) { s.dirs = append(s.dirs, d) }
func (s *stubGame) Tick() core.TickResult {
	s.ticks++
	return core.TickResult{Outcome: core.OutcomeContinue, Snapshot: s.snap}
}
func (s *stubGame) Snapshot() core.Snapshot { return s.snap }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should be registered")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("ID() = %q, expected stub_a", g.ID())
	}

	info, ok := Lookup("stub_a")
	if !ok {
		t.Fatal("Lookup should find stub_a")
	}
	if info.Title != "STUB_A" || info.Description != "stub stub_a" {
		t.Errorf("Unexpected info: %+v", info)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist"); err == nil {
		t.Error("Create should fail for an unknown variant")
	}
	if Exists("does_not_exist") {
		t.Error("Exists should be false for an unknown variant")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Registering a duplicate ID should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	Register("stub_z", func() Game { return &stubGame{id: "stub_z"} })
	Register("stub_m", func() Game { return &stubGame{id: "stub_m"} })

	var zi, mi = -1, -1
	for i, info := range List() {
		switch info.ID {
		case "stub_z":
			zi = i
		case "stub_m":
			mi = i
		}
	}
	if zi < 0 || mi < 0 || zi > mi {
		t.Errorf("List() should keep registration order, got stub_z at %d and stub_m at %d", zi, mi)
	}

	ids := IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("IDs() should be sorted, got %v", ids)
		}
	}
}
