package registry

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/merge-arcade/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                         { return g.id }
func (g stubGame) Title() string                      { return "Stub " + g.id }
func (stubGame) Reset(core.RuntimeConfig)             {}
func (stubGame) Resize(int, int)                      {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen)                  {}
func (stubGame) State() core.GameState                { return core.GameState{} }
func (stubGame) Result() core.GameResult              { return core.GameResult{} }

func stub(id string) Factory {
	return func() Game { return stubGame{id} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", stub("stub_b"))
	Register("stub_a", stub("stub_a"))

	if !Exists("stub_a") || Exists("stub_c") {
		t.Fatal("Exists mismatch")
	}
	if info, ok := Lookup("stub_b"); !ok || info.Title != "Stub stub_b" {
		t.Errorf("Lookup(stub_b) = %+v, %v", info, ok)
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("ID = %q", g.ID())
	}
	if _, err := Create("stub_c"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(stub_c) error = %v, want ErrUnknownGame", err)
	}

	ids := make([]string, 0)
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	if !slices.IsSorted(ids) {
		t.Errorf("List should be sorted by ID, got %v", ids)
	}
	if !slices.Contains(ids, "stub_a") || !slices.Contains(ids, "stub_b") {
		t.Errorf("List = %v, missing stubs", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", stub("stub_dup"))
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", stub("stub_dup"))
}
