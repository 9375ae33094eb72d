package fsm

import (
	"errors"
	"testing"
)

type view struct{ rendered []string }

type stubState struct {
	name string
	log  *[]string
	m    *Machine[string, *view]
	// jumpTo, when set, makes Update change the owner machine.
	jumpTo string
}

func (p *stubState) Enter(params any) {
	*p.log = append(*p.log, p.name+".enter")
}
func (p *stubState) Exit() { *p.log = append(*p.log, p.name+".exit") }
func (p *stubState) Update(dt float64) {
	*p.log = append(*p.log, p.name+".update")
	if p.jumpTo != "" {
		p.m.MustChange(p.jumpTo, nil)
	}
}
func (p *stubState) Render(v *view) { v.rendered = append(v.rendered, p.name) }

func newStubMachine(log *[]string, names ...string) (*Machine[string, *view], map[string]*stubState) {
	m := New[string, *view]()
	states := map[string]*stubState{}
	for _, n := range names {
		p := &stubState{name: n, log: log, m: m}
		states[n] = p
		m.Add(n, p)
	}
	return m, states
}

func TestMachine_EmptyIsNoOp(t *testing.T) {
	m := New[string, *view]()
	v := &view{}
	m.Update(0.016)
	m.Render(v)
	if len(v.rendered) != 0 {
		t.Fatalf("empty machine rendered %v", v.rendered)
	}
	if _, ok := m.Current(); ok {
		t.Fatal("empty machine should report no current state")
	}
}

func TestMachine_FirstAddIsCurrentWithoutEnter(t *testing.T) {
	var log []string
	m, _ := newStubMachine(&log, "idle", "walk")
	id, ok := m.Current()
	if !ok || id != "idle" {
		t.Fatalf("current=%q ok=%v, want idle", id, ok)
	}
	if len(log) != 0 {
		t.Fatalf("Add must not call lifecycle hooks, got %v", log)
	}
}

func TestMachine_UpdateBeforeChangeIsNoOp(t *testing.T) {
	var log []string
	m, _ := newStubMachine(&log, "idle")
	v := &view{}
	m.Update(1)
	m.Render(v)
	if len(log) != 0 || len(v.rendered) != 0 {
		t.Fatalf("expected no calls before Change, got log=%v rendered=%v", log, v.rendered)
	}
	if m.Is("idle") {
		t.Fatal("Is should be false until the state has been entered")
	}
}

func TestMachine_ChangeOrder(t *testing.T) {
	var log []string
	m, _ := newStubMachine(&log, "idle", "walk")
	m.MustChange("idle", nil)
	m.MustChange("walk", nil)
	want := []string{"idle.enter", "idle.exit", "walk.enter"}
	if len(log) != len(want) {
		t.Fatalf("log=%v want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log[%d]=%q want %q", i, log[i], want[i])
		}
	}
	if m.Transitions() != 2 {
		t.Fatalf("transitions=%d want 2", m.Transitions())
	}
}

func TestMachine_UnknownStateFailsDeterministically(t *testing.T) {
	var log []string
	m, _ := newStubMachine(&log, "idle")
	m.MustChange("idle", nil)
	log = log[:0]

	for i := 0; i < 3; i++ {
		err := m.Change("nope", nil)
		var use *UnknownStateError
		if !errors.As(err, &use) {
			t.Fatalf("attempt %d: err=%v, want *UnknownStateError", i, err)
		}
		if !errors.Is(err, ErrUnknownState) {
			t.Fatalf("attempt %d: errors.Is(ErrUnknownState) false", i)
		}
		if use.ID != "nope" {
			t.Fatalf("attempt %d: ID=%v", i, use.ID)
		}
	}
	if len(log) != 0 {
		t.Fatalf("failed change must not exit the active state, got %v", log)
	}
	if !m.Is("idle") {
		t.Fatal("machine should still be in idle")
	}
}

func TestMachine_MustChangePanicsOnUnknown(t *testing.T) {
	m := New[int, *view]()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUnknownState) {
			t.Fatalf("recover()=%v, want UnknownStateError", r)
		}
	}()
	m.MustChange(7, nil)
}

func TestMachine_ReentrantChangeFromUpdate(t *testing.T) {
	var log []string
	m, states := newStubMachine(&log, "materialize", "attack")
	states["materialize"].jumpTo = "attack"
	m.MustChange("materialize", nil)
	log = log[:0]

	m.Update(0.5)
	want := []string{"materialize.update", "materialize.exit", "attack.enter"}
	if len(log) != len(want) {
		t.Fatalf("log=%v want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log[%d]=%q want %q", i, log[i], want[i])
		}
	}
	v := &view{}
	m.Render(v)
	if len(v.rendered) != 1 || v.rendered[0] != "attack" {
		t.Fatalf("render after re-entrant change went to %v", v.rendered)
	}
}
