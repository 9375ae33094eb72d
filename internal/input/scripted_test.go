package input

import "testing"

func TestScripted_PressIsEdgeTriggered(t *testing.T) {
	s := NewScripted()
	s.Set(KeyMark)
	if !s.Pressed(KeyMark) || !s.Held(KeyMark) {
		t.Fatal("first tick down should be pressed and held")
	}
	s.Set(KeyMark)
	if s.Pressed(KeyMark) {
		t.Fatal("second tick held should not be pressed again")
	}
	if !s.Held(KeyMark) {
		t.Fatal("key should still be held")
	}
	s.Release()
	if s.Held(KeyMark) || s.Pressed(KeyMark) {
		t.Fatal("released key reports down")
	}
	s.Set(KeyMark)
	if !s.Pressed(KeyMark) {
		t.Fatal("re-press should be edge-triggered again")
	}
}

func TestAnyDirection(t *testing.T) {
	s := NewScripted()
	s.Set(KeyRun, KeyMark)
	if AnyDirection(s) {
		t.Fatal("run and mark are not directions")
	}
	s.Set(KeyLeft)
	if !AnyDirection(s) {
		t.Fatal("left is a direction")
	}
	if AnyDirection(None{}) {
		t.Fatal("None holds nothing")
	}
}

func TestKeyString(t *testing.T) {
	if KeyConfirm.String() != "confirm" || Key(200).String() != "unknown" {
		t.Fatal("unexpected key names")
	}
}
