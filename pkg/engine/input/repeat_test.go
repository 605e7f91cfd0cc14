package input

import (
	"testing"
	"time"
)

func TestRepeater(t *testing.T) {
	r := NewRepeater(300*time.Millisecond, 100*time.Millisecond)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

	steps := []struct {
		ms      int
		pressed bool
		want    bool
	}{
		{0, true, true},
		{50, true, false},
		{299, true, false},
		{300, true, true},
		{350, true, false},
		{400, true, true},
		{410, false, false},
		{420, true, true},
	}
	for _, s := range steps {
		if got := r.Should("w", s.pressed, at(s.ms)); got != s.want {
			t.Errorf("at %dms pressed=%v: got %v, want %v", s.ms, s.pressed, got, s.want)
		}
	}
}

func TestRepeater_KeysIndependent(t *testing.T) {
	r := NewRepeater(time.Second, time.Second)
	now := time.Now()
	if !r.Should("w", true, now) || !r.Should("a", true, now) {
		t.Fatal("first press of each key should trigger")
	}
	r.Reset()
	if !r.Should("w", true, now) {
		t.Error("press after Reset should trigger")
	}
}
