package position

import "testing"

func TestPointCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want int
	}{
		{"same leaf earlier offset", Point{Path: Path{0, 0}, Offset: 1}, Point{Path: Path{0, 0}, Offset: 4}, -1},
		{"same leaf same offset", Point{Path: Path{0, 0}, Offset: 2}, Point{Path: Path{0, 0}, Offset: 2}, 0},
		{"earlier leaf wins over offset", Point{Path: Path{0, 0}, Offset: 99}, Point{Path: Path{1, 0}, Offset: 0}, -1},
		{"later leaf", Point{Path: Path{2, 0}, Offset: 0}, Point{Path: Path{1, 3}, Offset: 7}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRangeCovering(t *testing.T) {
	a := Point{Key: "a", Path: Path{0, 0}, Offset: 5}
	b := Point{Key: "b", Path: Path{1, 0}, Offset: 2}

	backward := Range{Anchor: b, Focus: a}
	if !backward.IsBackward() {
		t.Fatal("expected backward range")
	}
	cov := backward.Covering()
	if !cov.Anchor.Equal(a) || !cov.Focus.Equal(b) {
		t.Errorf("Covering() = %s, want anchor %s focus %s", cov, a, b)
	}
	// Direction survives on the original.
	if !backward.Focus.Equal(a) {
		t.Error("Covering mutated the receiver")
	}

	forward := Range{Anchor: a, Focus: b}
	if forward.IsBackward() {
		t.Error("forward range reported backward")
	}
	if got := forward.Start(); !got.Equal(a) {
		t.Errorf("Start() = %s, want %s", got, a)
	}
	if got := forward.End(); !got.Equal(b) {
		t.Errorf("End() = %s, want %s", got, b)
	}
}

func TestRangeCollapsed(t *testing.T) {
	p := Point{Key: "k", Path: Path{0, 0}, Offset: 3}
	r := NewCollapsed(p)
	if !r.IsCollapsed() {
		t.Error("NewCollapsed produced an expanded range")
	}
	// Same key, different offset: not collapsed.
	r.Focus.Offset = 4
	if r.IsCollapsed() {
		t.Error("offset mismatch should not be collapsed")
	}
}

func TestNewKeyUnique(t *testing.T) {
	seen := make(map[Key]bool)
	for i := 0; i < 1000; i++ {
		k := NewKey()
		if k.IsZero() {
			t.Fatal("NewKey returned zero key")
		}
		if seen[k] {
			t.Fatalf("duplicate key %q", k)
		}
		seen[k] = true
	}
}
