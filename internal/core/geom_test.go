package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single cell overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Intersects must agree with Intersect in both directions.
			if got := !tc.a.Intersect(tc.b).Empty(); got != tc.expected {
				t.Errorf("Intersect().Empty() = %v, expected %v", !got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() not symmetric")
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	got := a.Intersect(b)
	want := NewRect(5, 5, 5, 5)
	if got != want {
		t.Errorf("Intersect() = %+v, expected %+v", got, want)
	}

	// Disjoint rects intersect to an empty region.
	c := NewRect(20, 20, 5, 5)
	if !a.Intersect(c).Empty() {
		t.Errorf("Intersect() of disjoint rects should be empty, got %+v", a.Intersect(c))
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	if !r.Contains(2, 3) {
		t.Error("Contains() should include top-left corner")
	}
	if !r.Contains(5, 7) {
		t.Error("Contains() should include bottom-right interior cell")
	}
	if r.Contains(6, 3) {
		t.Error("Contains() should exclude right edge")
	}
	if r.Contains(2, 8) {
		t.Error("Contains() should exclude bottom edge")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d, expected 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %d, expected 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11, 0, 10) = %d, expected 10", got)
	}
}
