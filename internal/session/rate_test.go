package session

import "testing"

func TestNextRate_Cycle(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1, 1.25},
		{1.25, 1.5},
		{1.5, 2},
		{2, 1},
	}
	for _, c := range cases {
		if got := NextRate(c.in); got != c.want {
			t.Errorf("NextRate(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNextRate_UnknownResetsToFirst(t *testing.T) {
	if got := NextRate(3.7); got != 1 {
		t.Errorf("NextRate(3.7) = %v, want 1", got)
	}
}
