package arena

import "testing"

func TestRound(t *testing.T) {
	cases := []struct {
		n    uintptr
		want uintptr
	}{
		{0, minSpanSize},
		{1, minSpanSize},
		{16, minSpanSize},
		{17, 48},
		{24, 48},
		{40, 64},
		{5000, 5024},
	}
	for _, c := range cases {
		if got := round(c.n); got != c.want {
			t.Errorf("round(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestRoundMinimumSpan(t *testing.T) {
	for n := uintptr(0); n < 64; n++ {
		if got := round(n); got < minSpanSize {
			t.Fatalf("round(%d) = %d, below minSpanSize %d", n, got, minSpanSize)
		}
	}
}

func TestIsLarge(t *testing.T) {
	if isLarge(round(4000)) {
		t.Errorf("round(4000) should stay under the large threshold")
	}
	if !isLarge(round(5000)) {
		t.Errorf("round(5000) = %d should be large (>= %d)", round(5000), largeThreshold)
	}
	if !isLarge(largeThreshold) {
		t.Errorf("exactly one page should be large")
	}
}

func TestRoundUp(t *testing.T) {
	cases := []struct{ n, stride, want uintptr }{
		{0, pageSize, 0},
		{1, pageSize, pageSize},
		{pageSize, pageSize, pageSize},
		{pageSize + 1, pageSize, 2 * pageSize},
	}
	for _, c := range cases {
		if got := roundUp(c.n, c.stride); got != c.want {
			t.Errorf("roundUp(%d, %d) = %d, want %d", c.n, c.stride, got, c.want)
		}
	}
}
