package mathx

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5, 16, 256); got != 16 {
		t.Fatalf("Clamp low: got %d", got)
	}
	if got := Clamp(300, 16, 256); got != 256 {
		t.Fatalf("Clamp high: got %d", got)
	}
	if got := Clamp(64, 256, 16); got != 64 {
		t.Fatalf("Clamp swapped bounds: got %d", got)
	}
	if got := Clamp(-time.Second, 0, 2*time.Second); got != 0 {
		t.Fatalf("Clamp duration: got %v", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 4) != 3 || Min(4, 3) != 3 {
		t.Fatal("Min failed")
	}
	if Max(uint8(3), 4) != 4 || Max(uint8(4), 3) != 4 {
		t.Fatal("Max failed")
	}
}

func TestRoundDiv(t *testing.T) {
	for _, tc := range []struct {
		a, b, want uint64
	}{
		{42_000_000, 9600, 4375},
		{42_000_000, 115200, 365},
		{7, 2, 4},
		{5, 3, 2},
		{4, 3, 1},
		{0, 3, 0},
		{3, 0, 0},
	} {
		if got := RoundDiv(tc.a, tc.b); got != tc.want {
			t.Fatalf("RoundDiv(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
