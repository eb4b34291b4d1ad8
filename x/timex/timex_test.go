package timex

import (
	"testing"
	"time"
)

func TestPeriodFromHz(t *testing.T) {
	if got, want := PeriodFromHz(1000), time.Millisecond; got != want {
		t.Fatalf("PeriodFromHz(1000) = %v, want %v", got, want)
	}
	if got, want := PeriodFromHz(0), time.Second; got != want {
		t.Fatalf("PeriodFromHz(0) = %v, want %v", got, want)
	}
}

func TestFrameTime(t *testing.T) {
	// 8N1 is 10 bits on the wire.
	if got, want := FrameTime(10_000, 10, 1), time.Millisecond; got != want {
		t.Fatalf("FrameTime = %v, want %v", got, want)
	}
}

func TestNowMs(t *testing.T) {
	if NowMs() <= 0 {
		t.Fatal("NowMs not positive")
	}
}
