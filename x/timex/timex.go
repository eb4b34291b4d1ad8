package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns the period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) time.Duration {
	if freqHz == 0 {
		freqHz = 1
	}
	return time.Duration(1_000_000_000 / uint64(freqHz))
}

// FrameTime returns how long n frames of bitsPerFrame take at baud.
func FrameTime(baud uint32, bitsPerFrame, n int) time.Duration {
	return PeriodFromHz(baud) * time.Duration(bitsPerFrame*n)
}
