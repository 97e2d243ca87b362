package spaced_repetition_test

import (
	"testing"
	"time"

	sr "github.com/example/recall/internal/spaced_repetition"
)

// BenchmarkSM2Advance measures the cost of one scheduling step.
func BenchmarkSM2Advance(b *testing.B) {
	sm := sr.NewSM2()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	st, err := sm.Advance(nil, sr.QualityPerfect, now)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st, _ = sm.Advance(&st, sr.QualityCorrectHesitation, now)
		now = now.Add(24 * time.Hour)
	}
}
