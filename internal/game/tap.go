package game

import (
	"sync"

	"github.com/faiface/beep"
)

// sampleTap wraps a beep.Streamer and keeps the most recent samples, mixed
// down to mono, in a ring buffer. The speaker goroutine writes; the game
// loop reads through recent.
type sampleTap struct {
	source beep.Streamer

	mu     sync.RWMutex
	ring   []float64
	next   int
	filled bool
}

func newSampleTap(src beep.Streamer, size int) *sampleTap {
	return &sampleTap{source: src, ring: make([]float64, size)}
}

func (t *sampleTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.ring[t.next] = (samples[i][0] + samples[i][1]) * 0.5
			t.next++
			if t.next == len(t.ring) {
				t.next = 0
				t.filled = true
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *sampleTap) Err() error { return t.source.Err() }

// recent appends up to n of the latest samples to dst, oldest first.
func (t *sampleTap) recent(dst []float64, n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	have := t.next
	if t.filled {
		have = len(t.ring)
	}
	if n > have {
		n = have
	}
	start := t.next - n
	if start < 0 {
		dst = append(dst, t.ring[start+len(t.ring):]...)
		start = 0
	}
	return append(dst, t.ring[start:t.next]...)
}
