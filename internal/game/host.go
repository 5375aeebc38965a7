package game

import "github.com/iburimskiy/bg-waves/internal/wave"

// frameQueue holds at most one pending frame callback, like a page with a
// single requestAnimationFrame in flight.
type frameQueue struct {
	next int
	id   int
	fn   func(float64)
}

func (q *frameQueue) request(fn func(float64)) int {
	q.next++
	q.id = q.next
	q.fn = fn
	return q.id
}

func (q *frameQueue) cancel(id int) {
	if q.id == id {
		q.fn = nil
	}
}

// run invokes the pending callback, if any. The callback may request the
// next frame; that request is kept for the following run.
func (q *frameQueue) run(ms float64) bool {
	fn := q.fn
	if fn == nil {
		return false
	}
	q.fn = nil
	fn(ms)
	return true
}

type listener struct {
	id   int
	kind wave.EventKind
	fn   func(wave.Event)
}

type listenerSet struct {
	next  int
	items []listener
}

func (s *listenerSet) add(kind wave.EventKind, fn func(wave.Event)) func() {
	s.next++
	id := s.next
	s.items = append(s.items, listener{id: id, kind: kind, fn: fn})
	return func() {
		for i, l := range s.items {
			if l.id == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return
			}
		}
	}
}

func (s *listenerSet) emit(e wave.Event) {
	for _, l := range s.items {
		if l.kind == e.Kind {
			l.fn(e)
		}
	}
}

func (s *listenerSet) count(kind wave.EventKind) int {
	n := 0
	for _, l := range s.items {
		if l.kind == kind {
			n++
		}
	}
	return n
}
