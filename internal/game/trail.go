package game

import "github.com/iburimskiy/epicycles/internal/geom"

// trail is a ring buffer of the most recent traced points.
type trail struct {
	buffer    []geom.Point
	nextIndex int
	filled    bool
}

func newTrail(size int) *trail {
	return &trail{buffer: make([]geom.Point, max(size, 1))}
}

func (t *trail) add(p geom.Point) {
	t.buffer[t.nextIndex] = p
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
		t.filled = true
	}
}

func (t *trail) len() int {
	if t.filled {
		return len(t.buffer)
	}
	return t.nextIndex
}

func (t *trail) clear() {
	t.nextIndex = 0
	t.filled = false
}

// points returns the recorded points, oldest first.
func (t *trail) points() []geom.Point {
	if !t.filled {
		return t.buffer[:t.nextIndex]
	}
	out := make([]geom.Point, 0, len(t.buffer))
	out = append(out, t.buffer[t.nextIndex:]...)
	return append(out, t.buffer[:t.nextIndex]...)
}

// trailSize returns the number of ticks in one period, capped at limit. A
// still figure needs a single point.
func trailSize(period float64, tps, limit int) int {
	if period <= 0 {
		return 1
	}
	if ticks := period * float64(tps); ticks < float64(limit) {
		return int(ticks) + 1
	}
	return limit
}
