package tui

import "strings"

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RingBuffer keeps the most recent samples up to a fixed capacity.
type RingBuffer struct {
	data  []float64
	next  int
	count int
}

// NewRingBuffer returns a buffer holding at most capacity samples
// (at least one).
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push appends v, dropping the oldest sample when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.next] = v
	r.next = (r.next + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

func (r *RingBuffer) Len() int { return r.count }

func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.next-1+len(r.data))%len(r.data)]
}

// Slice returns the samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	out := make([]float64, 0, r.count)
	first := (r.next - r.count + len(r.data)) % len(r.data)
	for i := 0; i < r.count; i++ {
		out = append(out, r.data[(first+i)%len(r.data)])
	}
	return out
}

// Reset drops every sample.
func (r *RingBuffer) Reset() {
	r.next, r.count = 0, 0
}

// RenderSparkline draws percentages in [0, 100] as block characters,
// left-padded with spaces to width. Values beyond width keep the newest.
func RenderSparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(values)))
	top := len(sparkLevels) - 1
	for _, v := range values {
		v = min(max(v, 0), 100)
		b.WriteRune(sparkLevels[int(v/100*float64(top))])
	}
	return b.String()
}
