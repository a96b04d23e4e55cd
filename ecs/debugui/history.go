package debugui

// History is a fixed-size ring of samples for imgui plots.
type History struct {
	samples []float32
	next    int
	filled  bool
}

func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{samples: make([]float32, size)}
}

// Push records v, overwriting the oldest sample once the ring is full.
func (h *History) Push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

// Len returns the number of samples recorded so far, capped at the ring size.
func (h *History) Len() int {
	if h.filled {
		return len(h.samples)
	}
	return h.next
}

func (h *History) Average() float32 {
	n := h.Len()
	if n == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:n] {
		sum += v
	}
	return sum / float32(n)
}

func (h *History) Max() float32 {
	var m float32
	for _, v := range h.samples[:h.Len()] {
		m = max(m, v)
	}
	return m
}

// Ordered returns the recorded samples oldest first.
func (h *History) Ordered() []float32 {
	if !h.filled {
		return append([]float32(nil), h.samples[:h.next]...)
	}
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.next:]...)
	return append(out, h.samples[:h.next]...)
}
