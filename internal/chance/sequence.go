package chance

// Sequence replays fixed draws in order. Floats and ints are queued
// separately; once a queue runs dry it keeps returning its zero fallback,
// which for Float64 is 0.99 so that unscripted rolls fail.
type Sequence struct {
	Floats []float64
	Ints   []int

	floatIdx int
	intIdx   int
}

// Float64 returns the next scripted float.
func (s *Sequence) Float64() float64 {
	if s.floatIdx >= len(s.Floats) {
		return 0.99
	}
	v := s.Floats[s.floatIdx]
	s.floatIdx++
	return v
}

// Intn returns the next scripted int, clamped into [0, n).
func (s *Sequence) Intn(n int) int {
	if s.intIdx >= len(s.Ints) {
		return 0
	}
	v := s.Ints[s.intIdx]
	s.intIdx++
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Remaining reports how many scripted draws are still unused.
func (s *Sequence) Remaining() (floats, ints int) {
	return len(s.Floats) - s.floatIdx, len(s.Ints) - s.intIdx
}
