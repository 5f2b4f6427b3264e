package loop

// Interval fires once every N ticks. Tick games use it for the period of
// discrete moves, like snake steps or tetris gravity.
type Interval struct {
	every int
	count int
}

// NewInterval creates an interval that fires every n ticks (minimum 1).
func NewInterval(n int) *Interval {
	return &Interval{every: max(n, 1)}
}

// Tick counts one tick and reports whether the interval fired.
func (i *Interval) Tick() bool {
	i.count++
	if i.count >= i.every {
		i.count = 0
		return true
	}
	return false
}

// Every returns the current period.
func (i *Interval) Every() int {
	return i.every
}

// SetEvery changes the period without losing progress toward the next fire.
func (i *Interval) SetEvery(n int) {
	i.every = max(n, 1)
	if i.count >= i.every {
		i.count = i.every - 1
	}
}

// Reset restarts counting from zero.
func (i *Interval) Reset() {
	i.count = 0
}
