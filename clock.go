package dtnsim

//
// Clock: scalar virtual time shared by a simulation run.
//

// Clock is a monotone (within a tick block) virtual clock, in seconds.
// The zero value is ready to use at t=0. A [Clock] is owned by exactly one
// [SimContext] so that batch runs never share time state; see simcontext.go.
type Clock struct {
	now float64
}

// NewClock creates a [Clock] starting at t=0.
func NewClock() *Clock {
	return &Clock{now: 0}
}

// Now returns the current virtual time.
func (c *Clock) Now() float64 {
	return c.now
}

// Advance adds a non-negative delta to the current time. It panics if dt is
// negative: advancing is never allowed to move time backward, unlike [Clock.Set].
func (c *Clock) Advance(dt float64) {
	if dt < 0 {
		panicInvariant(ErrNoActiveTransfer, "", -1, "Clock.Advance called with negative delta")
	}
	c.now += dt
}

// Set moves the clock to an arbitrary time. Callers must only move it
// backward during movement warm-up (see World.warmup); the clock itself does
// not enforce that restriction, since it has no notion of "warm-up" — the
// caller is the authority, exactly as the World is the sole caller of Set
// outside of tests.
func (c *Clock) Set(t float64) {
	c.now = t
}

// Reset returns the clock to t=0.
func (c *Clock) Reset() {
	c.now = 0
}
