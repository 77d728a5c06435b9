package entities

// Countdown is the per-question answer timer. It is advanced by ticks
// delivered from the event loop; each Start bumps the generation so that
// ticks scheduled for a previous question are ignored.
type Countdown struct {
	remaining  int
	running    bool
	generation uint64
}

// Start arms the countdown and returns the generation ticks must carry.
func (c *Countdown) Start(ticks int) uint64 {
	c.generation++
	c.remaining = ticks
	c.running = true
	return c.generation
}

// Stop disarms the countdown. Pending ticks become no-ops.
func (c *Countdown) Stop() {
	c.running = false
}

// Tick advances the countdown by one step. It returns the remaining ticks and
// whether the countdown has just expired. Ticks for a stale generation, or
// ticks arriving while stopped, change nothing.
func (c *Countdown) Tick(generation uint64) (remaining int, expired bool) {
	if !c.running || generation != c.generation {
		return c.remaining, false
	}

	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		return 0, true
	}
	return c.remaining, false
}

// Remaining returns the ticks left before expiry.
func (c *Countdown) Remaining() int { return c.remaining }

// Running reports whether the countdown is armed.
func (c *Countdown) Running() bool { return c.running }

// Generation returns the current generation.
func (c *Countdown) Generation() uint64 { return c.generation }
