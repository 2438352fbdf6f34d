package clock

import "time"

// Clock stamps recorded matches.
type Clock interface {
	Now() time.Time
	Advance(d time.Duration)
	Reset()
}

type Config struct {
	// Start pins the clock: Now returns Start plus whatever was advanced and
	// never follows wall time.
	Start time.Time
	// Offset shifts a wall clock.
	Offset time.Duration
}

var DefaultConfig = Config{}

type clock struct {
	start time.Time
	delta time.Duration
	base  time.Duration
}

func (c *clock) Now() time.Time {
	if !c.start.IsZero() {
		return c.start.Add(c.delta)
	}
	return time.Now().Add(c.delta)
}

func (c *clock) Advance(d time.Duration) {
	c.delta += d
}

func (c *clock) Reset() {
	c.delta = c.base
}

func Make(config ...Config) Clock {
	cfg := DefaultConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	return &clock{
		start: cfg.Start,
		delta: cfg.Offset,
		base:  cfg.Offset,
	}
}
