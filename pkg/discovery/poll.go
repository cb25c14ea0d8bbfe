package discovery

import (
	"time"
)

// Poll interval defaults.
const (
	// DefaultPollInterval is the wait between empty discovery passes.
	DefaultPollInterval = 1 * time.Second

	// DefaultProbeTimeout bounds the endpoint 0 read of one candidate.
	DefaultProbeTimeout = 2 * time.Second
)

// pollSchedule yields the wait before each retry pass. With max equal to
// initial the schedule is a fixed interval; otherwise it doubles up to max.
type pollSchedule struct {
	current time.Duration
	max     time.Duration
	passes  int
}

func newPollSchedule(initial, maxInterval time.Duration) *pollSchedule {
	if initial <= 0 {
		initial = DefaultPollInterval
	}
	if maxInterval < initial {
		maxInterval = initial
	}
	return &pollSchedule{current: initial, max: maxInterval}
}

// Next returns the next wait and advances the schedule.
func (p *pollSchedule) Next() time.Duration {
	delay := p.current
	p.passes++
	p.current = min(p.current*2, p.max)
	return delay
}

// Passes returns the number of waits handed out.
func (p *pollSchedule) Passes() int { return p.passes }
