package refresh

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// MinInterval is the tightest refresh the dashboard accepts; anything
// faster would hammer the backend for no benefit.
const MinInterval = time.Second

// Kind tells how a schedule produces its ticks
type Kind string

const (
	KindInterval Kind = "interval"
	KindCron     Kind = "cron"
)

// Schedule yields dashboard refresh instants from either a fixed interval
// ("30s") or a standard five-field cron expression ("*/5 * * * *").
type Schedule struct {
	kind     Kind
	spec     string
	interval time.Duration
	cron     cron.Schedule
}

// Parse reads a refresh spec. A Go duration takes precedence; anything
// that does not parse as a duration must be a cron expression.
func Parse(spec string) (*Schedule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("refresh spec cannot be empty")
	}

	if interval, err := time.ParseDuration(spec); err == nil {
		if interval < MinInterval {
			return nil, fmt.Errorf("refresh interval must be at least %s", MinInterval)
		}
		return &Schedule{kind: KindInterval, spec: spec, interval: interval}, nil
	}

	cronSchedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("refresh spec %q is neither a duration nor a cron expression: %w", spec, err)
	}
	return &Schedule{kind: KindCron, spec: spec, cron: cronSchedule}, nil
}

// Kind returns how the schedule ticks
func (s *Schedule) Kind() Kind {
	return s.kind
}

// Interval returns the fixed interval, or zero for cron schedules
func (s *Schedule) Interval() time.Duration {
	return s.interval
}

// Next returns the first refresh instant after the given time
func (s *Schedule) Next(after time.Time) time.Time {
	if s.kind == KindCron {
		return s.cron.Next(after)
	}
	return after.Add(s.interval)
}

// Wait blocks until the next refresh instant after from, or until the
// context ends.
func (s *Schedule) Wait(ctx context.Context, from time.Time) error {
	delay := time.Until(s.Next(from))
	if delay < 0 {
		delay = 0
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Schedule) String() string {
	return s.spec
}
