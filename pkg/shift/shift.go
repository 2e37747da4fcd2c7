// Package shift computes shift eligibility and assignable capacity for a
// roster at a point in time. Everything here is pure except the clock.
package shift

import (
	"log/slog"
	"time"

	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

const (
	officeOpenHour  = 9
	officeCloseHour = 17
)

// Clock resolves "now" in the single reference timezone the whole service
// evaluates shifts in. The zone is resolved once at startup; an unknown
// zone falls back to UTC rather than failing the process.
type Clock struct {
	loc *time.Location
}

func NewClock(zone string, logger *slog.Logger) Clock {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		if logger != nil {
			logger.Warn("timezone unavailable, falling back to UTC",
				slog.String("zone", zone), slog.Any("error", err))
		}
		loc = time.UTC
	}
	return Clock{loc: loc}
}

func (c Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c Clock) Location() *time.Location { return c.loc }

// OnShift reports whether the agent is eligible for work at t.
// A normal shift covers [start, end); an overnight shift (start > end)
// covers hour >= start or hour < end.
func OnShift(a support.Agent, t time.Time) bool {
	h := t.Hour()
	if a.ShiftStartHour <= a.ShiftEndHour {
		return h >= a.ShiftStartHour && h < a.ShiftEndHour
	}
	return h >= a.ShiftStartHour || h < a.ShiftEndHour
}

// TotalCapacity sums the concurrency ceilings of every agent on shift at t.
// Off-shift agents contribute nothing regardless of their load.
func TotalCapacity(agents []support.Agent, t time.Time) int {
	total := 0
	for _, a := range agents {
		if OnShift(a, t) {
			total += a.MaxConcurrency
		}
	}
	return total
}

// OfficeHours reports whether t falls inside the 09:00-17:00 window that
// permits overflow provisioning.
func OfficeHours(t time.Time) bool {
	h := t.Hour()
	return h >= officeOpenHour && h < officeCloseHour
}
