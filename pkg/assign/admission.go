package assign

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

// Decision is the admission controller's verdict for one chat request.
type Decision int

const (
	Accept Decision = iota
	NeedsOverflow
	Refuse
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case NeedsOverflow:
		return "needs_overflow"
	case Refuse:
		return "refuse"
	default:
		return "unknown"
	}
}

const (
	queueFactor = 1.5

	// Overflow pool constants. Fixed size and junior rank are deliberate;
	// the pool does not scale with the deficit.
	OverflowNamePrefix  = "Overflow-"
	overflowCount       = 6
	overflowShiftStart  = 9
	overflowShiftEnd    = 17
	overflowConcurrency = 4
)

// QueueCeiling is the pending-queue depth above which new chats are
// refused or overflow is considered.
func QueueCeiling(capacity int) int {
	return int(math.Floor(float64(capacity) * queueFactor))
}

// Admit gates one request against the pending depth and current capacity.
// Overflow is only an option during office hours; outside them an
// over-ceiling queue means refusal.
func Admit(pending, capacity int, officeHours bool) Decision {
	if pending < QueueCeiling(capacity) {
		return Accept
	}
	if !officeHours {
		return Refuse
	}
	return NeedsOverflow
}

// HasOverflowPool reports whether the roster already carries a provisioned
// overflow pool, identified by the name marker.
func HasOverflowPool(agents []support.Agent) bool {
	for _, a := range agents {
		if strings.HasPrefix(a.Name, OverflowNamePrefix) {
			return true
		}
	}
	return false
}

// ProvisionOverflow registers a fixed-size pool of junior agents on the
// standard day shift. It is idempotent against the roster it is given:
// if a pool marker is present nothing is created. Two concurrent bursts
// reading the same roster can still double-provision; that check-then-act
// race lives in the store boundary and is accepted here.
func ProvisionOverflow(ctx context.Context, st Store, agents []support.Agent) (bool, error) {
	if HasOverflowPool(agents) {
		return false, nil
	}
	for i := 0; i < overflowCount; i++ {
		agent := support.Agent{
			ID:             uuid.New(),
			Name:           fmt.Sprintf("%s%d", OverflowNamePrefix, i+1),
			Seniority:      support.SeniorityJunior,
			ShiftStartHour: overflowShiftStart,
			ShiftEndHour:   overflowShiftEnd,
			IsOverflow:     true,
			MaxConcurrency: overflowConcurrency,
			CreatedAt:      time.Now().UTC(),
		}
		if _, err := st.AddAgent(ctx, agent); err != nil {
			return i > 0, fmt.Errorf("add overflow agent %s: %w", agent.Name, err)
		}
	}
	return true, nil
}
