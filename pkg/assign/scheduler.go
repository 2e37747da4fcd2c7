package assign

import (
	"sort"
	"time"

	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"

	"github.com/roboricindustries/raycon-assign/pkg/shift"
)

// PickAgent selects the agent who should take the next chat: on-shift
// agents ordered by seniority ascending (juniors absorb load first), then
// by current load ascending, first one below its concurrency ceiling.
// Returns nil when every candidate is saturated or off shift; the chat
// then stays pending for a later delivery.
func PickAgent(agents []support.Agent, now time.Time) *support.Agent {
	candidates := make([]support.Agent, 0, len(agents))
	for _, a := range agents {
		if shift.OnShift(a, now) {
			candidates = append(candidates, a)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Seniority != candidates[j].Seniority {
			return candidates[i].Seniority < candidates[j].Seniority
		}
		return candidates[i].Load() < candidates[j].Load()
	})
	for i := range candidates {
		if candidates[i].HasFreeSlot() {
			return &candidates[i]
		}
	}
	return nil
}
