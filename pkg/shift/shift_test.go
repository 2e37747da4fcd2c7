package shift

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

func at(hour int) time.Time {
	return time.Date(2026, time.August, 30, hour, 30, 0, 0, time.UTC)
}

func TestOnShiftNormal(t *testing.T) {
	a := support.Agent{ShiftStartHour: 9, ShiftEndHour: 17}

	tests := []struct {
		name string
		hour int
		want bool
	}{
		{"before start", 8, false},
		{"exactly start", 9, true},
		{"midday", 13, true},
		{"last hour", 16, true},
		{"exactly end", 17, false},
		{"evening", 22, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnShift(a, at(tt.hour)))
		})
	}
}

func TestOnShiftOvernight(t *testing.T) {
	a := support.Agent{ShiftStartHour: 22, ShiftEndHour: 6}

	tests := []struct {
		name string
		hour int
		want bool
	}{
		{"before start", 21, false},
		{"exactly start", 22, true},
		{"midnight", 0, true},
		{"early morning", 5, true},
		{"exactly end", 6, false},
		{"midday", 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnShift(a, at(tt.hour)))
		})
	}
}

func TestTotalCapacityCountsOnlyOnShift(t *testing.T) {
	agents := []support.Agent{
		{Name: "day", ShiftStartHour: 9, ShiftEndHour: 17, MaxConcurrency: 4},
		{Name: "night", ShiftStartHour: 22, ShiftEndHour: 6, MaxConcurrency: 8},
		{Name: "lead", ShiftStartHour: 8, ShiftEndHour: 16, MaxConcurrency: 5},
	}

	// 10:30 local: day and lead on shift, night off.
	assert.Equal(t, 9, TotalCapacity(agents, at(10)))
	// 23:30 local: only night.
	assert.Equal(t, 8, TotalCapacity(agents, at(23)))
	// 07:30 local: nobody.
	assert.Equal(t, 0, TotalCapacity(agents, at(7)))
}

func TestTotalCapacityIgnoresLoad(t *testing.T) {
	agents := []support.Agent{
		{ShiftStartHour: 9, ShiftEndHour: 17, MaxConcurrency: 3,
			AssignedChatIDs: []string{"a", "b", "c"}},
	}
	assert.Equal(t, 3, TotalCapacity(agents, at(10)))
}

func TestOfficeHours(t *testing.T) {
	assert.False(t, OfficeHours(at(8)))
	assert.True(t, OfficeHours(at(9)))
	assert.True(t, OfficeHours(at(16)))
	assert.False(t, OfficeHours(at(17)))
	assert.False(t, OfficeHours(at(23)))
}

func TestNewClockFallsBackToUTC(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))

	c := NewClock("Not/AZone", logger)
	assert.Equal(t, time.UTC, c.Location())

	c = NewClock("UTC", logger)
	assert.Equal(t, time.UTC, c.Location())
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
