package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avetisov/storefront-service/internal/pkg/clock"
)

func TestRemainingClampsAtZero(t *testing.T) {
	target := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Duration(0), Remaining(target, target))
	assert.Equal(t, time.Duration(0), Remaining(target, target.Add(time.Second)))
	assert.Equal(t, time.Duration(0), Remaining(target, target.Add(30*24*time.Hour)))
	assert.Equal(t, time.Hour, Remaining(target, target.Add(-time.Hour)))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0d 00:00:00"},
		{"negative pins to zero", -5 * time.Second, "0d 00:00:00"},
		{"seconds only", 9 * time.Second, "0d 00:00:09"},
		{"under a day", 7*time.Hour + 45*time.Minute + 9*time.Second, "0d 07:45:09"},
		{"multiple days", 3*24*time.Hour + 7*time.Hour + 45*time.Minute + 9*time.Second, "3d 07:45:09"},
		{"exact day boundary", 48 * time.Hour, "2d 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.d))
		})
	}
}

func TestTimerAtAndPastCutoff(t *testing.T) {
	target := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(target.Add(-90 * time.Second))
	timer := NewTimer(target, clk)

	assert.Equal(t, "0d 00:01:30", timer.Display())
	assert.False(t, timer.Expired())

	clk.Set(target)
	assert.Equal(t, "0d 00:00:00", timer.Display())
	assert.True(t, timer.Expired())

	// One second past the cutoff stays at zero, never negative.
	clk.Advance(time.Second)
	assert.Equal(t, "0d 00:00:00", timer.Display())
	assert.True(t, timer.Expired())
}
