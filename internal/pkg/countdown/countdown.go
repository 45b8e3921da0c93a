// Package countdown computes the remaining time until a fixed cutoff and
// renders it for display. Past the cutoff the remainder is pinned at zero.
package countdown

import (
	"fmt"
	"time"

	"github.com/avetisov/storefront-service/internal/pkg/clock"
)

// Remaining clamps target minus now at zero; it never goes negative.
func Remaining(target, now time.Time) time.Duration {
	d := target.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Format renders a duration as days plus zero-padded hours:minutes:seconds,
// e.g. "3d 07:45:09". Zero renders as "0d 00:00:00".
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)

	return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, seconds)
}

// Timer tracks a single cutoff against an injected clock.
type Timer struct {
	target time.Time
	clk    clock.Clock
}

func NewTimer(target time.Time, clk clock.Clock) *Timer {
	return &Timer{
		target: target,
		clk:    clk,
	}
}

func (t *Timer) Target() time.Time {
	return t.target
}

func (t *Timer) Remaining() time.Duration {
	return Remaining(t.target, t.clk.Now())
}

func (t *Timer) Display() string {
	return Format(t.Remaining())
}

func (t *Timer) Expired() bool {
	return t.Remaining() == 0
}
