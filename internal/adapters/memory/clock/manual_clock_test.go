package clock

import (
	"testing"
	"time"
)

func TestManualClock_SetAndAdvance(t *testing.T) {
	t.Parallel()

	start := time.Unix(100, 0).UTC()
	c := NewManualClock(start)
	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("Now()=%v, want %v", got, start)
	}

	c.Advance(time.Minute)
	if got, want := c.Now(), start.Add(time.Minute); !got.Equal(want) {
		t.Fatalf("Now() after Advance=%v, want %v", got, want)
	}

	later := time.Unix(500, 0).UTC()
	c.Set(later)
	if got := c.Now(); !got.Equal(later) {
		t.Fatalf("Now() after Set=%v, want %v", got, later)
	}
}
