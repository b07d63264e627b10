package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestLastVisitLabel(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		last null.Time
		want string
	}{
		{"never stamped", null.Time{}, "First visit"},
		{"same day", null.TimeFrom(now.Add(-3 * time.Hour)), "Today"},
		{"just under a day", null.TimeFrom(now.Add(-23 * time.Hour)), "Today"},
		{"one day", null.TimeFrom(now.Add(-25 * time.Hour)), "Yesterday"},
		{"several days", null.TimeFrom(now.Add(-5*24*time.Hour - time.Hour)), "5 days ago"},
		{"clock skew", null.TimeFrom(now.Add(time.Minute)), "Today"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LastVisitLabel(tc.last, now))
		})
	}
}

func TestStartOfWindows(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 45, 3, 9, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), startOfDay(now))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), startOfMonth(now))
}
