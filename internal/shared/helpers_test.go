package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommandError(t *testing.T) {
	base := errors.New("exit status 1")
	err := CommandError([]byte("  error: attribute missing\n"), base)
	assert.Contains(t, err.Error(), "attribute missing")
	assert.ErrorIs(t, err, base)
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		ts   int64
		want string
	}{
		{"zero", 0, "N/A"},
		{"future", now.Add(time.Hour).Unix(), "N/A"},
		{"same day", now.Add(-2 * time.Hour).Unix(), "today"},
		{"one day", now.Add(-30 * time.Hour).Unix(), "1 day ago"},
		{"many days", now.Add(-12 * 24 * time.Hour).Unix(), "12 days ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatAge(tc.ts, now))
		})
	}
}
