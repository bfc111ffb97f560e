package appointment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusScheduled, StatusCompleted, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			allowed := from == StatusScheduled && to != StatusScheduled
			if allowed {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition), "%s -> %s", from, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)

	_, err = ParseStatus("completed")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	_, err = ParseStatus("DONE")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	cases := []struct {
		name   string
		s2, e2 int
		want   bool
	}{
		{"identical", 0, 45, true},
		{"inside", 10, 20, true},
		{"covers", -10, 60, true},
		{"starts inside", 30, 90, true},
		{"ends inside", -30, 15, true},
		{"touches end", 45, 90, false},
		{"touches start", -45, 0, false},
		{"disjoint", 120, 150, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(at(0), at(45), at(tc.s2), at(tc.e2)))
			assert.Equal(t, tc.want, Overlaps(at(tc.s2), at(tc.e2), at(0), at(45)))
		})
	}
}

func TestCommission(t *testing.T) {
	assert.True(t, decimal.NewFromInt(48).Equal(Commission(decimal.NewFromInt(120), decimal.NewFromInt(40))))
	assert.Equal(t, "3.33", Commission(decimal.NewFromInt(10), decimal.RequireFromString("33.3")).StringFixed(2))
	assert.True(t, Commission(decimal.NewFromInt(50), decimal.Zero).IsZero())
}

func TestEndTime(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(45*time.Minute), EndTime(start, 45))
}
