package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"videorental/internal/domain"
)

func TestOverdueDays(t *testing.T) {
	planned := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		actual time.Time
		want   int
	}{
		{"three days late", time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), 3},
		{"on time", planned, 0},
		{"early", planned.Add(-36 * time.Hour), 0},
		{"one millisecond late", planned.Add(time.Millisecond), 1},
		{"a day and a minute", planned.Add(24*time.Hour + time.Minute), 2},
		{"exactly two days", planned.Add(48 * time.Hour), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverdueDays(planned, tt.actual))
		})
	}
}

func TestOverdueDays_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		planned := time.Unix(rapid.Int64Range(0, 2_000_000_000).Draw(t, "planned"), 0).UTC()
		offset := time.Duration(rapid.Int64Range(-30*24*3600*1000, 30*24*3600*1000).Draw(t, "offset_ms")) * time.Millisecond
		actual := planned.Add(offset)

		days := OverdueDays(planned, actual)
		if days < 0 {
			t.Fatalf("negative overdue days %d", days)
		}
		if (days == 0) != !actual.After(planned) {
			t.Fatalf("days=%d for offset %s", days, offset)
		}
		if days > 0 && time.Duration(days-1)*day >= offset {
			t.Fatalf("days=%d overshoots offset %s", days, offset)
		}
	})
}

func TestDeriveStatus(t *testing.T) {
	planned := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	r := &Rental{Status: domain.RentalActive, PlannedReturnDate: planned}

	assert.Equal(t, domain.RentalActive, DeriveStatus(r, planned.Add(-time.Hour)))
	assert.Equal(t, domain.RentalOverdue, DeriveStatus(r, planned.Add(time.Second)))

	r.Status = domain.RentalReturned
	assert.Equal(t, domain.RentalReturned, DeriveStatus(r, planned.Add(time.Hour)))
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, -7), PeriodStart(PeriodWeek, now))
	assert.Equal(t, now.AddDate(-1, 0, 0), PeriodStart(PeriodYear, now))
	assert.Equal(t, now.AddDate(0, -1, 0), PeriodStart(PeriodMonth, now))
	assert.Equal(t, now.AddDate(0, -1, 0), PeriodStart("decade", now))
}
