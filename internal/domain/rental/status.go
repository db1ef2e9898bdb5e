package rental

import (
	"time"

	"videorental/internal/domain"
)

const day = 24 * time.Hour

// DeriveStatus is the status a reader should see at now. Stored status may
// lag behind for active rentals that have passed their planned return date.
func DeriveStatus(r *Rental, now time.Time) domain.RentalStatus {
	return domain.EffectiveStatus(r.Status, r.PlannedReturnDate, now)
}

// OverdueDays counts started days past planned; any overage rounds up.
func OverdueDays(planned, actual time.Time) int {
	late := actual.Sub(planned)
	if late <= 0 {
		return 0
	}
	return int((late + day - 1) / day)
}

// PeriodStart returns the beginning of p relative to now. Unknown periods
// fall back to a month.
func PeriodStart(p Period, now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}
