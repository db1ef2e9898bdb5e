package domain

import "time"

// RentalStatus is the stored lifecycle state of a rental.
type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalOverdue   RentalStatus = "overdue"
	RentalReturned  RentalStatus = "returned"
	RentalCancelled RentalStatus = "cancelled"
)

// RentalsTable is shared by the ledgers that count live rentals.
const RentalsTable = "rentals"

// LiveRentalStatuses are the states in which a rental still holds its media unit.
var LiveRentalStatuses = []string{string(RentalActive), string(RentalOverdue)}

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalActive, RentalOverdue, RentalReturned, RentalCancelled:
		return true
	}
	return false
}

// Live reports whether the rental still holds its media unit.
func (s RentalStatus) Live() bool {
	return s == RentalActive || s == RentalOverdue
}

// MediaUnitsTable is read by the catalog to guard title deletion.
const MediaUnitsTable = "media_units"

// EffectiveStatus applies the lazy overdue rule: a stored active rental whose
// planned return date has passed reads as overdue.
func EffectiveStatus(stored RentalStatus, plannedReturn, now time.Time) RentalStatus {
	if stored == RentalActive && plannedReturn.Before(now) {
		return RentalOverdue
	}
	return stored
}
