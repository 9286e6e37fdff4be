// File: services/concierge/disclosure.go
package concierge

import (
	"time"

	"guestdesk/models"
)

// DisclosurePolicy decides when access instructions may go out automatically.
// RequireArrived tightens the arrival-day case: the guest must already be
// marked as arrived before anything is sent.
type DisclosurePolicy struct {
	RequireArrived bool
}

// MayAutoDisclose reports whether check-in assets may be sent proactively.
// True only for a confirmed reservation with completed or verified document
// check, a known start date, and today inside [start, end).
func (p DisclosurePolicy) MayAutoDisclose(ctx models.BookingContext, today time.Time) bool {
	r := ctx.Reservation
	if r == nil || r.Status != models.ReservationConfirmed {
		return false
	}
	if r.CheckinStatus != models.CheckinCompleted && r.CheckinStatus != models.CheckinVerified {
		return false
	}
	if r.StartDate.IsZero() {
		return false
	}
	d := models.CivilDay(today)
	start := models.CivilDay(r.StartDate)
	if d.Before(start) {
		return false
	}
	if !r.EndDate.IsZero() && !d.Before(models.CivilDay(r.EndDate)) {
		return false
	}
	if p.RequireArrived && d.Equal(start) && r.GuestStatus != models.GuestArrived {
		return false
	}
	return true
}

// ExplicitRequestBlocked reports whether an explicit request for access
// instructions must be answered with a verification request instead: a
// reservation exists but its document check has not been recorded as done.
func ExplicitRequestBlocked(ctx models.BookingContext) bool {
	r := ctx.Reservation
	if r == nil {
		return false
	}
	switch r.CheckinStatus {
	case models.CheckinCompleted, models.CheckinVerified:
		return false
	}
	return true
}
