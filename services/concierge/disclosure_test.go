package concierge

import (
	"testing"
	"time"

	"guestdesk/models"

	"github.com/stretchr/testify/assert"
)

func disclosableReservation() *models.Reservation {
	return &models.Reservation{
		ID:            "1",
		Status:        models.ReservationConfirmed,
		GuestStatus:   models.GuestNotArrived,
		CheckinStatus: models.CheckinVerified,
		StartDate:     day(2026, 8, 20),
		EndDate:       day(2026, 8, 25),
	}
}

func TestMayAutoDisclose(t *testing.T) {
	p := DisclosurePolicy{}
	mid := day(2026, 8, 22)

	ctx := func(r *models.Reservation) models.BookingContext {
		return models.BookingContext{Reservation: r}
	}

	t.Run("happy path", func(t *testing.T) {
		assert.True(t, p.MayAutoDisclose(ctx(disclosableReservation()), mid))
	})

	t.Run("no reservation", func(t *testing.T) {
		assert.False(t, p.MayAutoDisclose(models.BookingContext{}, mid))
	})

	t.Run("every checkin status", func(t *testing.T) {
		cases := map[models.CheckinStatus]bool{
			models.CheckinToDo:          false,
			models.CheckinCompleted:     true,
			models.CheckinVerified:      true,
			models.CheckinStatusUnknown: false,
		}
		for status, want := range cases {
			r := disclosableReservation()
			r.CheckinStatus = status
			assert.Equal(t, want, p.MayAutoDisclose(ctx(r), mid), "checkin %q", status)
		}
	})

	t.Run("non-confirmed statuses", func(t *testing.T) {
		for _, status := range []models.ReservationStatus{
			models.ReservationPending, models.ReservationCanceled, models.ReservationStatusUnknown,
		} {
			r := disclosableReservation()
			r.Status = status
			assert.False(t, p.MayAutoDisclose(ctx(r), mid), "status %q", status)
		}
	})

	t.Run("stay window is closed at start, open at end", func(t *testing.T) {
		r := disclosableReservation()
		assert.False(t, p.MayAutoDisclose(ctx(r), day(2026, 8, 19)))
		assert.True(t, p.MayAutoDisclose(ctx(r), day(2026, 8, 20)))
		assert.True(t, p.MayAutoDisclose(ctx(r), day(2026, 8, 24)))
		assert.False(t, p.MayAutoDisclose(ctx(r), day(2026, 8, 25)))
	})

	t.Run("unknown start date blocks", func(t *testing.T) {
		r := disclosableReservation()
		r.StartDate = time.Time{}
		assert.False(t, p.MayAutoDisclose(ctx(r), mid))
	})
}

func TestMayAutoDiscloseRequireArrived(t *testing.T) {
	strict := DisclosurePolicy{RequireArrived: true}
	ctx := func(r *models.Reservation) models.BookingContext {
		return models.BookingContext{Reservation: r}
	}

	// On the arrival day the guest must be marked arrived.
	r := disclosableReservation()
	assert.False(t, strict.MayAutoDisclose(ctx(r), day(2026, 8, 20)))
	r.GuestStatus = models.GuestArrived
	assert.True(t, strict.MayAutoDisclose(ctx(r), day(2026, 8, 20)))

	// Past the arrival day the gate no longer applies.
	r.GuestStatus = models.GuestNotArrived
	assert.True(t, strict.MayAutoDisclose(ctx(r), day(2026, 8, 21)))
}

func TestExplicitRequestBlocked(t *testing.T) {
	ctx := func(r *models.Reservation) models.BookingContext {
		return models.BookingContext{Reservation: r}
	}

	// No reservation at all means nothing to block.
	assert.False(t, ExplicitRequestBlocked(models.BookingContext{}))

	cases := map[models.CheckinStatus]bool{
		models.CheckinToDo:          true,
		models.CheckinStatusUnknown: true,
		models.CheckinCompleted:     false,
		models.CheckinVerified:      false,
	}
	for status, want := range cases {
		r := disclosableReservation()
		r.CheckinStatus = status
		assert.Equal(t, want, ExplicitRequestBlocked(ctx(r)), "checkin %q", status)
	}
}
