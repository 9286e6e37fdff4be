package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeReservationStatus(t *testing.T) {
	assert.Equal(t, ReservationPending, NormalizeReservationStatus("1"))
	assert.Equal(t, ReservationConfirmed, NormalizeReservationStatus("2"))
	assert.Equal(t, ReservationCanceled, NormalizeReservationStatus("3"))
	assert.Equal(t, ReservationStatusUnknown, NormalizeReservationStatus("42"))
	assert.Equal(t, ReservationStatusUnknown, NormalizeReservationStatus(""))
}

func TestNormalizeReservationStatus_Idempotent(t *testing.T) {
	// An already-canonical value passes through unchanged.
	for _, s := range []ReservationStatus{ReservationConfirmed, ReservationPending, ReservationCanceled, ReservationStatusUnknown} {
		assert.Equal(t, s, NormalizeReservationStatus(string(s)))
	}
}

func TestNormalizeGuestStatus(t *testing.T) {
	assert.Equal(t, GuestNotArrived, NormalizeGuestStatus("1"))
	assert.Equal(t, GuestArrived, NormalizeGuestStatus("2"))
	assert.Equal(t, GuestLeft, NormalizeGuestStatus("3"))
	assert.Equal(t, GuestStatusUnknown, NormalizeGuestStatus("0"))
	assert.Equal(t, GuestArrived, NormalizeGuestStatus("ARRIVED"))
}

func TestNormalizeCheckinStatus(t *testing.T) {
	assert.Equal(t, CheckinToDo, NormalizeCheckinStatus("1"))
	assert.Equal(t, CheckinCompleted, NormalizeCheckinStatus("2"))
	assert.Equal(t, CheckinVerified, NormalizeCheckinStatus("3"))
	assert.Equal(t, CheckinStatusUnknown, NormalizeCheckinStatus("9"))
	assert.Equal(t, CheckinVerified, NormalizeCheckinStatus("VERIFIED"))
}

func TestReservationInStay(t *testing.T) {
	r := Reservation{
		StartDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, r.InStay(time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)))
	assert.True(t, r.InStay(time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.InStay(time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC)))
	assert.False(t, r.InStay(time.Date(2026, 8, 19, 23, 0, 0, 0, time.UTC)))
	assert.False(t, r.InStay(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)))

	noDates := Reservation{}
	assert.False(t, noDates.InStay(time.Now()))
}

func TestSessionAppendHistoryClamps(t *testing.T) {
	s := &Session{}
	for i := 0; i < 30; i++ {
		s.AppendHistory("user", "msg")
	}
	assert.Len(t, s.History, MaxHistoryEntries)
}
