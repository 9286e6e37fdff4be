// File: models/booking.go
package models

import "time"

// ReservationStatus is the booking-level state of a reservation.
type ReservationStatus string

const (
	ReservationConfirmed     ReservationStatus = "CONFIRMED"
	ReservationPending       ReservationStatus = "PENDING"
	ReservationCanceled      ReservationStatus = "CANCELED"
	ReservationStatusUnknown ReservationStatus = "UNKNOWN"
)

// GuestStatus is the physical-presence state of the guest.
type GuestStatus string

const (
	GuestNotArrived    GuestStatus = "NOT_ARRIVED"
	GuestArrived       GuestStatus = "ARRIVED"
	GuestLeft          GuestStatus = "LEFT"
	GuestStatusUnknown GuestStatus = "UNKNOWN"
)

// CheckinStatus is the verification state of the guest's identity documents.
type CheckinStatus string

const (
	CheckinToDo          CheckinStatus = "TO_DO"
	CheckinCompleted     CheckinStatus = "COMPLETED"
	CheckinVerified      CheckinStatus = "VERIFIED"
	CheckinStatusUnknown CheckinStatus = "UNKNOWN"
)

// CiaoBooking returns enum fields as numeric codes. The maps below pin the
// wire codes to the canonical string values; anything unmapped becomes the
// explicit UNKNOWN variant. Normalization is idempotent: an already-canonical
// string passes through unchanged.
var reservationStatusCodes = map[string]ReservationStatus{
	"1": ReservationPending,
	"2": ReservationConfirmed,
	"3": ReservationCanceled,
}

var guestStatusCodes = map[string]GuestStatus{
	"1": GuestNotArrived,
	"2": GuestArrived,
	"3": GuestLeft,
}

var checkinStatusCodes = map[string]CheckinStatus{
	"1": CheckinToDo,
	"2": CheckinCompleted,
	"3": CheckinVerified,
}

// NormalizeReservationStatus maps a wire code (or an already-canonical value)
// to a ReservationStatus.
func NormalizeReservationStatus(code string) ReservationStatus {
	switch ReservationStatus(code) {
	case ReservationConfirmed, ReservationPending, ReservationCanceled, ReservationStatusUnknown:
		return ReservationStatus(code)
	}
	if s, ok := reservationStatusCodes[code]; ok {
		return s
	}
	return ReservationStatusUnknown
}

// NormalizeGuestStatus maps a wire code (or an already-canonical value) to a
// GuestStatus.
func NormalizeGuestStatus(code string) GuestStatus {
	switch GuestStatus(code) {
	case GuestNotArrived, GuestArrived, GuestLeft, GuestStatusUnknown:
		return GuestStatus(code)
	}
	if s, ok := guestStatusCodes[code]; ok {
		return s
	}
	return GuestStatusUnknown
}

// NormalizeCheckinStatus maps a wire code (or an already-canonical value) to a
// CheckinStatus.
func NormalizeCheckinStatus(code string) CheckinStatus {
	switch CheckinStatus(code) {
	case CheckinToDo, CheckinCompleted, CheckinVerified, CheckinStatusUnknown:
		return CheckinStatus(code)
	}
	if s, ok := checkinStatusCodes[code]; ok {
		return s
	}
	return CheckinStatusUnknown
}

// ClientRecord is a guest profile as held by CiaoBooking. Read-only to the
// rest of the system.
type ClientRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Reservation is a stay record with all enum fields already normalized.
// Zero-value dates mean the service did not supply them.
type Reservation struct {
	ID            string            `json:"id"`
	Status        ReservationStatus `json:"status"`
	GuestStatus   GuestStatus       `json:"guestStatus"`
	CheckinStatus CheckinStatus     `json:"checkinStatus"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
	ClientID      string            `json:"clientId,omitempty"`
	Property      string            `json:"property,omitempty"`
}

// InStay reports whether the given day falls within [StartDate, EndDate].
func (r *Reservation) InStay(today time.Time) bool {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return false
	}
	d := CivilDay(today)
	return !d.Before(CivilDay(r.StartDate)) && !d.After(CivilDay(r.EndDate))
}

// CivilDay truncates a timestamp to its calendar day in UTC.
func CivilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BookingContext is the resolved pairing of a client record and a reservation
// for a caller. Either field may be nil; that is a common state, not an error.
type BookingContext struct {
	Client      *ClientRecord `json:"client,omitempty"`
	Reservation *Reservation  `json:"reservation,omitempty"`
}
