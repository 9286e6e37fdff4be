// File: services/ciaobooking/interface.go
package ciaobooking

import (
	"context"
	"errors"
	"time"

	"guestdesk/models"
)

// API is the surface of the CiaoBooking service the concierge depends on.
type API interface {
	// FindClientByPhone searches the client registry with the caller's bare
	// phone digits. A missing match returns (nil, nil).
	FindClientByPhone(ctx context.Context, digits string) (*models.ClientRecord, error)
	// GetReservation looks a reservation up by its reference. Returns
	// ErrNotFound when the service reports 404.
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	// ListReservations returns reservations with the given status in the
	// [from, to] date window.
	ListReservations(ctx context.Context, from, to time.Time, status models.ReservationStatus) ([]models.Reservation, error)
}

// ErrNotFound is returned when an explicitly referenced reservation does not
// exist on the booking service.
var ErrNotFound = errors.New("ciaobooking: reservation not found")

// AuthError signals that the authentication exchange with CiaoBooking failed.
// Callers degrade to an empty booking context instead of propagating it.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "ciaobooking: authentication failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
