// File: services/concierge/resolver.go
package concierge

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"time"

	"guestdesk/models"
	"guestdesk/services/ciaobooking"
	"guestdesk/utils"

	"go.uber.org/zap"
)

// reservationRefRe matches a reservation reference typed in free text.
var reservationRefRe = regexp.MustCompile(`\b\d{6,}\b`)

// resolveWindowDays is the symmetric horizon around today searched when no
// explicit reference was given.
const resolveWindowDays = 45

// Resolver builds a BookingContext for a caller from the booking service.
// Every lookup failure degrades to a partial or empty context; nothing here
// aborts the conversation.
type Resolver struct {
	API ciaobooking.API
	Now func() time.Time
}

// Resolution is the outcome of one resolve pass. RefMentioned and RefFound
// are distinct so the caller can tell "no reference typed" apart from
// "reference typed but unknown".
type Resolution struct {
	Context      models.BookingContext
	Ref          string
	RefMentioned bool
	RefFound     bool
}

// Resolve runs the three-step context resolution: direct reference lookup,
// client search by phone digits, then best-reservation search in the date
// window.
func (r *Resolver) Resolve(ctx context.Context, callerDigits, text string) Resolution {
	logger := utils.GetLogger()
	today := r.Now()
	var res Resolution

	if ref := reservationRefRe.FindString(text); ref != "" {
		res.Ref = ref
		res.RefMentioned = true
		rsv, err := r.API.GetReservation(ctx, ref)
		switch {
		case err == nil:
			res.Context.Reservation = rsv
			res.RefFound = true
		case errors.Is(err, ciaobooking.ErrNotFound):
			logger.Info("Reservation reference not found", zap.String("ref", ref))
		default:
			logger.Warn("Reservation lookup failed", zap.String("ref", ref), zap.Error(err))
		}
	}

	if callerDigits != "" {
		client, err := r.API.FindClientByPhone(ctx, callerDigits)
		if err != nil {
			logger.Warn("Client search failed", zap.Error(err))
		} else if client != nil {
			res.Context.Client = client
		}
	}

	if res.Context.Client != nil && res.Context.Reservation == nil {
		from := today.AddDate(0, 0, -resolveWindowDays)
		to := today.AddDate(0, 0, resolveWindowDays)
		list, err := r.API.ListReservations(ctx, from, to, models.ReservationConfirmed)
		if err != nil {
			logger.Warn("Reservation window search failed", zap.Error(err))
		} else if best := PickBestReservation(list, res.Context.Client.ID, today); best != nil {
			res.Context.Reservation = best
		}
	}

	return res
}

// PickBestReservation selects the single reservation for a client using the
// system-wide ranking: in-stay before future before past, confirmed before
// pending, nearest day wins, reservation id as the final tie break.
func PickBestReservation(candidates []models.Reservation, clientID string, today time.Time) *models.Reservation {
	var own []models.Reservation
	for _, r := range candidates {
		if r.ClientID == clientID {
			own = append(own, r)
		}
	}
	if len(own) == 0 {
		return nil
	}
	sort.Slice(own, func(i, j int) bool {
		ri, rj := rankReservation(&own[i], today), rankReservation(&own[j], today)
		if ri.bucket != rj.bucket {
			return ri.bucket < rj.bucket
		}
		if ri.status != rj.status {
			return ri.status < rj.status
		}
		if ri.dayDist != rj.dayDist {
			return ri.dayDist < rj.dayDist
		}
		return own[i].ID < own[j].ID
	})
	best := own[0]
	return &best
}

type reservationRank struct {
	bucket  int // 0 in-stay, 1 future, 2 past
	status  int // 0 confirmed, 1 pending, 2 anything else
	dayDist int
}

func rankReservation(r *models.Reservation, today time.Time) reservationRank {
	var rank reservationRank

	d := models.CivilDay(today)
	switch {
	case r.InStay(today):
		rank.bucket = 0
		rank.dayDist = 0
	case !r.StartDate.IsZero() && models.CivilDay(r.StartDate).After(d):
		rank.bucket = 1
		rank.dayDist = int(models.CivilDay(r.StartDate).Sub(d).Hours() / 24)
	default:
		rank.bucket = 2
		end := r.EndDate
		if end.IsZero() {
			end = r.StartDate
		}
		rank.dayDist = int(d.Sub(models.CivilDay(end)).Hours() / 24)
		if rank.dayDist < 0 {
			rank.dayDist = -rank.dayDist
		}
	}

	switch r.Status {
	case models.ReservationConfirmed:
		rank.status = 0
	case models.ReservationPending:
		rank.status = 1
	default:
		rank.status = 2
	}
	return rank
}
