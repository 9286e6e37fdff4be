package concierge

import (
	"context"
	"sync/atomic"
	"time"

	"guestdesk/kb"
	"guestdesk/models"
	"guestdesk/services/ciaobooking"
)

// bookingAPIMock implements ciaobooking.API with overridable function fields
// and call counters.
type bookingAPIMock struct {
	findClientFn func(ctx context.Context, digits string) (*models.ClientRecord, error)
	getResFn     func(ctx context.Context, id string) (*models.Reservation, error)
	listFn       func(ctx context.Context, from, to time.Time, status models.ReservationStatus) ([]models.Reservation, error)

	findCalls int32
	getCalls  int32
	listCalls int32
}

func (m *bookingAPIMock) FindClientByPhone(ctx context.Context, digits string) (*models.ClientRecord, error) {
	atomic.AddInt32(&m.findCalls, 1)
	if m.findClientFn == nil {
		return nil, nil
	}
	return m.findClientFn(ctx, digits)
}

func (m *bookingAPIMock) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	atomic.AddInt32(&m.getCalls, 1)
	if m.getResFn == nil {
		return nil, ciaobooking.ErrNotFound
	}
	return m.getResFn(ctx, id)
}

func (m *bookingAPIMock) ListReservations(ctx context.Context, from, to time.Time, status models.ReservationStatus) ([]models.Reservation, error) {
	atomic.AddInt32(&m.listCalls, 1)
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, from, to, status)
}

func (m *bookingAPIMock) totalCalls() int32 {
	return atomic.LoadInt32(&m.findCalls) + atomic.LoadInt32(&m.getCalls) + atomic.LoadInt32(&m.listCalls)
}

func testKB() *kb.KnowledgeBase {
	return &kb.KnowledgeBase{
		GlobalRules: kb.GlobalRules{
			SensitiveKeywords: []string{"codice fiscale", "iban", "carta di credito"},
			SensitiveResponse: "Per la tua sicurezza non posso trattare questi dati in chat.",
		},
		Structures: map[string]kb.StructureInfo{
			"Casa Monic": {
				Parking: "posto auto interno al cancello verde",
				Power:   "Il contatore è nel sottoscala, alza la leva nera",
				Videos: map[string]string{
					kb.VideoSelfCheckin:  "https://video.example/casa-monic",
					kb.VideoPowerRestore: "https://video.example/casa-monic-power",
				},
			},
			"Belle Vue": {
				Parking: "garage convenzionato in via Roma",
				Videos:  map[string]string{kb.VideoSelfCheckin: "https://video.example/belle-vue"},
			},
		},
		TransferPolicy: kb.TransferPolicy{NCC: map[string]float64{
			kb.TariffAirport: 50,
			kb.TariffCity:    35,
		}},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
