// File: services/ciaobooking/dto.go
package ciaobooking

import (
	"bytes"
	"encoding/json"
	"time"

	"guestdesk/models"
)

// flexString decodes a JSON value that may arrive as a string or a number.
// CiaoBooking is inconsistent about this for ids and enum codes.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

type clientDTO struct {
	ID    flexString `json:"id"`
	Name  string     `json:"name"`
	Phone string     `json:"phone"`
}

func (d clientDTO) toModel() models.ClientRecord {
	return models.ClientRecord{
		ID:    string(d.ID),
		Name:  d.Name,
		Phone: d.Phone,
	}
}

type reservationDTO struct {
	ID            flexString `json:"id"`
	Status        flexString `json:"status"`
	GuestStatus   flexString `json:"guest_status"`
	CheckinStatus flexString `json:"checkin_status"`
	DateFrom      string     `json:"date_from"`
	DateTo        string     `json:"date_to"`
	ClientID      flexString `json:"client_id"`
	PropertyName  string     `json:"property_name"`
}

// toModel normalizes the wire record. No raw numeric code survives past this
// point.
func (d reservationDTO) toModel() models.Reservation {
	return models.Reservation{
		ID:            string(d.ID),
		Status:        models.NormalizeReservationStatus(string(d.Status)),
		GuestStatus:   models.NormalizeGuestStatus(string(d.GuestStatus)),
		CheckinStatus: models.NormalizeCheckinStatus(string(d.CheckinStatus)),
		StartDate:     parseServiceDate(d.DateFrom),
		EndDate:       parseServiceDate(d.DateTo),
		ClientID:      string(d.ClientID),
		Property:      d.PropertyName,
	}
}

func parseServiceDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
