// File: models/session.go
package models

import "time"

// MaxHistoryEntries bounds the rolling message history kept per session.
const MaxHistoryEntries = 12

// HistoryEntry is one message of the rolling conversation history.
type HistoryEntry struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// TransferDraft accumulates the fields of a transfer request across turns.
// Field values are kept as extracted strings so the slot-filling engine can
// stay generic over any field set.
type TransferDraft struct {
	Fields               map[string]string `json:"fields"`
	LastPrompted         string            `json:"lastPrompted,omitempty"` // field asked for on the previous turn
	Price                float64           `json:"price,omitempty"`
	AwaitingConfirmation bool              `json:"awaitingConfirmation"`
}

// NewTransferDraft returns an empty draft ready for slot filling.
func NewTransferDraft() *TransferDraft {
	return &TransferDraft{Fields: make(map[string]string)}
}

// Session is the per-caller conversation state, keyed by normalized phone
// digits. It is created on the first inbound message and discarded on /reset
// or TTL expiry; the cached BookingContext goes with it.
type Session struct {
	CreatedAt      time.Time      `json:"createdAt"`
	History        []HistoryEntry `json:"history,omitempty"`
	AskedIntro     bool           `json:"askedIntro"`
	BookingChecked bool           `json:"bookingChecked"`
	Context        BookingContext `json:"context"`
	ResolvedRef    string         `json:"resolvedRef,omitempty"` // reservation reference the context was resolved from
	Structure      string         `json:"structure,omitempty"`   // property the caller is bound to
	Flow           string         `json:"flow,omitempty"`        // "" or "transfer"
	Transfer       *TransferDraft `json:"transfer,omitempty"`
	AutoDisclosed  bool           `json:"autoDisclosed"`
}

// AppendHistory records a message, clamping the history to its bound.
func (s *Session) AppendHistory(role, text string) {
	s.History = append(s.History, HistoryEntry{Role: role, Text: text})
	if len(s.History) > MaxHistoryEntries {
		s.History = s.History[len(s.History)-MaxHistoryEntries:]
	}
}
