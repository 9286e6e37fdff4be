// File: services/concierge/slotflow.go
package concierge

import (
	"strings"

	"guestdesk/models"
)

// FlowStatus is the state of a slot-filling dialogue after a turn.
type FlowStatus int

const (
	FlowCollecting FlowStatus = iota
	FlowConfirming
	FlowDone
	FlowCanceled
)

// Extractor pulls one field value out of a free-text message.
type Extractor func(text string) (string, bool)

// FlowField describes one required field of a structured request.
type FlowField struct {
	Name   string
	Prompt string // asked when this is the next missing field
	// Extract recognizes the field anywhere in a message.
	Extract Extractor
	// AcceptFreeText lets the whole message stand as the value when this
	// exact field was prompted on the previous turn and the extractor did
	// not match. Off for typed fields like counts and times.
	AcceptFreeText bool
}

// FlowSpec is a generic multi-turn structured request: an ordered field
// table plus the summary and terminal replies. The engine below is the only
// slot-filling control flow in the system; new flows supply a new table, not
// new code.
type FlowSpec struct {
	Fields []FlowField
	// Summarize derives the priced summary once every field is present.
	Summarize func(values map[string]string) (summary string, price float64)
	// Confirmed renders the final acknowledgement.
	Confirmed     func(values map[string]string, price float64) string
	CanceledReply string
	ReaskReply    string
}

// FlowResult is the engine's outcome for one inbound message.
type FlowResult struct {
	Status FlowStatus
	Reply  string
}

var affirmVocab = map[string]bool{
	"si": true, "sì": true, "ok": true, "va bene": true,
	"confermo": true, "yes": true, "y": true,
}

var denyVocab = map[string]bool{
	"no": true, "annulla": true, "non confermo": true,
}

// Step advances the dialogue with one message. While collecting it merges
// every recognizable field, then asks for exactly the next missing one in
// order. Once all fields are present it emits the priced summary and waits
// for a yes/no.
func (f *FlowSpec) Step(draft *models.TransferDraft, text string) FlowResult {
	if draft.AwaitingConfirmation {
		t := strings.ToLower(strings.TrimSpace(text))
		switch {
		case affirmVocab[t]:
			return FlowResult{Status: FlowDone, Reply: f.Confirmed(draft.Fields, draft.Price)}
		case denyVocab[t]:
			return FlowResult{Status: FlowCanceled, Reply: f.CanceledReply}
		default:
			return FlowResult{Status: FlowConfirming, Reply: f.ReaskReply}
		}
	}

	for _, fld := range f.Fields {
		if draft.Fields[fld.Name] != "" {
			continue
		}
		if v, ok := fld.Extract(text); ok {
			draft.Fields[fld.Name] = v
		}
	}

	// A bare answer to the previous prompt fills that field directly.
	if draft.LastPrompted != "" && draft.Fields[draft.LastPrompted] == "" {
		for _, fld := range f.Fields {
			if fld.Name == draft.LastPrompted && fld.AcceptFreeText {
				if v := strings.TrimSpace(text); v != "" {
					draft.Fields[fld.Name] = v
				}
			}
		}
	}

	for _, fld := range f.Fields {
		if draft.Fields[fld.Name] == "" {
			draft.LastPrompted = fld.Name
			return FlowResult{Status: FlowCollecting, Reply: fld.Prompt}
		}
	}

	summary, price := f.Summarize(draft.Fields)
	draft.Price = price
	draft.AwaitingConfirmation = true
	draft.LastPrompted = ""
	return FlowResult{Status: FlowConfirming, Reply: summary}
}
