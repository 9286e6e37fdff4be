// File: services/concierge/transfer.go
package concierge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"guestdesk/kb"
)

// Transfer flow field names, in prompt order.
const (
	FieldPersons     = "persons"
	FieldTime        = "time"
	FieldOrigin      = "origin"
	FieldDestination = "destination"
)

var (
	timeRe    = regexp.MustCompile(`\b(\d{1,2})[:.](\d{2})\b`)
	personsRe = regexp.MustCompile(`\b([1-9]|1[0-9])\b`)

	airportWordRe = regexp.MustCompile(`(?i)\b(aeroporto|airport)\b`)
	// "dall'aeroporto", "dall aeroporto", "dalla stazione", "da <place>"
	airportFromRe = regexp.MustCompile(`(?i)dall[''’]?\s*(?:aeroporto|airport)`)
	stationFromRe = regexp.MustCompile(`(?i)dalla\s+stazione`)
	fromClauseRe  = regexp.MustCompile(`(?i)\b(?:da|dal|dalla)\s+(.{2,40})`)
	// "all'aeroporto", "in aeroporto", "verso/per aeroporto"
	airportToRe = regexp.MustCompile(`(?i)\b(?:all[''’]?\s*|in\s+|verso\s+|per\s+)(?:aeroporto|airport)`)
	toClauseRe  = regexp.MustCompile(`(?i)\b(?:a|al|alla|per|verso)\s+(.{2,40})`)
)

// extractPersons finds a small standalone count. Time mentions are blanked
// first so "15:30" never reads as fifteen people.
func extractPersons(text string) (string, bool) {
	t := timeRe.ReplaceAllString(text, " ")
	if m := personsRe.FindStringSubmatch(t); m != nil {
		return m[1], true
	}
	return "", false
}

// extractTime normalizes HH:MM / H.MM mentions to zero-padded HH:MM.
func extractTime(text string) (string, bool) {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil || h > 23 {
		return "", false
	}
	return fmt.Sprintf("%02d:%s", h, m[2]), true
}

// newOriginExtractor recognizes the departure point from "da ..." clauses.
func newOriginExtractor(k *kb.KnowledgeBase) Extractor {
	return func(text string) (string, bool) {
		if airportFromRe.MatchString(text) {
			return "aeroporto", true
		}
		if stationFromRe.MatchString(text) {
			return "stazione", true
		}
		if m := fromClauseRe.FindStringSubmatch(text); m != nil {
			if s := k.MatchStructure(m[1]); s != "" {
				return s, true
			}
		}
		return "", false
	}
}

// newDestinationExtractor recognizes the arrival point from "a ..." clauses.
func newDestinationExtractor(k *kb.KnowledgeBase) Extractor {
	return func(text string) (string, bool) {
		if airportToRe.MatchString(text) {
			return "aeroporto", true
		}
		if m := toClauseRe.FindStringSubmatch(text); m != nil {
			if s := k.MatchStructure(m[1]); s != "" {
				return s, true
			}
		}
		return "", false
	}
}

// NewTransferFlow binds the generic slot-filling engine to the transfer
// request: persons, departure time, origin, destination, priced from the
// knowledge-base tariff table.
func NewTransferFlow(k *kb.KnowledgeBase) *FlowSpec {
	return &FlowSpec{
		Fields: []FlowField{
			{Name: FieldPersons, Prompt: "Per organizzare il transfer: per quante persone?", Extract: extractPersons},
			{Name: FieldTime, Prompt: "A che ora vuoi partire? (es. 15:30)", Extract: extractTime},
			{Name: FieldOrigin, Prompt: "Da dove partiamo?", Extract: newOriginExtractor(k), AcceptFreeText: true},
			{Name: FieldDestination, Prompt: "Qual è la destinazione?", Extract: newDestinationExtractor(k), AcceptFreeText: true},
		},
		Summarize: func(values map[string]string) (string, float64) {
			price := k.CityTariff()
			if airportWordRe.MatchString(values[FieldOrigin]) || airportWordRe.MatchString(values[FieldDestination]) {
				price = k.AirportTariff()
			}
			summary := fmt.Sprintf(
				"Perfetto, riepilogo:\n• Persone: %s\n• Orario: %s\n• Partenza: %s\n• Destinazione: %s\nTariffa: %s€\nConfermi che la tariffa va bene? (sì/no)",
				values[FieldPersons], values[FieldTime], values[FieldOrigin], values[FieldDestination],
				formatPrice(price),
			)
			return summary, price
		},
		Confirmed: func(_ map[string]string, price float64) string {
			return fmt.Sprintf("👍 Perfetto! Ho registrato la richiesta (tariffa %s€). Niccolò ti contatterà a breve per la conferma definitiva.", formatPrice(price))
		},
		CanceledReply: "Ok, annullato. Posso aiutarti con altro (Parcheggio, Corrente, Check-in)?",
		ReaskReply:    "Mi serve solo una conferma sulla tariffa: va bene? (sì/no)",
	}
}

func formatPrice(p float64) string {
	return strings.TrimSuffix(strings.TrimRight(strconv.FormatFloat(p, 'f', 2, 64), "0"), ".")
}
