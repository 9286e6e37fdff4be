// File: kb/kb.go
package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// StructureInfo holds the static guest-facing content for one property.
type StructureInfo struct {
	Parking string            `json:"parking"`
	Power   string            `json:"power,omitempty"`
	Videos  map[string]string `json:"videos,omitempty"`
}

// Video keys used inside StructureInfo.Videos.
const (
	VideoSelfCheckin  = "self_checkin"
	VideoPowerRestore = "power_restore"
)

// GlobalRules carries the sensitive-terms guard configuration.
type GlobalRules struct {
	SensitiveKeywords []string `json:"sensitive_keywords"`
	SensitiveResponse string   `json:"sensitive_response"`
}

// TransferPolicy is the two-entry tariff table for NCC transfers.
type TransferPolicy struct {
	NCC map[string]float64 `json:"ncc"`
}

// Tariff keys inside TransferPolicy.NCC.
const (
	TariffAirport = "aeroporto<->città"
	TariffCity    = "città<->città"
)

// KnowledgeBase is the static content the concierge reads by key. Loaded once
// at startup; read-only afterwards.
type KnowledgeBase struct {
	GlobalRules    GlobalRules              `json:"global_rules"`
	Structures     map[string]StructureInfo `json:"structures"`
	TransferPolicy TransferPolicy           `json:"transfer_policy"`
}

// StructureAliases maps free-text mentions to canonical property names.
var StructureAliases = map[string]string{
	"relais":           "Relais dell'Ussero",
	"ussero":           "Relais dell'Ussero",
	"casa monic":       "Casa Monic",
	"monic":            "Casa Monic",
	"belle vue":        "Belle Vue",
	"bellevue":         "Belle Vue",
	"villino":          "Villino di Monic",
	"villino di monic": "Villino di Monic",
	"gina":             "Casa di Gina",
	"casa di gina":     "Casa di Gina",
}

// Load reads and parses the knowledge base file.
func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	var k KnowledgeBase
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	return &k, nil
}

// Structure returns the info block for a canonical property name.
func (k *KnowledgeBase) Structure(name string) (StructureInfo, bool) {
	s, ok := k.Structures[name]
	return s, ok
}

// aliasOrder holds the alias keys longest-first, so "villino di monic" wins
// over the bare "monic".
var aliasOrder = func() []string {
	keys := make([]string, 0, len(StructureAliases))
	for alias := range StructureAliases {
		keys = append(keys, alias)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// MatchStructure scans free text for a property alias and returns the
// canonical name of the best match.
func (k *KnowledgeBase) MatchStructure(text string) string {
	t := strings.ToLower(text)
	for _, alias := range aliasOrder {
		if strings.Contains(t, alias) {
			return StructureAliases[alias]
		}
	}
	return ""
}

// ContainsSensitive reports whether the text mentions any configured
// sensitive term.
func (k *KnowledgeBase) ContainsSensitive(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range k.GlobalRules.SensitiveKeywords {
		if kw != "" && strings.Contains(t, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// SensitiveReply returns the fixed safety reply.
func (k *KnowledgeBase) SensitiveReply() string {
	return k.GlobalRules.SensitiveResponse
}

// AirportTariff returns the tariff for airport-linked trips.
func (k *KnowledgeBase) AirportTariff() float64 {
	return k.TransferPolicy.NCC[TariffAirport]
}

// CityTariff returns the tariff for city-to-city trips.
func (k *KnowledgeBase) CityTariff() float64 {
	return k.TransferPolicy.NCC[TariffCity]
}
