// File: services/concierge/intents.go
package concierge

import "regexp"

// Intent is the topic a message is routed to.
type Intent string

const (
	IntentTransfer Intent = "transfer"
	IntentParking  Intent = "parking"
	IntentPower    Intent = "power"
	IntentAccess   Intent = "access"
	IntentGreeting Intent = "greeting"
	IntentOther    Intent = "other"
)

// intentRules is evaluated top-down; the first matching rule wins. The
// sensitive-terms guard is not part of this table: it runs before
// classification and short-circuits the whole turn (see service.go).
var intentRules = []struct {
	intent Intent
	re     *regexp.Regexp
}{
	{IntentTransfer, regexp.MustCompile(`(?i)\b(taxi|transfer|trasfer\w*|aeroporto|airport|stazione|ncc)\b`)},
	{IntentParking, regexp.MustCompile(`(?i)(parchegg|\bauto\b|macchina|\bpark\w*)`)},
	{IntentPower, regexp.MustCompile(`(?i)(corrente|\bluce\b|contatore|blackout)`)},
	{IntentAccess, regexp.MustCompile(`(?i)(check\s?-?in|istruzioni|video|accesso|chiavi)`)},
	{IntentGreeting, regexp.MustCompile(`(?i)\b(ciao|buongiorno|buonasera|salve|hello|hi)\b`)},
}

// Classify routes free text to an Intent.
func Classify(text string) Intent {
	for _, rule := range intentRules {
		if rule.re.MatchString(text) {
			return rule.intent
		}
	}
	return IntentOther
}
