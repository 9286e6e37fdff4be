// File: services/concierge/service.go
package concierge

import (
	"context"
	"strings"
	"sync"
	"time"

	"guestdesk/kb"
	"guestdesk/models"
	"guestdesk/services/ciaobooking"
	"guestdesk/services/intelligence"
	"guestdesk/utils"

	"go.uber.org/zap"
)

const (
	replyReset = "✅ Conversazione resettata. Come posso aiutarti? (Taxi/Transfer, Parcheggio o Altro)"

	replyIntroKnown   = "Ciao! Come posso aiutarti oggi? *Taxi/Transfer*, *Parcheggio* o *Altro*?"
	replyIntroUnknown = "Ciao! Come posso aiutarti? *Taxi/Transfer*, *Parcheggio* o *Altro*? Hai già una prenotazione a tuo nome?"
	replyGreeting     = "Dimmi pure: *Taxi/Transfer*, *Parcheggio* o *Altro*?"

	replyFallbackDown = "Scusa, al momento non riesco a risponderti. Se ti serve *Taxi/Transfer* o *Parcheggio* dillo pure; altrimenti chiedimi del video di check-in."

	structureList = "(Relais dell'Ussero, Casa Monic, Belle Vue, Villino di Monic, Casa di Gina)"

	replyRefNotFound = "Non trovo una prenotazione con quel codice. Mi dici il nome della struttura dove alloggi? " + structureList

	replyVerificationNeeded = "Per inviarti le istruzioni di accesso devo prima completare la verifica del check-in: " +
		"mi servono l'indirizzo di residenza e i documenti d'identità di tutti gli ospiti " +
		"(oppure del capogruppo insieme ai dati degli altri). Appena ricevuti ti mando subito il video."
)

// DefaultConciergeService wires the resolver, the disclosure policy, the
// slot-filling transfer flow and the knowledge base behind HandleMessage.
type DefaultConciergeService struct {
	Booking  ciaobooking.API
	Sessions SessionStore
	KB       *kb.KnowledgeBase
	Fallback intelligence.Responder
	Policy   DisclosurePolicy
	Now      func() time.Time

	resolver     *Resolver
	transferFlow *FlowSpec

	// Per-caller locks: slot-filling merges are read-modify-write, so
	// mutation of one caller's session is serialized. Different callers
	// never contend.
	lockMu      sync.Mutex
	callerLocks map[string]*sync.Mutex
}

// NewConciergeService builds the service. Fallback may be nil; unclassified
// text then gets the fixed apology.
func NewConciergeService(api ciaobooking.API, sessions SessionStore, knowledge *kb.KnowledgeBase, fallback intelligence.Responder, policy DisclosurePolicy) *DefaultConciergeService {
	s := &DefaultConciergeService{
		Booking:     api,
		Sessions:    sessions,
		KB:          knowledge,
		Fallback:    fallback,
		Policy:      policy,
		Now:         time.Now,
		callerLocks: make(map[string]*sync.Mutex),
	}
	s.resolver = &Resolver{API: api, Now: func() time.Time { return s.Now() }}
	s.transferFlow = NewTransferFlow(knowledge)
	return s
}

func (s *DefaultConciergeService) lockCaller(key string) func() {
	s.lockMu.Lock()
	l, ok := s.callerLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.callerLocks[key] = l
	}
	s.lockMu.Unlock()
	l.Lock()
	return l.Unlock
}

// HandleMessage processes one inbound message for a caller and returns the
// reply text. Nothing in here is fatal: every external failure degrades to a
// polite reply.
func (s *DefaultConciergeService) HandleMessage(ctx context.Context, callerID, text string) string {
	logger := utils.GetLogger()

	caller := utils.NormalizeSender(callerID)
	if caller == "" {
		caller = "anon"
	}

	if strings.EqualFold(strings.TrimSpace(text), "/reset") {
		if err := s.Sessions.Clear(ctx, caller); err != nil {
			logger.Warn("Session reset failed", zap.String("caller", caller), zap.Error(err))
		}
		return replyReset
	}

	unlock := s.lockCaller(caller)
	defer unlock()

	sess, err := s.Sessions.Get(ctx, caller)
	if err != nil {
		logger.Warn("Session load failed", zap.String("caller", caller), zap.Error(err))
		sess = nil
	}
	if sess == nil {
		sess = &models.Session{CreatedAt: s.Now()}
	}

	sess.AppendHistory("user", text)
	reply := s.reply(ctx, caller, sess, text)
	sess.AppendHistory("assistant", reply)

	if err := s.Sessions.Set(ctx, caller, sess); err != nil {
		logger.Warn("Session save failed", zap.String("caller", caller), zap.Error(err))
	}
	return reply
}

func (s *DefaultConciergeService) reply(ctx context.Context, caller string, sess *models.Session, text string) string {
	// The sensitive guard runs before everything else, booking lookups
	// included.
	if s.KB.ContainsSensitive(text) {
		return s.KB.SensitiveReply()
	}

	refNotFound := s.refreshContext(ctx, caller, sess, text)

	if st := s.KB.MatchStructure(text); st != "" {
		sess.Structure = st
	}

	if refNotFound {
		return replyRefNotFound
	}

	// Proactive disclosure: evaluated after resolution whether or not the
	// guest asked for anything.
	proactive := s.proactiveDisclosure(sess)

	if sess.Flow == "transfer" && sess.Transfer != nil {
		return withNote(s.stepTransfer(sess, text), proactive)
	}

	intent := Classify(text)

	if !sess.AskedIntro {
		sess.AskedIntro = true
		if intent == IntentGreeting || intent == IntentOther {
			if sess.Context.Client != nil {
				return withNote(replyIntroKnown, proactive)
			}
			return withNote(replyIntroUnknown, proactive)
		}
	}

	switch intent {
	case IntentTransfer:
		sess.Flow = "transfer"
		sess.Transfer = models.NewTransferDraft()
		return withNote(s.stepTransfer(sess, text), proactive)
	case IntentParking:
		return withNote(s.parkingReply(sess), proactive)
	case IntentPower:
		return withNote(s.powerReply(sess), proactive)
	case IntentAccess:
		return withNote(s.accessReply(sess), proactive)
	case IntentGreeting:
		return withNote(replyGreeting, proactive)
	default:
		return withNote(s.fallbackReply(ctx, sess, text), proactive)
	}
}

// refreshContext resolves the booking context once per session, or again
// when the caller types a reservation reference the session has not seen.
// Returns true when a typed reference turned out not to exist.
func (s *DefaultConciergeService) refreshContext(ctx context.Context, caller string, sess *models.Session, text string) bool {
	ref := reservationRefRe.FindString(text)
	if sess.BookingChecked && (ref == "" || ref == sess.ResolvedRef) {
		return false
	}

	res := s.resolver.Resolve(ctx, caller, text)
	sess.BookingChecked = true
	sess.Context = res.Context
	sess.AutoDisclosed = false

	if sess.Structure == "" && res.Context.Reservation != nil {
		prop := res.Context.Reservation.Property
		if _, ok := s.KB.Structure(prop); ok {
			sess.Structure = prop
		} else if st := s.KB.MatchStructure(prop); st != "" {
			sess.Structure = st
		}
	}

	if res.RefMentioned {
		sess.ResolvedRef = res.Ref
		return !res.RefFound
	}
	return false
}

// proactiveDisclosure sends the self-check-in video once per session when
// the policy allows it.
func (s *DefaultConciergeService) proactiveDisclosure(sess *models.Session) string {
	if sess.AutoDisclosed || !s.Policy.MayAutoDisclose(sess.Context, s.Now()) {
		return ""
	}
	structure := s.boundStructure(sess)
	if structure == "" {
		return ""
	}
	info, ok := s.KB.Structure(structure)
	if !ok {
		return ""
	}
	url, ok := info.Videos[kb.VideoSelfCheckin]
	if !ok {
		return ""
	}
	sess.AutoDisclosed = true
	return "Il tuo check-in risulta completato: ecco il video di self check-in per *" + structure + "*: " + url
}

func (s *DefaultConciergeService) boundStructure(sess *models.Session) string {
	if sess.Structure != "" {
		return sess.Structure
	}
	if r := sess.Context.Reservation; r != nil {
		if _, ok := s.KB.Structure(r.Property); ok {
			return r.Property
		}
		return s.KB.MatchStructure(r.Property)
	}
	return ""
}

func (s *DefaultConciergeService) stepTransfer(sess *models.Session, text string) string {
	res := s.transferFlow.Step(sess.Transfer, text)
	if res.Status == FlowDone || res.Status == FlowCanceled {
		sess.Flow = ""
		sess.Transfer = nil
	}
	return res.Reply
}

func (s *DefaultConciergeService) parkingReply(sess *models.Session) string {
	structure := s.boundStructure(sess)
	if structure == "" {
		return "Per il parcheggio mi dici in quale struttura alloggi? " + structureList
	}
	info, ok := s.KB.Structure(structure)
	if !ok || info.Parking == "" {
		return "Per il parcheggio ti aiuto volentieri: in quale struttura stai soggiornando?"
	}
	return "Parcheggio per *" + structure + "*: " + info.Parking + "."
}

func (s *DefaultConciergeService) powerReply(sess *models.Session) string {
	structure := s.boundStructure(sess)
	if structure == "" {
		return "Mi indichi la struttura? Così ti aiuto al meglio per la corrente."
	}
	info, ok := s.KB.Structure(structure)
	if !ok {
		return "Mi indichi la struttura? Così ti aiuto al meglio per la corrente."
	}
	if info.Power != "" {
		reply := info.Power
		// The textual help always goes out; the video link waits for the
		// document check like any other asset.
		if url, ok := info.Videos[kb.VideoPowerRestore]; ok && !ExplicitRequestBlocked(sess.Context) {
			reply += "\nVideo: " + url
		}
		return reply
	}
	return "Per problemi di corrente in questa struttura, ti metto in contatto con Niccolò."
}

func (s *DefaultConciergeService) accessReply(sess *models.Session) string {
	if ExplicitRequestBlocked(sess.Context) {
		return replyVerificationNeeded
	}
	structure := s.boundStructure(sess)
	if structure == "" {
		return "Per inviarti il video di check-in, mi dici la struttura?"
	}
	info, ok := s.KB.Structure(structure)
	if ok {
		if url, found := info.Videos[kb.VideoSelfCheckin]; found {
			return "Video check-in *" + structure + "*: " + url
		}
	}
	return "Al momento non ho un video per questa struttura. Per dettagli operativi ti scriverà Niccolò."
}

func (s *DefaultConciergeService) fallbackReply(ctx context.Context, sess *models.Session, text string) string {
	if s.Fallback == nil {
		return replyFallbackDown
	}
	// History already contains the current message; hand the responder
	// everything before it.
	history := sess.History
	if n := len(history); n > 0 {
		history = history[:n-1]
	}
	reply, err := s.Fallback.Respond(ctx, history, text)
	if err != nil || strings.TrimSpace(reply) == "" {
		utils.GetLogger().Warn("Fallback responder failed", zap.Error(err))
		return replyFallbackDown
	}
	return reply
}

// withNote appends the proactive disclosure, when present, to the turn reply.
func withNote(reply, note string) string {
	if note == "" {
		return reply
	}
	return reply + "\n\n" + note
}
