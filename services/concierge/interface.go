// File: services/concierge/interface.go
package concierge

import "context"

// ConciergeService is the single entry point of the conversational core:
// one inbound message in, one reply out. The literal "/reset" command
// discards the caller's session unconditionally.
type ConciergeService interface {
	HandleMessage(ctx context.Context, callerID, text string) string
}
