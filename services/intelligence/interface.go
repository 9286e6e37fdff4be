// File: services/intelligence/interface.go
package intelligence

import (
	"context"

	"guestdesk/models"
)

// Responder produces a free-text reply for messages no intent rule claimed.
// Implementations must respect the context deadline; callers fall back to a
// fixed apology on any error.
type Responder interface {
	Respond(ctx context.Context, history []models.HistoryEntry, text string) (string, error)
}
