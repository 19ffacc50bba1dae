package cart

import "context"

// Store persists cart snapshots per browsing session. Implementations must
// treat the stored items as opaque state; all business rules live in the
// pure transforms and the service layer.
type Store interface {
	// Load returns the items stored for the session, or an empty slice when
	// the session has no cart yet.
	Load(ctx context.Context, sessionID string) ([]LineItem, error)
	// Save replaces the session's cart with the given items. Saving an empty
	// slice clears the session entry.
	Save(ctx context.Context, sessionID string, items []LineItem) error
}
