package cashbox

import "context"

type Repository interface {
	// Create a new session (DB uniqueness ensures at most one open per org)
	Create(ctx context.Context, s *CashSession) error

	// Get by public session_id
	GetBySessionID(ctx context.Context, sessionID string) (*CashSession, error)

	// Row-locked variant; appends and close serialize on this lock.
	GetBySessionIDForUpdate(ctx context.Context, sessionID string) (*CashSession, error)

	// The organization's open session, if any
	GetOpenByOrg(ctx context.Context, orgID string) (*CashSession, error)

	Save(ctx context.Context, s *CashSession) error
}
