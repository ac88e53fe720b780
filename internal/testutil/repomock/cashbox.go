package repomock

import (
	"context"

	domain "glowdesk-backend/internal/domain/cashbox"
)

// SessionRepo is a function-backed mock that satisfies cashbox.Repository.
// Only methods you need are included; add more as tests require.
type SessionRepo struct {
	CreateFn                  func(ctx context.Context, s *domain.CashSession) error
	GetBySessionIDFn          func(ctx context.Context, sessionID string) (*domain.CashSession, error)
	GetBySessionIDForUpdateFn func(ctx context.Context, sessionID string) (*domain.CashSession, error)
	GetOpenByOrgFn            func(ctx context.Context, orgID string) (*domain.CashSession, error)
	SaveFn                    func(ctx context.Context, s *domain.CashSession) error
}

func (m *SessionRepo) Create(ctx context.Context, s *domain.CashSession) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *SessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	if m.GetBySessionIDFn != nil {
		return m.GetBySessionIDFn(ctx, sessionID)
	}
	return nil, context.Canceled
}

func (m *SessionRepo) GetBySessionIDForUpdate(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	if m.GetBySessionIDForUpdateFn != nil {
		return m.GetBySessionIDForUpdateFn(ctx, sessionID)
	}
	return nil, context.Canceled
}

func (m *SessionRepo) GetOpenByOrg(ctx context.Context, orgID string) (*domain.CashSession, error) {
	if m.GetOpenByOrgFn != nil {
		return m.GetOpenByOrgFn(ctx, orgID)
	}
	return nil, context.Canceled
}

func (m *SessionRepo) Save(ctx context.Context, s *domain.CashSession) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}
