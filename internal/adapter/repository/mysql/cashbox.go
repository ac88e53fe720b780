package mysql

import (
	"context"

	cashboxDomain "glowdesk-backend/internal/domain/cashbox"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CashSessionRepository struct{ db *gorm.DB }

func NewCashSessionRepository(db *gorm.DB) *CashSessionRepository {
	return &CashSessionRepository{db: db}
}

func (r *CashSessionRepository) Create(ctx context.Context, s *cashboxDomain.CashSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CashSessionRepository) Save(ctx context.Context, s *cashboxDomain.CashSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *CashSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*cashboxDomain.CashSession, error) {
	var out cashboxDomain.CashSession
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&out)
	return &out, res.Error
}

// GetBySessionIDForUpdate locks the session row; transaction appends and
// close serialize on this lock.
func (r *CashSessionRepository) GetBySessionIDForUpdate(ctx context.Context, sessionID string) (*cashboxDomain.CashSession, error) {
	var out cashboxDomain.CashSession
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("session_id = ?", sessionID).
		First(&out)
	return &out, res.Error
}

func (r *CashSessionRepository) GetOpenByOrg(ctx context.Context, orgID string) (*cashboxDomain.CashSession, error) {
	var out cashboxDomain.CashSession
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND status = ?", orgID, cashboxDomain.StatusOpen).
		Order("opened_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}
