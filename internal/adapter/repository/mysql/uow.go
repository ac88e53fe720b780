package mysql

import (
	"context"

	"glowdesk-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(makeRepos(tx))
	})
}

// makeRepos binds every repository to the same transaction handle.
func makeRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Sessions:     &CashSessionRepository{db: tx},
		Transactions: &CashTransactionRepository{db: tx},
		Payments:     &InvoicePaymentRepository{db: tx},
		Policies:     &ApprovalPolicyRepository{db: tx},
		Requests:     &ApprovalRequestRepository{db: tx},
		Configs:      &PayrollConfigRepository{db: tx},
		Cycles:       &PayrollCycleRepository{db: tx},
	}
}
