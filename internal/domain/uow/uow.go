package uow

import (
	"context"

	"glowdesk-backend/internal/domain/approval"
	"glowdesk-backend/internal/domain/cashbox"
	"glowdesk-backend/internal/domain/ledger"
	"glowdesk-backend/internal/domain/payroll"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Sessions     cashbox.Repository
	Transactions ledger.TransactionRepository
	Payments     ledger.PaymentRepository
	Policies     approval.PolicyRepository
	Requests     approval.RequestRepository
	Configs      payroll.ConfigRepository
	Cycles       payroll.CycleRepository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one database transaction; any error rolls the
	// whole unit back. Every mutating usecase path goes through here so a
	// failed step never leaves a partial ledger write.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
