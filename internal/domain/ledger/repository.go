package ledger

import (
	"context"
	"time"
)

type TransactionRepository interface {
	// Append-only: there is deliberately no Save/Delete.
	Create(ctx context.Context, t *CashTransaction) error

	GetByTransactionID(ctx context.Context, transactionID string) (*CashTransaction, error)

	ListBySession(ctx context.Context, cashSessionID uint64) ([]CashTransaction, error)

	// SUM(amount) of the session's transactions of one type.
	SumByType(ctx context.Context, cashSessionID uint64, t TransactionType) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *InvoicePayment) error

	GetByPaymentID(ctx context.Context, paymentID string) (*InvoicePayment, error)

	// Row-locked variant for the pending -> terminal CAS.
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*InvoicePayment, error)

	Save(ctx context.Context, p *InvoicePayment) error

	ListByInvoice(ctx context.Context, orgID, invoiceID string) ([]InvoicePayment, error)

	// SUM(amount) of confirmed cash-method legs in the given direction,
	// confirmed at or after since. Feeds the session snapshot.
	SumConfirmedCash(ctx context.Context, orgID string, dir Direction, since time.Time) (int64, error)
}
