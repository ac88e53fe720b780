package repomock

import (
	"context"
	"time"

	domain "glowdesk-backend/internal/domain/ledger"
)

// TransactionRepo is a function-backed mock for ledger.TransactionRepository.
type TransactionRepo struct {
	CreateFn             func(ctx context.Context, t *domain.CashTransaction) error
	GetByTransactionIDFn func(ctx context.Context, transactionID string) (*domain.CashTransaction, error)
	ListBySessionFn      func(ctx context.Context, cashSessionID uint64) ([]domain.CashTransaction, error)
	SumByTypeFn          func(ctx context.Context, cashSessionID uint64, t domain.TransactionType) (int64, error)
}

func (m *TransactionRepo) Create(ctx context.Context, t *domain.CashTransaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *TransactionRepo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	if m.GetByTransactionIDFn != nil {
		return m.GetByTransactionIDFn(ctx, transactionID)
	}
	return nil, context.Canceled
}

func (m *TransactionRepo) ListBySession(ctx context.Context, cashSessionID uint64) ([]domain.CashTransaction, error) {
	if m.ListBySessionFn != nil {
		return m.ListBySessionFn(ctx, cashSessionID)
	}
	return nil, nil
}

func (m *TransactionRepo) SumByType(ctx context.Context, cashSessionID uint64, t domain.TransactionType) (int64, error) {
	if m.SumByTypeFn != nil {
		return m.SumByTypeFn(ctx, cashSessionID, t)
	}
	return 0, nil
}

// PaymentRepo is a function-backed mock for ledger.PaymentRepository.
type PaymentRepo struct {
	CreateFn                  func(ctx context.Context, p *domain.InvoicePayment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.InvoicePayment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.InvoicePayment, error)
	SaveFn                    func(ctx context.Context, p *domain.InvoicePayment) error
	ListByInvoiceFn           func(ctx context.Context, orgID, invoiceID string) ([]domain.InvoicePayment, error)
	SumConfirmedCashFn        func(ctx context.Context, orgID string, dir domain.Direction, since time.Time) (int64, error)
}

func (m *PaymentRepo) Create(ctx context.Context, p *domain.InvoicePayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *PaymentRepo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.InvoicePayment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *PaymentRepo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.InvoicePayment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *PaymentRepo) Save(ctx context.Context, p *domain.InvoicePayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *PaymentRepo) ListByInvoice(ctx context.Context, orgID, invoiceID string) ([]domain.InvoicePayment, error) {
	if m.ListByInvoiceFn != nil {
		return m.ListByInvoiceFn(ctx, orgID, invoiceID)
	}
	return nil, nil
}

func (m *PaymentRepo) SumConfirmedCash(ctx context.Context, orgID string, dir domain.Direction, since time.Time) (int64, error) {
	if m.SumConfirmedCashFn != nil {
		return m.SumConfirmedCashFn(ctx, orgID, dir, since)
	}
	return 0, nil
}
