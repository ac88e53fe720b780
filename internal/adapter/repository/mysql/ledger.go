package mysql

import (
	"context"
	"time"

	ledgerDomain "glowdesk-backend/internal/domain/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CashTransactionRepository struct{ db *gorm.DB }

func NewCashTransactionRepository(db *gorm.DB) *CashTransactionRepository {
	return &CashTransactionRepository{db: db}
}

func (r *CashTransactionRepository) Create(ctx context.Context, t *ledgerDomain.CashTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *CashTransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*ledgerDomain.CashTransaction, error) {
	var out ledgerDomain.CashTransaction
	res := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&out)
	return &out, res.Error
}

func (r *CashTransactionRepository) ListBySession(ctx context.Context, cashSessionID uint64) ([]ledgerDomain.CashTransaction, error) {
	var out []ledgerDomain.CashTransaction
	res := r.db.WithContext(ctx).
		Where("cash_session_id = ?", cashSessionID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *CashTransactionRepository) SumByType(ctx context.Context, cashSessionID uint64, t ledgerDomain.TransactionType) (int64, error) {
	var sum int64
	res := r.db.WithContext(ctx).
		Model(&ledgerDomain.CashTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("cash_session_id = ? AND type = ?", cashSessionID, t).
		Scan(&sum)
	return sum, res.Error
}

type InvoicePaymentRepository struct{ db *gorm.DB }

func NewInvoicePaymentRepository(db *gorm.DB) *InvoicePaymentRepository {
	return &InvoicePaymentRepository{db: db}
}

func (r *InvoicePaymentRepository) Create(ctx context.Context, p *ledgerDomain.InvoicePayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *InvoicePaymentRepository) Save(ctx context.Context, p *ledgerDomain.InvoicePayment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *InvoicePaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*ledgerDomain.InvoicePayment, error) {
	var out ledgerDomain.InvoicePayment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	return &out, res.Error
}

func (r *InvoicePaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*ledgerDomain.InvoicePayment, error) {
	var out ledgerDomain.InvoicePayment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_id = ?", paymentID).
		First(&out)
	return &out, res.Error
}

func (r *InvoicePaymentRepository) ListByInvoice(ctx context.Context, orgID, invoiceID string) ([]ledgerDomain.InvoicePayment, error) {
	var out []ledgerDomain.InvoicePayment
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND invoice_id = ?", orgID, invoiceID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// SumConfirmedCash aggregates confirmed cash-method legs in one direction
// confirmed at or after since. The session snapshot is recomputed from this
// query every time; nothing keeps a running counter.
func (r *InvoicePaymentRepository) SumConfirmedCash(ctx context.Context, orgID string, dir ledgerDomain.Direction, since time.Time) (int64, error) {
	var sum int64
	res := r.db.WithContext(ctx).
		Model(&ledgerDomain.InvoicePayment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("organization_id = ? AND method = ? AND status = ? AND direction = ? AND confirmed_at >= ?",
			orgID, ledgerDomain.MethodCash, ledgerDomain.PaymentConfirmed, dir, since).
		Scan(&sum)
	return sum, res.Error
}
