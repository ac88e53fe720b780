package approval

import (
	"context"
	"errors"
	"time"

	approvalDomain "glowdesk-backend/internal/domain/approval"
	ledgerDomain "glowdesk-backend/internal/domain/ledger"
	"glowdesk-backend/internal/domain/uow"
	"glowdesk-backend/pkg/apperr"
	"glowdesk-backend/pkg/id"

	"gorm.io/gorm"
)

// The execute* methods are the one place each gated action is actually
// performed. Direct submission and replay-on-approve both land here, so a
// deferred action re-enters exactly the path it would have taken ungated.

func (u *Usecase) executeCashOut(ctx context.Context, r uow.Repos, orgID, actor string, p approvalDomain.CashOutPayload) (*ledgerDomain.CashTransaction, error) {
	s, err := r.Sessions.GetBySessionIDForUpdate(ctx, p.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("cash session %s not found", p.SessionID)
		}
		return nil, err
	}
	if s.OrganizationID != orgID {
		return nil, apperr.NotFoundf("cash session %s not found", p.SessionID)
	}
	// Re-checked at execute time: the session may have closed while the
	// request sat pending.
	if !s.IsOpen() {
		return nil, apperr.Validationf("cash session %s is not open", p.SessionID)
	}

	t := &ledgerDomain.CashTransaction{
		TransactionID:  id.NewID32(),
		CashSessionID:  s.ID,
		OrganizationID: orgID,
		Type:           ledgerDomain.TransactionOut,
		Amount:         p.Amount,
		Category:       p.Category,
		Notes:          p.Notes,
		CreatedBy:      actor,
	}
	if err := r.Transactions.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// executeInvoiceRefund writes the confirmed cash refund leg first (so a
// failed invoice-service call rolls everything back), then tells the
// invoice service.
func (u *Usecase) executeInvoiceRefund(ctx context.Context, r uow.Repos, orgID string, p approvalDomain.InvoiceRefundPayload) (*ledgerDomain.InvoicePayment, error) {
	now := time.Now().UTC()
	leg := &ledgerDomain.InvoicePayment{
		PaymentID:      id.NewID32(),
		OrganizationID: orgID,
		InvoiceID:      p.InvoiceID,
		Method:         ledgerDomain.MethodCash,
		Direction:      ledgerDomain.DirectionOut,
		Amount:         p.Amount,
		Status:         ledgerDomain.PaymentConfirmed,
		ConfirmedAt:    &now,
	}
	if err := r.Payments.Create(ctx, leg); err != nil {
		return nil, err
	}
	if err := u.invoices.RefundInvoice(ctx, orgID, p.InvoiceID, p.Amount, p.Reason); err != nil {
		return nil, err
	}
	return leg, nil
}

func (u *Usecase) executeInvoiceCancel(ctx context.Context, orgID string, p approvalDomain.InvoiceCancelPayload) error {
	return u.invoices.CancelInvoice(ctx, orgID, p.InvoiceID, p.Reason)
}
