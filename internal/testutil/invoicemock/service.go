package invoicemock

import (
	"context"
	"time"

	"glowdesk-backend/internal/domain/invoice"
	"glowdesk-backend/internal/domain/payroll"
)

var (
	_ invoice.Service    = (*Service)(nil)
	_ payroll.LineSource = (*LineSource)(nil)
	_ payroll.RuleLookup = (*RuleLookup)(nil)
)

// Service is a function-backed mock for invoice.Service. Unset functions
// succeed, which is the common case in gate tests.
type Service struct {
	CancelInvoiceFn func(ctx context.Context, orgID, invoiceID, reason string) error
	RefundInvoiceFn func(ctx context.Context, orgID, invoiceID string, amount int64, reason string) error
}

func (m *Service) CancelInvoice(ctx context.Context, orgID, invoiceID, reason string) error {
	if m.CancelInvoiceFn != nil {
		return m.CancelInvoiceFn(ctx, orgID, invoiceID, reason)
	}
	return nil
}

func (m *Service) RefundInvoice(ctx context.Context, orgID, invoiceID string, amount int64, reason string) error {
	if m.RefundInvoiceFn != nil {
		return m.RefundInvoiceFn(ctx, orgID, invoiceID, amount, reason)
	}
	return nil
}

// LineSource is a function-backed mock for payroll.LineSource.
type LineSource struct {
	ConfirmedLinesFn func(ctx context.Context, orgID string, branchID *string, from, to time.Time) ([]payroll.InvoiceLine, error)
}

func (m *LineSource) ConfirmedLines(ctx context.Context, orgID string, branchID *string, from, to time.Time) ([]payroll.InvoiceLine, error) {
	if m.ConfirmedLinesFn != nil {
		return m.ConfirmedLinesFn(ctx, orgID, branchID, from, to)
	}
	return nil, nil
}

// RuleLookup is a function-backed mock for payroll.RuleLookup. The default
// is "no rule", matching the zero-commission fallback.
type RuleLookup struct {
	FindRuleFn func(ctx context.Context, orgID, staffID string, itemType payroll.ItemType, itemID string) (*payroll.CommissionRule, error)
}

func (m *RuleLookup) FindRule(ctx context.Context, orgID, staffID string, itemType payroll.ItemType, itemID string) (*payroll.CommissionRule, error) {
	if m.FindRuleFn != nil {
		return m.FindRuleFn(ctx, orgID, staffID, itemType, itemID)
	}
	return nil, nil
}
