// Package invoice declares the narrow interface this core consumes from the
// invoice service. Cancel and refund are the two actions the approval gate
// wraps; the implementation lives behind HTTP in adapter/invoiceapi.
package invoice

import "context"

type Service interface {
	// CancelInvoice voids the invoice on the invoice service side.
	CancelInvoice(ctx context.Context, orgID, invoiceID, reason string) error

	// RefundInvoice records the refund against the invoice. The cash leg of
	// the refund is written to this core's ledger by the caller.
	RefundInvoice(ctx context.Context, orgID, invoiceID string, amount int64, reason string) error
}
