package approval

import (
	"encoding/json"
	"fmt"
)

// One concrete payload shape per gated operation. The envelope is a tagged
// union keyed by (entity_type, action); replay decodes the one field that
// matches and fails loudly on a shape mismatch instead of guessing.

type CashOutPayload struct {
	SessionID string `json:"session_id"`
	Amount    int64  `json:"amount"`
	Category  string `json:"category"`
	Notes     string `json:"notes,omitempty"`
}

type InvoiceRefundPayload struct {
	InvoiceID string `json:"invoice_id"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason,omitempty"`
}

type InvoiceCancelPayload struct {
	InvoiceID string `json:"invoice_id"`
	Reason    string `json:"reason,omitempty"`
}

type Payload struct {
	CashOut       *CashOutPayload       `json:"cash_out,omitempty"`
	InvoiceRefund *InvoiceRefundPayload `json:"invoice_refund,omitempty"`
	InvoiceCancel *InvoiceCancelPayload `json:"invoice_cancel,omitempty"`
}

func MarshalPayload(p Payload) (json.RawMessage, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal approval payload: %w", err)
	}
	return b, nil
}

// DecodePayload rebuilds the typed payload of a stored request and checks it
// carries the shape its (entity_type, action) pair promises.
func DecodePayload(r *ApprovalRequest) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(r.Payload, &p); err != nil {
		return Payload{}, fmt.Errorf("unmarshal approval payload %s: %w", r.RequestID, err)
	}
	switch {
	case r.EntityType == EntityCashTransaction && r.Action == ActionCashOut:
		if p.CashOut == nil {
			return Payload{}, fmt.Errorf("request %s: missing cash_out payload", r.RequestID)
		}
	case r.EntityType == EntityInvoice && r.Action == ActionRefund:
		if p.InvoiceRefund == nil {
			return Payload{}, fmt.Errorf("request %s: missing invoice_refund payload", r.RequestID)
		}
	case r.EntityType == EntityInvoice && r.Action == ActionCancel:
		if p.InvoiceCancel == nil {
			return Payload{}, fmt.Errorf("request %s: missing invoice_cancel payload", r.RequestID)
		}
	default:
		return Payload{}, fmt.Errorf("request %s: no executor for %s/%s", r.RequestID, r.EntityType, r.Action)
	}
	return p, nil
}
