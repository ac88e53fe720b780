package approval

import (
	"time"

	approvalDomain "glowdesk-backend/internal/domain/approval"
	ledgerDomain "glowdesk-backend/internal/domain/ledger"
)

type RequestDTO struct {
	RequestID      string     `json:"request_id"`
	OrganizationID string     `json:"organization_id"`
	EntityType     string     `json:"entity_type"`
	Action         string     `json:"action"`
	Status         string     `json:"status"`
	RequestedBy    string     `json:"requested_by"`
	ResolvedBy     *string    `json:"resolved_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

type CashTransactionDTO struct {
	TransactionID string    `json:"transaction_id"`
	SessionID     string    `json:"session_id"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	Category      string    `json:"category"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

type RefundDTO struct {
	PaymentID string    `json:"payment_id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Outcome is the gate's answer for a sensitive action: either the action
// ran (Executed true, result attached) or it is parked behind a pending
// approval request and nothing happened.
type Outcome struct {
	Executed    bool                `json:"executed"`
	Transaction *CashTransactionDTO `json:"transaction,omitempty"`
	Refund      *RefundDTO          `json:"refund,omitempty"`
	Request     *RequestDTO         `json:"approval_request,omitempty"`
}

type PolicyDTO struct {
	OrganizationID               string    `json:"organization_id"`
	RequireInvoiceCancelApproval bool      `json:"require_invoice_cancel_approval"`
	RequireInvoiceRefundApproval bool      `json:"require_invoice_refund_approval"`
	InvoiceRefundThreshold       int64     `json:"invoice_refund_threshold"`
	RequireCashOutApproval       bool      `json:"require_cash_out_approval"`
	CashOutThreshold             int64     `json:"cash_out_threshold"`
	UpdatedAt                    time.Time `json:"updated_at"`
}

type UpdatePolicyInput struct {
	RequireInvoiceCancelApproval bool
	RequireInvoiceRefundApproval bool
	InvoiceRefundThreshold       int64
	RequireCashOutApproval       bool
	CashOutThreshold             int64
}

func toRequestDTO(r *approvalDomain.ApprovalRequest) *RequestDTO {
	return &RequestDTO{
		RequestID:      r.RequestID,
		OrganizationID: r.OrganizationID,
		EntityType:     string(r.EntityType),
		Action:         string(r.Action),
		Status:         string(r.Status),
		RequestedBy:    r.RequestedBy,
		ResolvedBy:     r.ResolvedBy,
		CreatedAt:      r.CreatedAt,
		ResolvedAt:     r.ResolvedAt,
	}
}

func toTransactionDTO(sessionID string, t *ledgerDomain.CashTransaction) *CashTransactionDTO {
	return &CashTransactionDTO{
		TransactionID: t.TransactionID,
		SessionID:     sessionID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Category:      t.Category,
		Notes:         t.Notes,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
	}
}

func toRefundDTO(p *ledgerDomain.InvoicePayment) *RefundDTO {
	return &RefundDTO{
		PaymentID: p.PaymentID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func toPolicyDTO(p *approvalDomain.ApprovalPolicy) *PolicyDTO {
	return &PolicyDTO{
		OrganizationID:               p.OrganizationID,
		RequireInvoiceCancelApproval: p.RequireInvoiceCancelApproval,
		RequireInvoiceRefundApproval: p.RequireInvoiceRefundApproval,
		InvoiceRefundThreshold:       p.InvoiceRefundThreshold,
		RequireCashOutApproval:       p.RequireCashOutApproval,
		CashOutThreshold:             p.CashOutThreshold,
		UpdatedAt:                    p.UpdatedAt,
	}
}
