package payment

import (
	"time"

	ledgerDomain "glowdesk-backend/internal/domain/ledger"
)

type RecordInput struct {
	OrganizationID string
	InvoiceID      string
	Method         string
	Amount         int64
}

type PaymentDTO struct {
	PaymentID      string     `json:"payment_id"`
	OrganizationID string     `json:"organization_id"`
	InvoiceID      string     `json:"invoice_id"`
	Method         string     `json:"method"`
	Direction      string     `json:"direction"`
	Amount         int64      `json:"amount"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
}

func toPaymentDTO(p *ledgerDomain.InvoicePayment) *PaymentDTO {
	return &PaymentDTO{
		PaymentID:      p.PaymentID,
		OrganizationID: p.OrganizationID,
		InvoiceID:      p.InvoiceID,
		Method:         string(p.Method),
		Direction:      string(p.Direction),
		Amount:         p.Amount,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		ConfirmedAt:    p.ConfirmedAt,
	}
}
