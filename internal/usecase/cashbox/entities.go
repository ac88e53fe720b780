package cashbox

import (
	"time"

	cashboxDomain "glowdesk-backend/internal/domain/cashbox"
)

type OpenInput struct {
	OrganizationID string
	OpeningBalance int64
	Notes          string
	OpenedBy       string
}

type CloseInput struct {
	OrganizationID       string
	SessionID            string
	ActualClosingBalance int64
	Notes                string
	ClosedBy             string
}

type TransactionInput struct {
	OrganizationID string
	SessionID      string
	Type           string
	Amount         int64
	Category       string
	Notes          string
	CreatedBy      string
}

type SessionDTO struct {
	SessionID              string     `json:"session_id"`
	OrganizationID         string     `json:"organization_id"`
	OpeningBalance         int64      `json:"opening_balance"`
	Status                 string     `json:"status"`
	ActualClosingBalance   *int64     `json:"actual_closing_balance,omitempty"`
	ExpectedClosingBalance *int64     `json:"expected_closing_balance,omitempty"`
	Discrepancy            *int64     `json:"discrepancy,omitempty"`
	Notes                  string     `json:"notes,omitempty"`
	OpenedBy               string     `json:"opened_by"`
	OpenedAt               time.Time  `json:"opened_at"`
	ClosedBy               *string    `json:"closed_by,omitempty"`
	ClosedAt               *time.Time `json:"closed_at,omitempty"`
}

// SnapshotDTO is the live reconciliation view of an open session. It is
// recomputed from the ledger on every call; there is no running counter to
// drift from the ground truth.
type SnapshotDTO struct {
	SessionID              string `json:"session_id"`
	OpeningBalance         int64  `json:"opening_balance"`
	InvoiceCashIn          int64  `json:"invoice_cash_in"`
	InvoiceCashOut         int64  `json:"invoice_cash_out"`
	ManualIn               int64  `json:"manual_in"`
	ManualOut              int64  `json:"manual_out"`
	ExpectedClosingBalance int64  `json:"expected_closing_balance"`
}

func toSessionDTO(s *cashboxDomain.CashSession) *SessionDTO {
	return &SessionDTO{
		SessionID:              s.SessionID,
		OrganizationID:         s.OrganizationID,
		OpeningBalance:         s.OpeningBalance,
		Status:                 string(s.Status),
		ActualClosingBalance:   s.ActualClosingBalance,
		ExpectedClosingBalance: s.ExpectedClosingBalance,
		Discrepancy:            s.Discrepancy,
		Notes:                  s.Notes,
		OpenedBy:               s.OpenedBy,
		OpenedAt:               s.OpenedAt,
		ClosedBy:               s.ClosedBy,
		ClosedAt:               s.ClosedAt,
	}
}
