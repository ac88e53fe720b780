package approval

import (
	"encoding/json"
	"time"
)

type EntityType string

const (
	EntityInvoice          EntityType = "invoice"
	EntityCashTransaction  EntityType = "cash_transaction"
	EntityPrepaidCard      EntityType = "prepaid_card"
	EntityBooking          EntityType = "booking"
	EntityCommissionPayout EntityType = "commission_payout"
)

type Action string

const (
	ActionCancel  Action = "cancel"
	ActionRefund  Action = "refund"
	ActionCashOut Action = "cash_out"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ApprovalPolicy is a per-organization singleton read on every gated action.
// A missing row behaves as the zero policy: nothing gated.
//
// Table: approval_policies
type ApprovalPolicy struct {
	ID             uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	OrganizationID string `gorm:"column:organization_id;type:char(32);not null;uniqueIndex:ux_approval_policies_org"`

	RequireInvoiceCancelApproval bool `gorm:"column:require_invoice_cancel_approval;not null;default:false"`

	RequireInvoiceRefundApproval bool  `gorm:"column:require_invoice_refund_approval;not null;default:false"`
	InvoiceRefundThreshold       int64 `gorm:"column:invoice_refund_threshold;not null;default:0"`

	RequireCashOutApproval bool  `gorm:"column:require_cash_out_approval;not null;default:false"`
	CashOutThreshold       int64 `gorm:"column:cash_out_threshold;not null;default:0"`

	UpdatedBy string    `gorm:"column:updated_by;type:char(32)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ApprovalPolicy) TableName() string { return "approval_policies" }

// GatesCashOut reports whether a manual cash-out of amount needs approval.
// The threshold is a floor: amounts strictly above it are gated.
func (p *ApprovalPolicy) GatesCashOut(amount int64) bool {
	return p.RequireCashOutApproval && amount > p.CashOutThreshold
}

func (p *ApprovalPolicy) GatesInvoiceRefund(amount int64) bool {
	return p.RequireInvoiceRefundApproval && amount > p.InvoiceRefundThreshold
}

func (p *ApprovalPolicy) GatesInvoiceCancel() bool {
	return p.RequireInvoiceCancelApproval
}

// ApprovalRequest captures a deferred sensitive action. Once status leaves
// pending the row is immutable; resolution is a compare-and-swap on
// status=pending so exactly one of approve/reject ever lands.
//
// Table: approval_requests
type ApprovalRequest struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID      string          `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_approval_requests_request_id"`
	OrganizationID string          `gorm:"column:organization_id;type:char(32);not null;index"`
	EntityType     EntityType      `gorm:"column:entity_type;size:30;not null"`
	Action         Action          `gorm:"column:action;size:30;not null"`
	Payload        json.RawMessage `gorm:"column:payload;type:json;not null"`
	Status         Status          `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending';index"`
	RequestedBy    string          `gorm:"column:requested_by;type:char(32);not null"`
	ResolvedBy     *string         `gorm:"column:resolved_by;type:char(32)"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	ResolvedAt     *time.Time      `gorm:"column:resolved_at"`
}

func (ApprovalRequest) TableName() string { return "approval_requests" }

func (r *ApprovalRequest) IsPending() bool { return r.Status == StatusPending }
