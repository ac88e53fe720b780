package payroll

import (
	"context"
	"time"
)

type ItemType string

const (
	ItemService ItemType = "service"
	ItemProduct ItemType = "product"
)

type RuleMode string

const (
	// RulePercent: commission = line total * Value / 100, integer division.
	RulePercent RuleMode = "percent"
	// RuleFixed: commission = Value per unit sold.
	RuleFixed RuleMode = "fixed"
)

// CommissionRule is a per-staff, per-item override. Rules match by exact
// (staff, item type, item id) triple only; an unmatched line earns zero
// commission. Whether a category-level default should apply instead is an
// open business question, so no fallback is implemented here.
type CommissionRule struct {
	StaffID  string
	ItemType ItemType
	ItemID   string
	Mode     RuleMode
	Value    int64
}

// Commission computes the rule's payout for one invoice line.
func (r *CommissionRule) Commission(lineTotal, quantity int64) int64 {
	switch r.Mode {
	case RulePercent:
		return lineTotal * r.Value / 100
	case RuleFixed:
		return r.Value * quantity
	}
	return 0
}

// InvoiceLine is one confirmed invoice line attributable to a staff member,
// as reported by the invoice service.
type InvoiceLine struct {
	InvoiceID   string    `json:"invoice_id"`
	StaffID     string    `json:"staff_id"`
	ItemType    ItemType  `json:"item_type"`
	ItemID      string    `json:"item_id"`
	Quantity    int64     `json:"quantity"`
	LineTotal   int64     `json:"line_total"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// LineSource is the invoice-service collaborator feeding commission
// aggregation. Lines are confirmed legs within [from, to).
type LineSource interface {
	ConfirmedLines(ctx context.Context, orgID string, branchID *string, from, to time.Time) ([]InvoiceLine, error)
}

// RuleLookup resolves the commission rule for an exact triple.
// A nil rule with nil error means no rule exists.
type RuleLookup interface {
	FindRule(ctx context.Context, orgID, staffID string, itemType ItemType, itemID string) (*CommissionRule, error)
}
