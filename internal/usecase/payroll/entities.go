package payroll

import (
	"time"

	payrollDomain "glowdesk-backend/internal/domain/payroll"
)

type PreviewInput struct {
	OrganizationID string
	From           time.Time
	To             time.Time
	BranchID       *string
}

type CreateCycleInput struct {
	OrganizationID string
	From           time.Time
	To             time.Time
	BranchID       *string
	CreatedBy      string
}

// ItemPatch carries the band fields editable after creation. Base salary and
// commission are deliberately absent: they are frozen at snapshot time.
type ItemPatch struct {
	BonusAmount     *int64
	AllowanceAmount *int64
	DeductionAmount *int64
	AdvanceAmount   *int64
	Notes           *string
	PaymentMethod   *string
}

type ConfigInput struct {
	OrganizationID   string
	StaffID          string
	BranchID         *string
	StaffName        string
	SalaryType       string
	BaseSalary       int64
	DefaultAllowance int64
	DefaultDeduction int64
	DefaultAdvance   int64
	PaymentMethod    string
}

type ItemPreview struct {
	StaffID          string `json:"staff_id"`
	StaffName        string `json:"staff_name"`
	BaseSalary       int64  `json:"base_salary"`
	CommissionAmount int64  `json:"commission_amount"`
	BonusAmount      int64  `json:"bonus_amount"`
	AllowanceAmount  int64  `json:"allowance_amount"`
	DeductionAmount  int64  `json:"deduction_amount"`
	AdvanceAmount    int64  `json:"advance_amount"`
	NetAmount        int64  `json:"net_amount"`
	PaymentMethod    string `json:"payment_method"`
}

type ItemDTO struct {
	ItemID           string    `json:"item_id"`
	StaffID          string    `json:"staff_id"`
	StaffName        string    `json:"staff_name"`
	BaseSalary       int64     `json:"base_salary"`
	CommissionAmount int64     `json:"commission_amount"`
	BonusAmount      int64     `json:"bonus_amount"`
	AllowanceAmount  int64     `json:"allowance_amount"`
	DeductionAmount  int64     `json:"deduction_amount"`
	AdvanceAmount    int64     `json:"advance_amount"`
	NetAmount        int64     `json:"net_amount"`
	PaymentMethod    string    `json:"payment_method"`
	Notes            string    `json:"notes,omitempty"`
	Status           string    `json:"status"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CycleDTO struct {
	CycleID        string     `json:"cycle_id"`
	OrganizationID string     `json:"organization_id"`
	BranchID       *string    `json:"branch_id,omitempty"`
	FromDate       string     `json:"from_date"`
	ToDate         string     `json:"to_date"`
	Status         string     `json:"status"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	FinalizedAt    *time.Time `json:"finalized_at,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	Items          []ItemDTO  `json:"items,omitempty"`
}

type ConfigDTO struct {
	StaffID          string    `json:"staff_id"`
	BranchID         *string   `json:"branch_id,omitempty"`
	StaffName        string    `json:"staff_name"`
	SalaryType       string    `json:"salary_type"`
	BaseSalary       int64     `json:"base_salary"`
	DefaultAllowance int64     `json:"default_allowance"`
	DefaultDeduction int64     `json:"default_deduction"`
	DefaultAdvance   int64     `json:"default_advance"`
	PaymentMethod    string    `json:"payment_method"`
	UpdatedAt        time.Time `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func toItemDTO(i *payrollDomain.PayrollItem) ItemDTO {
	return ItemDTO{
		ItemID:           i.ItemID,
		StaffID:          i.StaffID,
		StaffName:        i.StaffName,
		BaseSalary:       i.BaseSalary,
		CommissionAmount: i.CommissionAmount,
		BonusAmount:      i.BonusAmount,
		AllowanceAmount:  i.AllowanceAmount,
		DeductionAmount:  i.DeductionAmount,
		AdvanceAmount:    i.AdvanceAmount,
		NetAmount:        i.NetAmount,
		PaymentMethod:    i.PaymentMethod,
		Notes:            i.Notes,
		Status:           string(i.Status),
		UpdatedAt:        i.UpdatedAt,
	}
}

func toCycleDTO(c *payrollDomain.PayrollCycle, withItems bool) *CycleDTO {
	dto := &CycleDTO{
		CycleID:        c.CycleID,
		OrganizationID: c.OrganizationID,
		BranchID:       c.BranchID,
		FromDate:       c.FromDate.Format(dateLayout),
		ToDate:         c.ToDate.Format(dateLayout),
		Status:         string(c.Status),
		CreatedBy:      c.CreatedBy,
		CreatedAt:      c.CreatedAt,
		FinalizedAt:    c.FinalizedAt,
		PaidAt:         c.PaidAt,
	}
	if withItems {
		dto.Items = make([]ItemDTO, 0, len(c.Items))
		for i := range c.Items {
			dto.Items = append(dto.Items, toItemDTO(&c.Items[i]))
		}
	}
	return dto
}

func toConfigDTO(c *payrollDomain.PayrollConfig) ConfigDTO {
	return ConfigDTO{
		StaffID:          c.StaffID,
		BranchID:         c.BranchID,
		StaffName:        c.StaffName,
		SalaryType:       string(c.SalaryType),
		BaseSalary:       c.BaseSalary,
		DefaultAllowance: c.DefaultAllowance,
		DefaultDeduction: c.DefaultDeduction,
		DefaultAdvance:   c.DefaultAdvance,
		PaymentMethod:    c.PaymentMethod,
		UpdatedAt:        c.UpdatedAt,
	}
}
