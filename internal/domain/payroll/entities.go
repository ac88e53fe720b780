package payroll

import "time"

type SalaryType string

const (
	SalaryMonthly SalaryType = "monthly"
	SalaryDaily   SalaryType = "daily"
	SalaryHourly  SalaryType = "hourly"
)

type CycleStatus string

const (
	CycleDraft     CycleStatus = "draft"
	CycleFinalized CycleStatus = "finalized"
	CyclePaid      CycleStatus = "paid"
)

type ItemStatus string

const (
	ItemDraft ItemStatus = "draft"
	ItemPaid  ItemStatus = "paid"
)

// PayrollConfig holds a staff member's default compensation terms, applied
// when a cycle snapshots its items.
//
// Table: payroll_configs
type PayrollConfig struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrganizationID string     `gorm:"column:organization_id;type:char(32);not null;uniqueIndex:ux_payroll_configs_org_staff"`
	StaffID        string     `gorm:"column:staff_id;type:char(32);not null;uniqueIndex:ux_payroll_configs_org_staff"`
	BranchID       *string    `gorm:"column:branch_id;type:char(32);index"`
	StaffName      string     `gorm:"column:staff_name;size:120;not null"`
	SalaryType     SalaryType `gorm:"column:salary_type;type:enum('monthly','daily','hourly');default:'monthly'"`
	BaseSalary     int64      `gorm:"column:base_salary;not null;default:0"`

	DefaultAllowance int64 `gorm:"column:default_allowance;not null;default:0"`
	DefaultDeduction int64 `gorm:"column:default_deduction;not null;default:0"`
	DefaultAdvance   int64 `gorm:"column:default_advance;not null;default:0"`

	PaymentMethod string    `gorm:"column:payment_method;size:20;not null;default:'transfer'"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PayrollConfig) TableName() string { return "payroll_configs" }

// PayrollCycle is an immutable-forward state machine:
// draft -> finalized -> paid, no skipping, no reverting.
// The date range is half-open [from_date, to_date).
//
// Table: payroll_cycles
type PayrollCycle struct {
	ID             uint64      `gorm:"column:id;primaryKey;autoIncrement"`
	CycleID        string      `gorm:"column:cycle_id;type:char(32);not null;uniqueIndex:ux_payroll_cycles_cycle_id"`
	OrganizationID string      `gorm:"column:organization_id;type:char(32);not null;index"`
	BranchID       *string     `gorm:"column:branch_id;type:char(32);index"`
	FromDate       time.Time   `gorm:"column:from_date;type:date;not null"`
	ToDate         time.Time   `gorm:"column:to_date;type:date;not null"`
	Status         CycleStatus `gorm:"column:status;type:enum('draft','finalized','paid');default:'draft'"`
	CreatedBy      string      `gorm:"column:created_by;type:char(32);not null"`
	CreatedAt      time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time   `gorm:"column:updated_at;autoUpdateTime"`
	FinalizedAt    *time.Time  `gorm:"column:finalized_at"`
	PaidAt         *time.Time  `gorm:"column:paid_at"`

	Items []PayrollItem `gorm:"foreignKey:CycleID;references:ID"`
}

func (PayrollCycle) TableName() string { return "payroll_cycles" }

// PayrollItem carries one staff member's computed compensation for a cycle.
// commission_amount and base_salary are frozen after creation; the band
// fields stay editable until the cycle is paid.
//
// Table: payroll_items
type PayrollItem struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID  string `gorm:"column:item_id;type:char(32);not null;uniqueIndex:ux_payroll_items_item_id"`
	CycleID uint64 `gorm:"column:cycle_id;not null;index"`
	StaffID string `gorm:"column:staff_id;type:char(32);not null;index"`

	StaffName        string `gorm:"column:staff_name;size:120;not null"`
	BaseSalary       int64  `gorm:"column:base_salary;not null;default:0"`
	CommissionAmount int64  `gorm:"column:commission_amount;not null;default:0"`
	BonusAmount      int64  `gorm:"column:bonus_amount;not null;default:0"`
	AllowanceAmount  int64  `gorm:"column:allowance_amount;not null;default:0"`
	DeductionAmount  int64  `gorm:"column:deduction_amount;not null;default:0"`
	AdvanceAmount    int64  `gorm:"column:advance_amount;not null;default:0"`
	NetAmount        int64  `gorm:"column:net_amount;not null;default:0"`

	PaymentMethod string     `gorm:"column:payment_method;size:20;not null;default:'transfer'"`
	Notes         string     `gorm:"column:notes;type:text"`
	Status        ItemStatus `gorm:"column:status;type:enum('draft','paid');default:'draft'"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (PayrollItem) TableName() string { return "payroll_items" }

// RecomputeNet re-derives the invariant
// net = base + commission + bonus + allowance - deduction - advance.
func (i *PayrollItem) RecomputeNet() {
	i.NetAmount = i.BaseSalary + i.CommissionAmount + i.BonusAmount +
		i.AllowanceAmount - i.DeductionAmount - i.AdvanceAmount
}
