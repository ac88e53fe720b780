package ledger

import "time"

type TransactionType string

const (
	TransactionIn  TransactionType = "in"
	TransactionOut TransactionType = "out"
)

// CashTransaction is a manual (non-invoice) money movement tied to an open
// cash session. Rows are append-only; there is no update path.
//
// Table: cash_transactions
type CashTransaction struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID  string          `gorm:"column:transaction_id;type:char(32);not null;uniqueIndex:ux_cash_transactions_txn_id"`
	CashSessionID  uint64          `gorm:"column:cash_session_id;not null;index"`
	OrganizationID string          `gorm:"column:organization_id;type:char(32);not null;index"`
	Type           TransactionType `gorm:"column:type;type:enum('in','out');not null"`
	Amount         int64           `gorm:"column:amount;not null"`
	Category       string          `gorm:"column:category;size:100;not null"`
	Notes          string          `gorm:"column:notes;type:text"`
	CreatedBy      string          `gorm:"column:created_by;type:char(32);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (CashTransaction) TableName() string { return "cash_transactions" }

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

type Direction string

const (
	DirectionIn  Direction = "in"  // payment
	DirectionOut Direction = "out" // refund leg
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentFailed    PaymentStatus = "failed"
)

// InvoicePayment is one payment (or refund) leg of an invoice.
// pending -> confirmed and pending -> failed are the only transitions;
// both are terminal. Only cash-method confirmed legs count toward a cash
// session's expected balance.
//
// Table: invoice_payments
type InvoicePayment struct {
	ID             uint64        `gorm:"column:id;primaryKey;autoIncrement"`
	PaymentID      string        `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_invoice_payments_payment_id"`
	OrganizationID string        `gorm:"column:organization_id;type:char(32);not null;index"`
	InvoiceID      string        `gorm:"column:invoice_id;type:char(32);not null;index"`
	Method         PaymentMethod `gorm:"column:method;type:enum('cash','card','transfer');not null"`
	Direction      Direction     `gorm:"column:direction;type:enum('in','out');not null;default:'in'"`
	Amount         int64         `gorm:"column:amount;not null"`
	Status         PaymentStatus `gorm:"column:status;type:enum('pending','confirmed','failed');default:'pending'"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime"`
	ConfirmedAt    *time.Time    `gorm:"column:confirmed_at"`
}

func (InvoicePayment) TableName() string { return "invoice_payments" }

func (p *InvoicePayment) IsPending() bool { return p.Status == PaymentPending }

// CountsForDrawer reports whether this leg moves physical cash.
func (p *InvoicePayment) CountsForDrawer() bool {
	return p.Method == MethodCash && p.Status == PaymentConfirmed
}
