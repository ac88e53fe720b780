package cashbox

import "time"

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// openMarkerValue is stored in open_marker while a session is open and NULLed
// on close. Together with organization_id it forms a unique index, so the
// database itself rejects a second open session per organization (MySQL
// unique indexes ignore NULL rows).
const openMarkerValue = "open"

// Table: cash_sessions
type CashSession struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	SessionID      string  `gorm:"column:session_id;type:char(32);not null;uniqueIndex:ux_cash_sessions_session_id"`
	OrganizationID string  `gorm:"column:organization_id;type:char(32);not null;index;uniqueIndex:ux_cash_sessions_org_open"`
	OpenMarker     *string `gorm:"column:open_marker;type:char(4);uniqueIndex:ux_cash_sessions_org_open"`

	// Amounts are VND minor units.
	OpeningBalance         int64  `gorm:"column:opening_balance;not null"`
	Status                 Status `gorm:"column:status;type:enum('open','closed');default:'open'"`
	ActualClosingBalance   *int64 `gorm:"column:actual_closing_balance"`
	ExpectedClosingBalance *int64 `gorm:"column:expected_closing_balance"`
	// Discrepancy = actual - expected, signed. Frozen at close time.
	Discrepancy *int64 `gorm:"column:discrepancy"`

	Notes      string     `gorm:"column:notes;type:text"`
	CloseNotes string     `gorm:"column:close_notes;type:text"`
	OpenedBy   string     `gorm:"column:opened_by;type:char(32);not null"`
	ClosedBy   *string    `gorm:"column:closed_by;type:char(32)"`
	OpenedAt   time.Time  `gorm:"column:opened_at;not null"`
	ClosedAt   *time.Time `gorm:"column:closed_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CashSession) TableName() string { return "cash_sessions" }

func (s *CashSession) IsOpen() bool { return s.Status == StatusOpen }

// MarkOpen sets the open-marker so the org-wide uniqueness index applies.
func (s *CashSession) MarkOpen() {
	v := openMarkerValue
	s.Status = StatusOpen
	s.OpenMarker = &v
}

// MarkClosed flips the session terminal and releases the open-marker slot.
func (s *CashSession) MarkClosed(actual, expected int64, closedBy string, at time.Time) {
	disc := actual - expected
	s.Status = StatusClosed
	s.OpenMarker = nil
	s.ActualClosingBalance = &actual
	s.ExpectedClosingBalance = &expected
	s.Discrepancy = &disc
	s.ClosedBy = &closedBy
	s.ClosedAt = &at
}
