package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "glowdesk-backend/internal/domain/cashbox"
	"glowdesk-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type cashSessionSQLite struct {
	ID             uint64  `gorm:"primaryKey;column:id"`
	SessionID      string  `gorm:"size:32;column:session_id;uniqueIndex:ux_cash_sessions_session_id"`
	OrganizationID string  `gorm:"size:32;column:organization_id;uniqueIndex:ux_cash_sessions_org_open"`
	OpenMarker     *string `gorm:"size:4;column:open_marker;uniqueIndex:ux_cash_sessions_org_open"`

	OpeningBalance         int64  `gorm:"column:opening_balance"`
	Status                 string `gorm:"type:text;column:status"` // ← no enum
	ActualClosingBalance   *int64 `gorm:"column:actual_closing_balance"`
	ExpectedClosingBalance *int64 `gorm:"column:expected_closing_balance"`
	Discrepancy            *int64 `gorm:"column:discrepancy"`

	Notes      string     `gorm:"column:notes"`
	CloseNotes string     `gorm:"column:close_notes"`
	OpenedBy   string     `gorm:"size:32;column:opened_by"`
	ClosedBy   *string    `gorm:"size:32;column:closed_by"`
	OpenedAt   time.Time  `gorm:"column:opened_at"`
	ClosedAt   *time.Time `gorm:"column:closed_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (cashSessionSQLite) TableName() string { return "cash_sessions" }

// openSessionDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schema. TranslateError matches the production gorm config so
// unique-index violations surface as gorm.ErrDuplicatedKey here too.
func openSessionDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&cashSessionSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeSession(orgID string) *domain.CashSession {
	s := &domain.CashSession{
		SessionID:      id.NewID32(),
		OrganizationID: orgID,
		OpeningBalance: 500_000,
		OpenedBy:       id.NewID32(),
		OpenedAt:       time.Now().UTC(),
	}
	s.MarkOpen()
	return s
}

func TestCashSession_CreateAndGet(t *testing.T) {
	db := openSessionDB(t)
	repo := NewCashSessionRepository(db)
	ctx := context.Background()

	s := makeSession(id.NewID32())
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetBySessionID(ctx, s.SessionID)
	if err != nil {
		t.Fatalf("GetBySessionID: %v", err)
	}
	if got.OpeningBalance != 500_000 || got.OrganizationID != s.OrganizationID {
		t.Fatalf("got %+v", got)
	}
}

func TestCashSession_UniqueOpenPerOrg(t *testing.T) {
	db := openSessionDB(t)
	repo := NewCashSessionRepository(db)
	ctx := context.Background()

	orgID := id.NewID32()
	if err := repo.Create(ctx, makeSession(orgID)); err != nil {
		t.Fatalf("first open: %v", err)
	}

	err := repo.Create(ctx, makeSession(orgID))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second open: want ErrDuplicatedKey, got %v", err)
	}

	// A different org is unaffected.
	if err := repo.Create(ctx, makeSession(id.NewID32())); err != nil {
		t.Fatalf("other org open: %v", err)
	}
}

func TestCashSession_CloseFreesOpenSlot(t *testing.T) {
	db := openSessionDB(t)
	repo := NewCashSessionRepository(db)
	ctx := context.Background()

	orgID := id.NewID32()
	s := makeSession(orgID)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.MarkClosed(480_000, 500_000, id.NewID32(), time.Now().UTC())
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save closed: %v", err)
	}

	// NULL open_marker rows never collide, so a new session can open.
	if err := repo.Create(ctx, makeSession(orgID)); err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
}

func TestCashSession_GetOpenByOrg(t *testing.T) {
	db := openSessionDB(t)
	repo := NewCashSessionRepository(db)
	ctx := context.Background()

	orgID := id.NewID32()
	if _, err := repo.GetOpenByOrg(ctx, orgID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("empty org: want not found, got %v", err)
	}

	closed := makeSession(orgID)
	if err := repo.Create(ctx, closed); err != nil {
		t.Fatalf("Create: %v", err)
	}
	closed.MarkClosed(0, 0, id.NewID32(), time.Now().UTC())
	if err := repo.Save(ctx, closed); err != nil {
		t.Fatalf("Save: %v", err)
	}

	open := makeSession(orgID)
	if err := repo.Create(ctx, open); err != nil {
		t.Fatalf("Create open: %v", err)
	}

	got, err := repo.GetOpenByOrg(ctx, orgID)
	if err != nil {
		t.Fatalf("GetOpenByOrg: %v", err)
	}
	if got.SessionID != open.SessionID {
		t.Fatalf("got %s, want the open session %s", got.SessionID, open.SessionID)
	}
}
