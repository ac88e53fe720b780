package repomock

import (
	"context"
	"time"

	domain "glowdesk-backend/internal/domain/payroll"
)

// ConfigRepo is a function-backed mock for payroll.ConfigRepository.
type ConfigRepo struct {
	UpsertFn     func(ctx context.Context, c *domain.PayrollConfig) error
	GetByStaffFn func(ctx context.Context, orgID, staffID string) (*domain.PayrollConfig, error)
	ListByOrgFn  func(ctx context.Context, orgID string, branchID *string) ([]domain.PayrollConfig, error)
}

func (m *ConfigRepo) Upsert(ctx context.Context, c *domain.PayrollConfig) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, c)
	}
	return nil
}

func (m *ConfigRepo) GetByStaff(ctx context.Context, orgID, staffID string) (*domain.PayrollConfig, error) {
	if m.GetByStaffFn != nil {
		return m.GetByStaffFn(ctx, orgID, staffID)
	}
	return nil, context.Canceled
}

func (m *ConfigRepo) ListByOrg(ctx context.Context, orgID string, branchID *string) ([]domain.PayrollConfig, error) {
	if m.ListByOrgFn != nil {
		return m.ListByOrgFn(ctx, orgID, branchID)
	}
	return nil, nil
}

// CycleRepo is a function-backed mock for payroll.CycleRepository.
type CycleRepo struct {
	CreateFn                   func(ctx context.Context, c *domain.PayrollCycle) error
	GetByCycleIDFn             func(ctx context.Context, cycleID string) (*domain.PayrollCycle, error)
	GetByCycleIDForUpdateFn    func(ctx context.Context, cycleID string) (*domain.PayrollCycle, error)
	GetByIDForUpdateFn         func(ctx context.Context, id uint64) (*domain.PayrollCycle, error)
	ListByOrgFn                func(ctx context.Context, orgID string) ([]domain.PayrollCycle, error)
	ExistsOverlappingFn        func(ctx context.Context, orgID string, branchID *string, from, to time.Time) (bool, error)
	SaveFn                     func(ctx context.Context, c *domain.PayrollCycle) error
	GetItemByItemIDFn          func(ctx context.Context, itemID string) (*domain.PayrollItem, error)
	GetItemByItemIDForUpdateFn func(ctx context.Context, itemID string) (*domain.PayrollItem, error)
	SaveItemFn                 func(ctx context.Context, i *domain.PayrollItem) error
	MarkItemsPaidFn            func(ctx context.Context, cycleID uint64) error
}

func (m *CycleRepo) Create(ctx context.Context, c *domain.PayrollCycle) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *CycleRepo) GetByCycleID(ctx context.Context, cycleID string) (*domain.PayrollCycle, error) {
	if m.GetByCycleIDFn != nil {
		return m.GetByCycleIDFn(ctx, cycleID)
	}
	return nil, context.Canceled
}

func (m *CycleRepo) GetByCycleIDForUpdate(ctx context.Context, cycleID string) (*domain.PayrollCycle, error) {
	if m.GetByCycleIDForUpdateFn != nil {
		return m.GetByCycleIDForUpdateFn(ctx, cycleID)
	}
	return nil, context.Canceled
}

func (m *CycleRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.PayrollCycle, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *CycleRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.PayrollCycle, error) {
	if m.ListByOrgFn != nil {
		return m.ListByOrgFn(ctx, orgID)
	}
	return nil, nil
}

func (m *CycleRepo) ExistsOverlapping(ctx context.Context, orgID string, branchID *string, from, to time.Time) (bool, error) {
	if m.ExistsOverlappingFn != nil {
		return m.ExistsOverlappingFn(ctx, orgID, branchID, from, to)
	}
	return false, nil
}

func (m *CycleRepo) Save(ctx context.Context, c *domain.PayrollCycle) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *CycleRepo) GetItemByItemID(ctx context.Context, itemID string) (*domain.PayrollItem, error) {
	if m.GetItemByItemIDFn != nil {
		return m.GetItemByItemIDFn(ctx, itemID)
	}
	return nil, context.Canceled
}

func (m *CycleRepo) GetItemByItemIDForUpdate(ctx context.Context, itemID string) (*domain.PayrollItem, error) {
	if m.GetItemByItemIDForUpdateFn != nil {
		return m.GetItemByItemIDForUpdateFn(ctx, itemID)
	}
	return nil, context.Canceled
}

func (m *CycleRepo) SaveItem(ctx context.Context, i *domain.PayrollItem) error {
	if m.SaveItemFn != nil {
		return m.SaveItemFn(ctx, i)
	}
	return nil
}

func (m *CycleRepo) MarkItemsPaid(ctx context.Context, cycleID uint64) error {
	if m.MarkItemsPaidFn != nil {
		return m.MarkItemsPaidFn(ctx, cycleID)
	}
	return nil
}
