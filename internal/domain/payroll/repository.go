package payroll

import (
	"context"
	"time"
)

type ConfigRepository interface {
	Upsert(ctx context.Context, c *PayrollConfig) error

	GetByStaff(ctx context.Context, orgID, staffID string) (*PayrollConfig, error)

	// branchID nil lists the whole organization; set, only that branch's staff.
	ListByOrg(ctx context.Context, orgID string, branchID *string) ([]PayrollConfig, error)
}

type CycleRepository interface {
	// Create persists the cycle and its items in one insert batch.
	Create(ctx context.Context, c *PayrollCycle) error

	GetByCycleID(ctx context.Context, cycleID string) (*PayrollCycle, error)

	// Row-locked variants; all cycle mutations serialize on this lock.
	GetByCycleIDForUpdate(ctx context.Context, cycleID string) (*PayrollCycle, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*PayrollCycle, error)

	ListByOrg(ctx context.Context, orgID string) ([]PayrollCycle, error)

	// ExistsOverlapping checks the half-open range [from, to) against existing
	// cycles in the same scope: a branch cycle collides with the same branch
	// and with org-wide cycles; an org-wide cycle collides with everything.
	ExistsOverlapping(ctx context.Context, orgID string, branchID *string, from, to time.Time) (bool, error)

	Save(ctx context.Context, c *PayrollCycle) error

	GetItemByItemID(ctx context.Context, itemID string) (*PayrollItem, error)

	GetItemByItemIDForUpdate(ctx context.Context, itemID string) (*PayrollItem, error)

	SaveItem(ctx context.Context, i *PayrollItem) error

	// MarkItemsPaid flips every item of the cycle to paid.
	MarkItemsPaid(ctx context.Context, cycleID uint64) error
}
