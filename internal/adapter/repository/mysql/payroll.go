package mysql

import (
	"context"
	"time"

	payrollDomain "glowdesk-backend/internal/domain/payroll"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PayrollConfigRepository struct{ db *gorm.DB }

func NewPayrollConfigRepository(db *gorm.DB) *PayrollConfigRepository {
	return &PayrollConfigRepository{db: db}
}

func (r *PayrollConfigRepository) Upsert(ctx context.Context, c *payrollDomain.PayrollConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "organization_id"}, {Name: "staff_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"branch_id", "staff_name", "salary_type", "base_salary",
				"default_allowance", "default_deduction", "default_advance",
				"payment_method", "updated_at",
			}),
		}).
		Create(c).Error
}

func (r *PayrollConfigRepository) GetByStaff(ctx context.Context, orgID, staffID string) (*payrollDomain.PayrollConfig, error) {
	var out payrollDomain.PayrollConfig
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND staff_id = ?", orgID, staffID).
		First(&out)
	return &out, res.Error
}

func (r *PayrollConfigRepository) ListByOrg(ctx context.Context, orgID string, branchID *string) ([]payrollDomain.PayrollConfig, error) {
	q := r.db.WithContext(ctx).Where("organization_id = ?", orgID)
	if branchID != nil {
		// Org-wide staff (NULL branch) belong to every branch scope, same
		// reading as the cycle overlap check.
		q = q.Where("branch_id = ? OR branch_id IS NULL", *branchID)
	}
	var out []payrollDomain.PayrollConfig
	res := q.Order("staff_name ASC, id ASC").Find(&out)
	return out, res.Error
}

type PayrollCycleRepository struct{ db *gorm.DB }

func NewPayrollCycleRepository(db *gorm.DB) *PayrollCycleRepository {
	return &PayrollCycleRepository{db: db}
}

func (r *PayrollCycleRepository) Create(ctx context.Context, c *payrollDomain.PayrollCycle) error {
	// Items ride along via the association, one insert batch.
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PayrollCycleRepository) Save(ctx context.Context, c *payrollDomain.PayrollCycle) error {
	return r.db.WithContext(ctx).Omit("Items").Save(c).Error
}

func (r *PayrollCycleRepository) GetByCycleID(ctx context.Context, cycleID string) (*payrollDomain.PayrollCycle, error) {
	var out payrollDomain.PayrollCycle
	res := r.db.WithContext(ctx).
		Preload("Items").
		Where("cycle_id = ?", cycleID).
		First(&out)
	return &out, res.Error
}

func (r *PayrollCycleRepository) GetByCycleIDForUpdate(ctx context.Context, cycleID string) (*payrollDomain.PayrollCycle, error) {
	var out payrollDomain.PayrollCycle
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cycle_id = ?", cycleID).
		First(&out)
	return &out, res.Error
}

func (r *PayrollCycleRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*payrollDomain.PayrollCycle, error) {
	var out payrollDomain.PayrollCycle
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *PayrollCycleRepository) ListByOrg(ctx context.Context, orgID string) ([]payrollDomain.PayrollCycle, error) {
	var out []payrollDomain.PayrollCycle
	res := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("from_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// ExistsOverlapping applies the half-open overlap predicate
// (from < existing.to AND to > existing.from) within the branch scope:
// an org-wide cycle collides with every cycle of the org, a branch cycle
// with the same branch and with org-wide cycles.
func (r *PayrollCycleRepository) ExistsOverlapping(ctx context.Context, orgID string, branchID *string, from, to time.Time) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&payrollDomain.PayrollCycle{}).
		Where("organization_id = ? AND from_date < ? AND to_date > ?", orgID, to, from)
	if branchID != nil {
		q = q.Where("branch_id = ? OR branch_id IS NULL", *branchID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PayrollCycleRepository) GetItemByItemID(ctx context.Context, itemID string) (*payrollDomain.PayrollItem, error) {
	var out payrollDomain.PayrollItem
	res := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&out)
	return &out, res.Error
}

func (r *PayrollCycleRepository) GetItemByItemIDForUpdate(ctx context.Context, itemID string) (*payrollDomain.PayrollItem, error) {
	var out payrollDomain.PayrollItem
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id = ?", itemID).
		First(&out)
	return &out, res.Error
}

func (r *PayrollCycleRepository) SaveItem(ctx context.Context, i *payrollDomain.PayrollItem) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *PayrollCycleRepository) MarkItemsPaid(ctx context.Context, cycleID uint64) error {
	return r.db.WithContext(ctx).
		Model(&payrollDomain.PayrollItem{}).
		Where("cycle_id = ?", cycleID).
		Update("status", payrollDomain.ItemPaid).Error
}
