package mysql

import (
	"context"
	"time"

	approvalDomain "glowdesk-backend/internal/domain/approval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalPolicyRepository struct{ db *gorm.DB }

func NewApprovalPolicyRepository(db *gorm.DB) *ApprovalPolicyRepository {
	return &ApprovalPolicyRepository{db: db}
}

func (r *ApprovalPolicyRepository) GetByOrg(ctx context.Context, orgID string) (*approvalDomain.ApprovalPolicy, error) {
	var out approvalDomain.ApprovalPolicy
	res := r.db.WithContext(ctx).Where("organization_id = ?", orgID).First(&out)
	return &out, res.Error
}

func (r *ApprovalPolicyRepository) Upsert(ctx context.Context, p *approvalDomain.ApprovalPolicy) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"require_invoice_cancel_approval",
				"require_invoice_refund_approval", "invoice_refund_threshold",
				"require_cash_out_approval", "cash_out_threshold",
				"updated_by", "updated_at",
			}),
		}).
		Create(p).Error
}

type ApprovalRequestRepository struct{ db *gorm.DB }

func NewApprovalRequestRepository(db *gorm.DB) *ApprovalRequestRepository {
	return &ApprovalRequestRepository{db: db}
}

func (r *ApprovalRequestRepository) Create(ctx context.Context, a *approvalDomain.ApprovalRequest) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRequestRepository) GetByRequestID(ctx context.Context, requestID string) (*approvalDomain.ApprovalRequest, error) {
	var out approvalDomain.ApprovalRequest
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *ApprovalRequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*approvalDomain.ApprovalRequest, error) {
	var out approvalDomain.ApprovalRequest
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRequestRepository) ListByOrg(ctx context.Context, orgID string, status *approvalDomain.Status) ([]approvalDomain.ApprovalRequest, error) {
	q := r.db.WithContext(ctx).Where("organization_id = ?", orgID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var out []approvalDomain.ApprovalRequest
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

// MarkResolved is the compare-and-swap that makes approve/reject mutually
// exclusive: the WHERE clause only matches a still-pending row, so the loser
// of a race affects zero rows and gets ErrAlreadyResolved.
func (r *ApprovalRequestRepository) MarkResolved(ctx context.Context, id uint64, to approvalDomain.Status, resolvedBy string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&approvalDomain.ApprovalRequest{}).
		Where("id = ? AND status = ?", id, approvalDomain.StatusPending).
		Updates(map[string]any{
			"status":      to,
			"resolved_by": resolvedBy,
			"resolved_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return approvalDomain.ErrAlreadyResolved
	}
	return nil
}
