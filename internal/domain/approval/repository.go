package approval

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyResolved is returned by MarkResolved when the CAS on
// status=pending touched zero rows: someone else resolved the request first.
var ErrAlreadyResolved = errors.New("approval request already resolved")

type PolicyRepository interface {
	// GetByOrg returns gorm.ErrRecordNotFound when no policy row exists;
	// callers treat that as the zero policy.
	GetByOrg(ctx context.Context, orgID string) (*ApprovalPolicy, error)

	Upsert(ctx context.Context, p *ApprovalPolicy) error
}

type RequestRepository interface {
	Create(ctx context.Context, r *ApprovalRequest) error

	GetByRequestID(ctx context.Context, requestID string) (*ApprovalRequest, error)

	// Row-locked variant used while resolving.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*ApprovalRequest, error)

	ListByOrg(ctx context.Context, orgID string, status *Status) ([]ApprovalRequest, error)

	// MarkResolved performs UPDATE ... SET status=?, resolved_by=?, resolved_at=?
	// WHERE id=? AND status='pending'. Zero rows affected -> ErrAlreadyResolved.
	MarkResolved(ctx context.Context, id uint64, to Status, resolvedBy string, at time.Time) error
}
