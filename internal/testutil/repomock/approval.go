package repomock

import (
	"context"
	"time"

	domain "glowdesk-backend/internal/domain/approval"
)

// PolicyRepo is a function-backed mock for approval.PolicyRepository.
type PolicyRepo struct {
	GetByOrgFn func(ctx context.Context, orgID string) (*domain.ApprovalPolicy, error)
	UpsertFn   func(ctx context.Context, p *domain.ApprovalPolicy) error
}

func (m *PolicyRepo) GetByOrg(ctx context.Context, orgID string) (*domain.ApprovalPolicy, error) {
	if m.GetByOrgFn != nil {
		return m.GetByOrgFn(ctx, orgID)
	}
	return nil, context.Canceled
}

func (m *PolicyRepo) Upsert(ctx context.Context, p *domain.ApprovalPolicy) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, p)
	}
	return nil
}

// RequestRepo is a function-backed mock for approval.RequestRepository.
type RequestRepo struct {
	CreateFn                  func(ctx context.Context, r *domain.ApprovalRequest) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.ApprovalRequest, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.ApprovalRequest, error)
	ListByOrgFn               func(ctx context.Context, orgID string, status *domain.Status) ([]domain.ApprovalRequest, error)
	MarkResolvedFn            func(ctx context.Context, id uint64, to domain.Status, resolvedBy string, at time.Time) error
}

func (m *RequestRepo) Create(ctx context.Context, r *domain.ApprovalRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RequestRepo) GetByRequestID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) ListByOrg(ctx context.Context, orgID string, status *domain.Status) ([]domain.ApprovalRequest, error) {
	if m.ListByOrgFn != nil {
		return m.ListByOrgFn(ctx, orgID, status)
	}
	return nil, nil
}

func (m *RequestRepo) MarkResolved(ctx context.Context, id uint64, to domain.Status, resolvedBy string, at time.Time) error {
	if m.MarkResolvedFn != nil {
		return m.MarkResolvedFn(ctx, id, to, resolvedBy, at)
	}
	return nil
}
