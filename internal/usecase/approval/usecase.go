package approval

import (
	"context"
	"errors"
	"time"

	approvalDomain "glowdesk-backend/internal/domain/approval"
	"glowdesk-backend/internal/domain/invoice"
	"glowdesk-backend/internal/domain/uow"
	"glowdesk-backend/pkg/apperr"
	"glowdesk-backend/pkg/id"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Usecase is the single interception point for sensitive money movements.
// Every caller of a gated action comes through Submit*; the decision
// ("does this need approval") and the execution ("how is it actually done")
// live here and nowhere else, so they cannot drift apart.
type Usecase struct {
	uow      uow.UnitOfWork
	invoices invoice.Service
	log      zerolog.Logger
}

func NewUsecase(u uow.UnitOfWork, inv invoice.Service, log zerolog.Logger) *Usecase {
	return &Usecase{uow: u, invoices: inv, log: log}
}

// loadPolicy treats a missing policy row as the zero policy: nothing gated.
func loadPolicy(ctx context.Context, r uow.Repos, orgID string) (*approvalDomain.ApprovalPolicy, error) {
	p, err := r.Policies.GetByOrg(ctx, orgID)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &approvalDomain.ApprovalPolicy{OrganizationID: orgID}, nil
	default:
		return nil, err
	}
}

func (u *Usecase) createRequest(ctx context.Context, r uow.Repos, orgID, requestedBy string,
	entity approvalDomain.EntityType, action approvalDomain.Action, p approvalDomain.Payload) (*approvalDomain.ApprovalRequest, error) {

	raw, err := approvalDomain.MarshalPayload(p)
	if err != nil {
		return nil, err
	}
	req := &approvalDomain.ApprovalRequest{
		RequestID:      id.NewID32(),
		OrganizationID: orgID,
		EntityType:     entity,
		Action:         action,
		Payload:        raw,
		Status:         approvalDomain.StatusPending,
		RequestedBy:    requestedBy,
	}
	if err := r.Requests.Create(ctx, req); err != nil {
		return nil, err
	}
	u.log.Info().
		Str("request_id", req.RequestID).
		Str("organization_id", orgID).
		Str("entity_type", string(entity)).
		Str("action", string(action)).
		Msg("approval request created")
	return req, nil
}

// SubmitCashOut gates a manual cash-out. Below the policy threshold it
// executes immediately; above, it parks a pending request and writes nothing
// to the ledger.
func (u *Usecase) SubmitCashOut(ctx context.Context, orgID, requestedBy string, p approvalDomain.CashOutPayload) (*Outcome, error) {
	if p.Amount <= 0 {
		return nil, apperr.Validationf("amount must be positive")
	}
	if p.SessionID == "" {
		return nil, apperr.Validationf("session_id is required")
	}

	var out *Outcome
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		policy, err := loadPolicy(ctx, r, orgID)
		if err != nil {
			return err
		}
		if policy.GatesCashOut(p.Amount) {
			req, err := u.createRequest(ctx, r, orgID, requestedBy,
				approvalDomain.EntityCashTransaction, approvalDomain.ActionCashOut,
				approvalDomain.Payload{CashOut: &p})
			if err != nil {
				return err
			}
			out = &Outcome{Executed: false, Request: toRequestDTO(req)}
			return nil
		}
		t, err := u.executeCashOut(ctx, r, orgID, requestedBy, p)
		if err != nil {
			return err
		}
		out = &Outcome{Executed: true, Transaction: toTransactionDTO(p.SessionID, t)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) SubmitInvoiceRefund(ctx context.Context, orgID, requestedBy string, p approvalDomain.InvoiceRefundPayload) (*Outcome, error) {
	if p.Amount <= 0 {
		return nil, apperr.Validationf("amount must be positive")
	}
	if p.InvoiceID == "" {
		return nil, apperr.Validationf("invoice_id is required")
	}

	var out *Outcome
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		policy, err := loadPolicy(ctx, r, orgID)
		if err != nil {
			return err
		}
		if policy.GatesInvoiceRefund(p.Amount) {
			req, err := u.createRequest(ctx, r, orgID, requestedBy,
				approvalDomain.EntityInvoice, approvalDomain.ActionRefund,
				approvalDomain.Payload{InvoiceRefund: &p})
			if err != nil {
				return err
			}
			out = &Outcome{Executed: false, Request: toRequestDTO(req)}
			return nil
		}
		leg, err := u.executeInvoiceRefund(ctx, r, orgID, p)
		if err != nil {
			return err
		}
		out = &Outcome{Executed: true, Refund: toRefundDTO(leg)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) SubmitInvoiceCancel(ctx context.Context, orgID, requestedBy string, p approvalDomain.InvoiceCancelPayload) (*Outcome, error) {
	if p.InvoiceID == "" {
		return nil, apperr.Validationf("invoice_id is required")
	}

	var out *Outcome
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		policy, err := loadPolicy(ctx, r, orgID)
		if err != nil {
			return err
		}
		if policy.GatesInvoiceCancel() {
			req, err := u.createRequest(ctx, r, orgID, requestedBy,
				approvalDomain.EntityInvoice, approvalDomain.ActionCancel,
				approvalDomain.Payload{InvoiceCancel: &p})
			if err != nil {
				return err
			}
			out = &Outcome{Executed: false, Request: toRequestDTO(req)}
			return nil
		}
		if err := u.executeInvoiceCancel(ctx, orgID, p); err != nil {
			return err
		}
		out = &Outcome{Executed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Approve replays the stored payload through exactly the code path the
// action would have taken ungated, then flips the request to approved with
// a CAS on status=pending. A failed replay rolls the transaction back and
// leaves the request pending so the approval can be retried; this is the
// one deliberate non-terminal exception to the forward-only state machine.
func (u *Usecase) Approve(ctx context.Context, requestID, resolvedBy string) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("approval request %s not found", requestID)
			}
			return err
		}
		if !req.IsPending() {
			return apperr.InvalidStatef("approval request %s already %s", requestID, req.Status)
		}

		p, err := approvalDomain.DecodePayload(req)
		if err != nil {
			return err
		}
		switch {
		case p.CashOut != nil:
			if _, err := u.executeCashOut(ctx, r, req.OrganizationID, req.RequestedBy, *p.CashOut); err != nil {
				return err
			}
		case p.InvoiceRefund != nil:
			if _, err := u.executeInvoiceRefund(ctx, r, req.OrganizationID, *p.InvoiceRefund); err != nil {
				return err
			}
		case p.InvoiceCancel != nil:
			if err := u.executeInvoiceCancel(ctx, req.OrganizationID, *p.InvoiceCancel); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		if err := r.Requests.MarkResolved(ctx, req.ID, approvalDomain.StatusApproved, resolvedBy, now); err != nil {
			if errors.Is(err, approvalDomain.ErrAlreadyResolved) {
				return apperr.InvalidStatef("approval request %s was resolved concurrently", requestID)
			}
			return err
		}
		req.Status = approvalDomain.StatusApproved
		req.ResolvedBy = &resolvedBy
		req.ResolvedAt = &now
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("request_id", requestID).Str("resolved_by", resolvedBy).Msg("approval request approved")
	return dto, nil
}

// Reject terminally closes the request; the underlying action never runs.
func (u *Usecase) Reject(ctx context.Context, requestID, resolvedBy string) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("approval request %s not found", requestID)
			}
			return err
		}
		if !req.IsPending() {
			return apperr.InvalidStatef("approval request %s already %s", requestID, req.Status)
		}

		now := time.Now().UTC()
		if err := r.Requests.MarkResolved(ctx, req.ID, approvalDomain.StatusRejected, resolvedBy, now); err != nil {
			if errors.Is(err, approvalDomain.ErrAlreadyResolved) {
				return apperr.InvalidStatef("approval request %s was resolved concurrently", requestID)
			}
			return err
		}
		req.Status = approvalDomain.StatusRejected
		req.ResolvedBy = &resolvedBy
		req.ResolvedAt = &now
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("request_id", requestID).Str("resolved_by", resolvedBy).Msg("approval request rejected")
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, requestID string) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("approval request %s not found", requestID)
			}
			return err
		}
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) List(ctx context.Context, orgID string, status *approvalDomain.Status) ([]RequestDTO, error) {
	var dtos []RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		reqs, err := r.Requests.ListByOrg(ctx, orgID, status)
		if err != nil {
			return err
		}
		dtos = make([]RequestDTO, 0, len(reqs))
		for i := range reqs {
			dtos = append(dtos, *toRequestDTO(&reqs[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}

func (u *Usecase) GetPolicy(ctx context.Context, orgID string) (*PolicyDTO, error) {
	var dto *PolicyDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := loadPolicy(ctx, r, orgID)
		if err != nil {
			return err
		}
		dto = toPolicyDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) UpdatePolicy(ctx context.Context, orgID, updatedBy string, in UpdatePolicyInput) (*PolicyDTO, error) {
	if in.InvoiceRefundThreshold < 0 || in.CashOutThreshold < 0 {
		return nil, apperr.Validationf("thresholds must not be negative")
	}

	var dto *PolicyDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p := &approvalDomain.ApprovalPolicy{
			OrganizationID:               orgID,
			RequireInvoiceCancelApproval: in.RequireInvoiceCancelApproval,
			RequireInvoiceRefundApproval: in.RequireInvoiceRefundApproval,
			InvoiceRefundThreshold:       in.InvoiceRefundThreshold,
			RequireCashOutApproval:       in.RequireCashOutApproval,
			CashOutThreshold:             in.CashOutThreshold,
			UpdatedBy:                    updatedBy,
		}
		if err := r.Policies.Upsert(ctx, p); err != nil {
			return err
		}
		dto = toPolicyDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
