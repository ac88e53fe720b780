package http

import (
	"context"
	stdhttp "net/http"
	"strings"
	"testing"

	approvalDomain "glowdesk-backend/internal/domain/approval"
	"glowdesk-backend/internal/domain/uow"
	"glowdesk-backend/internal/testutil/invoicemock"
	"glowdesk-backend/internal/testutil/repomock"
	"glowdesk-backend/internal/testutil/uowmock"
	"glowdesk-backend/internal/usecase/approval"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const testInvoiceID = "44444444444444444444444444444444"

func refundHandler(repos uow.Repos, inv *invoicemock.Service) *ApprovalHandler {
	if inv == nil {
		inv = &invoicemock.Service{}
	}
	uc := approval.NewUsecase(uowmock.Passthrough(repos), inv, zerolog.Nop())
	return NewApprovalHandler(uc)
}

func TestRefundInvoice_BelowThreshold_Executes(t *testing.T) {
	e := newEchoWithValidator()
	repos := uow.Repos{
		Policies: &repomock.PolicyRepo{
			GetByOrgFn: func(context.Context, string) (*approvalDomain.ApprovalPolicy, error) {
				return &approvalDomain.ApprovalPolicy{
					OrganizationID:               testOrgID,
					RequireInvoiceRefundApproval: true,
					InvoiceRefundThreshold:       500_000,
				}, nil
			},
		},
		Payments: &repomock.PaymentRepo{},
	}
	h := refundHandler(repos, nil)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/invoices/"+testInvoiceID+"/refund",
		map[string]any{"amount": 200_000, "reason": "client complaint"})
	c.SetParamNames("invoice_id")
	c.SetParamValues(testInvoiceID)

	if err := h.RefundInvoice(c); err != nil {
		t.Fatalf("RefundInvoice error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var out approval.Outcome
	decodeBody(t, rec, &out)
	if !out.Executed || out.Refund == nil {
		t.Fatalf("expected executed refund, got %s", rec.Body.String())
	}
}

func TestRefundInvoice_AboveThreshold_Parks(t *testing.T) {
	e := newEchoWithValidator()
	repos := uow.Repos{
		Policies: &repomock.PolicyRepo{
			GetByOrgFn: func(context.Context, string) (*approvalDomain.ApprovalPolicy, error) {
				return &approvalDomain.ApprovalPolicy{
					OrganizationID:               testOrgID,
					RequireInvoiceRefundApproval: true,
					InvoiceRefundThreshold:       500_000,
				}, nil
			},
		},
		Requests: &repomock.RequestRepo{},
	}
	inv := &invoicemock.Service{
		RefundInvoiceFn: func(context.Context, string, string, int64, string) error {
			t.Fatalf("invoice service must not be called for a parked refund")
			return nil
		},
	}
	h := refundHandler(repos, inv)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/invoices/"+testInvoiceID+"/refund",
		map[string]any{"amount": 2_000_000})
	c.SetParamNames("invoice_id")
	c.SetParamValues(testInvoiceID)

	if err := h.RefundInvoice(c); err != nil {
		t.Fatalf("RefundInvoice error: %v", err)
	}
	if rec.Code != stdhttp.StatusAccepted {
		t.Fatalf("status = %d, want 202; body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		RequiresApproval bool                 `json:"requires_approval"`
		Request          *approval.RequestDTO `json:"approval_request"`
	}
	decodeBody(t, rec, &body)
	if !body.RequiresApproval || body.Request == nil || body.Request.Status != "pending" {
		t.Fatalf("expected pending approval request, got %s", rec.Body.String())
	}
}

func TestRefundInvoice_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := refundHandler(uow.Repos{}, nil)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/invoices/"+testInvoiceID+"/refund",
		map[string]any{"amount": 0})
	c.SetParamNames("invoice_id")
	c.SetParamValues(testInvoiceID)

	if err := h.RefundInvoice(c); err != nil {
		t.Fatalf("RefundInvoice error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	decodeBody(t, rec, &er)
	if er.Error != "validation failed" || !containsFieldMsg(er.Details, "Amount", "greater than 0") {
		t.Fatalf("unexpected error payload: %+v", er)
	}
}

func TestApproveRequest_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	repos := uow.Repos{
		Requests: &repomock.RequestRepo{
			GetByRequestIDForUpdateFn: func(context.Context, string) (*approvalDomain.ApprovalRequest, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
	}
	h := refundHandler(repos, nil)

	reqID := strings.Repeat("e", 32)
	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/approval-requests/"+reqID+"/approve", nil)
	c.SetParamNames("request_id")
	c.SetParamValues(reqID)

	if err := h.ApproveRequest(c); err != nil {
		t.Fatalf("ApproveRequest error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404; body=%s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	decodeBody(t, rec, &er)
	if er.Code != "not_found" {
		t.Fatalf("code = %q, want not_found", er.Code)
	}
}

func TestListRequests_BadStatusFilter(t *testing.T) {
	e := newEchoWithValidator()
	h := refundHandler(uow.Repos{}, nil)

	c, rec := newJSONContext(e, stdhttp.MethodGet, "/v1/approval-requests?status=bogus", nil)

	if err := h.ListRequests(c); err != nil {
		t.Fatalf("ListRequests error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
}

func TestUpdatePolicy_RoundTrip(t *testing.T) {
	e := newEchoWithValidator()
	var saved *approvalDomain.ApprovalPolicy
	repos := uow.Repos{
		Policies: &repomock.PolicyRepo{
			GetByOrgFn: func(context.Context, string) (*approvalDomain.ApprovalPolicy, error) {
				return nil, gorm.ErrRecordNotFound
			},
			UpsertFn: func(_ context.Context, p *approvalDomain.ApprovalPolicy) error {
				saved = p
				return nil
			},
		},
	}
	h := refundHandler(repos, nil)

	c, rec := newJSONContext(e, stdhttp.MethodPut, "/v1/approval-policy", map[string]any{
		"require_cash_out_approval": true,
		"cash_out_threshold":        1_000_000,
	})

	if err := h.UpdatePolicy(c); err != nil {
		t.Fatalf("UpdatePolicy error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	if saved == nil || !saved.RequireCashOutApproval || saved.CashOutThreshold != 1_000_000 {
		t.Fatalf("policy not persisted as sent: %+v", saved)
	}
	var dto approval.PolicyDTO
	decodeBody(t, rec, &dto)
	if dto.CashOutThreshold != 1_000_000 {
		t.Fatalf("dto threshold = %d", dto.CashOutThreshold)
	}
}
