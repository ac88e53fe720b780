package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	ledgerDomain "glowdesk-backend/internal/domain/ledger"
	"glowdesk-backend/internal/domain/uow"
	"glowdesk-backend/internal/testutil/repomock"
	"glowdesk-backend/internal/testutil/uowmock"
	"glowdesk-backend/internal/usecase/payment"

	"github.com/rs/zerolog"
)

func TestRecordPayment_Created(t *testing.T) {
	e := newEchoWithValidator()
	var created *ledgerDomain.InvoicePayment
	repos := uow.Repos{
		Payments: &repomock.PaymentRepo{
			CreateFn: func(_ context.Context, p *ledgerDomain.InvoicePayment) error {
				created = p
				return nil
			},
		},
	}
	uc := payment.NewUsecase(uowmock.Passthrough(repos), zerolog.Nop())
	h := NewPaymentHandler(uc)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/invoice-payments", map[string]any{
		"invoice_id": testInvoiceID,
		"method":     "cash",
		"amount":     150_000,
	})

	if err := h.Record(c); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.Status != ledgerDomain.PaymentPending || created.OrganizationID != testOrgID {
		t.Fatalf("unexpected persisted payment: %+v", created)
	}
	var dto payment.PaymentDTO
	decodeBody(t, rec, &dto)
	if len(dto.PaymentID) != 32 || dto.Status != "pending" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestRecordPayment_RejectsUnknownMethod(t *testing.T) {
	e := newEchoWithValidator()
	uc := payment.NewUsecase(uowmock.New(), zerolog.Nop())
	h := NewPaymentHandler(uc)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/invoice-payments", map[string]any{
		"invoice_id": testInvoiceID,
		"method":     "crypto",
		"amount":     150_000,
	})

	if err := h.Record(c); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	decodeBody(t, rec, &er)
	if !containsFieldMsg(er.Details, "Method", "one of: cash card transfer") {
		t.Fatalf("unexpected details: %+v", er.Details)
	}
}

func TestConfirmPayment_TerminalConflict(t *testing.T) {
	e := newEchoWithValidator()
	paymentID := testSessionID // any 32-char id works for the path param
	repos := uow.Repos{
		Payments: &repomock.PaymentRepo{
			GetByPaymentIDForUpdateFn: func(context.Context, string) (*ledgerDomain.InvoicePayment, error) {
				return &ledgerDomain.InvoicePayment{
					PaymentID:      paymentID,
					OrganizationID: testOrgID,
					Status:         ledgerDomain.PaymentFailed,
				}, nil
			},
		},
	}
	uc := payment.NewUsecase(uowmock.Passthrough(repos), zerolog.Nop())
	h := NewPaymentHandler(uc)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/invoice-payments/"+paymentID+"/confirm", nil)
	c.SetParamNames("payment_id")
	c.SetParamValues(paymentID)

	if err := h.Confirm(c); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	decodeBody(t, rec, &er)
	if er.Code != "invalid_state" {
		t.Fatalf("code = %q, want invalid_state", er.Code)
	}
}
