package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	approvalDomain "glowdesk-backend/internal/domain/approval"
	cashboxDomain "glowdesk-backend/internal/domain/cashbox"
	"glowdesk-backend/internal/domain/uow"
	"glowdesk-backend/internal/testutil/repomock"
	"glowdesk-backend/internal/testutil/uowmock"
	"glowdesk-backend/internal/usecase/approval"
	"glowdesk-backend/internal/usecase/cashbox"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type stubGate struct {
	fn func(ctx context.Context, orgID, requestedBy string, p approvalDomain.CashOutPayload) (*approval.Outcome, error)
}

func (g *stubGate) SubmitCashOut(ctx context.Context, orgID, requestedBy string, p approvalDomain.CashOutPayload) (*approval.Outcome, error) {
	return g.fn(ctx, orgID, requestedBy, p)
}

func TestOpenSession_Created(t *testing.T) {
	e := newEchoWithValidator()
	var created *cashboxDomain.CashSession
	repos := uow.Repos{
		Sessions: &repomock.SessionRepo{
			GetOpenByOrgFn: func(context.Context, string) (*cashboxDomain.CashSession, error) {
				return nil, gorm.ErrRecordNotFound
			},
			CreateFn: func(_ context.Context, s *cashboxDomain.CashSession) error {
				created = s
				return nil
			},
		},
	}
	uc := cashbox.NewUsecase(uowmock.Passthrough(repos), &stubGate{}, zerolog.Nop())
	h := NewCashboxHandler(uc)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/cash-sessions",
		map[string]any{"opening_balance": 500_000, "notes": "morning shift"})

	if err := h.OpenSession(c); err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.OrganizationID != testOrgID || created.OpenedBy != testActorID {
		t.Fatalf("session not persisted with header identity: %+v", created)
	}
	var dto cashbox.SessionDTO
	decodeBody(t, rec, &dto)
	if len(dto.SessionID) != 32 || dto.OpeningBalance != 500_000 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestOpenSession_NegativeBalance(t *testing.T) {
	e := newEchoWithValidator()
	uc := cashbox.NewUsecase(uowmock.New(), &stubGate{}, zerolog.Nop())
	h := NewCashboxHandler(uc)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/cash-sessions",
		map[string]any{"opening_balance": -100})

	if err := h.OpenSession(c); err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateTransaction_GatedOut_Answers202(t *testing.T) {
	e := newEchoWithValidator()
	gate := &stubGate{
		fn: func(_ context.Context, orgID, requestedBy string, p approvalDomain.CashOutPayload) (*approval.Outcome, error) {
			if orgID != testOrgID || requestedBy != testActorID {
				t.Fatalf("gate got org=%s actor=%s", orgID, requestedBy)
			}
			return &approval.Outcome{
				Executed: false,
				Request:  &approval.RequestDTO{Status: "pending", Action: "cash_out"},
			}, nil
		},
	}
	uc := cashbox.NewUsecase(uowmock.New(), gate, zerolog.Nop())
	h := NewCashboxHandler(uc)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/cash-transactions", map[string]any{
		"session_id": testSessionID,
		"type":       "out",
		"amount":     2_000_000,
		"category":   "supplier_payment",
	})

	if err := h.CreateTransaction(c); err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}
	if rec.Code != stdhttp.StatusAccepted {
		t.Fatalf("status = %d, want 202; body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		RequiresApproval bool                 `json:"requires_approval"`
		Request          *approval.RequestDTO `json:"approval_request"`
	}
	decodeBody(t, rec, &body)
	if !body.RequiresApproval || body.Request == nil || body.Request.Action != "cash_out" {
		t.Fatalf("unexpected parked body: %s", rec.Body.String())
	}
}

func TestCreateTransaction_RejectsBadType(t *testing.T) {
	e := newEchoWithValidator()
	uc := cashbox.NewUsecase(uowmock.New(), &stubGate{}, zerolog.Nop())
	h := NewCashboxHandler(uc)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/cash-transactions", map[string]any{
		"session_id": testSessionID,
		"type":       "sideways",
		"amount":     100,
		"category":   "misc",
	})

	if err := h.CreateTransaction(c); err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestCloseSession_AlreadyClosed_Conflict(t *testing.T) {
	e := newEchoWithValidator()
	closedAt := cashboxDomain.CashSession{Status: cashboxDomain.StatusClosed}
	repos := uow.Repos{
		Sessions: &repomock.SessionRepo{
			GetBySessionIDForUpdateFn: func(context.Context, string) (*cashboxDomain.CashSession, error) {
				s := closedAt
				s.SessionID = testSessionID
				s.OrganizationID = testOrgID
				return &s, nil
			},
		},
	}
	uc := cashbox.NewUsecase(uowmock.Passthrough(repos), &stubGate{}, zerolog.Nop())
	h := NewCashboxHandler(uc)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/cash-sessions/"+testSessionID+"/close",
		map[string]any{"actual_closing_balance": 100_000})
	c.SetParamNames("session_id")
	c.SetParamValues(testSessionID)

	if err := h.CloseSession(c); err != nil {
		t.Fatalf("CloseSession error: %v", err)
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
