package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	payrollDomain "glowdesk-backend/internal/domain/payroll"
	"glowdesk-backend/internal/domain/uow"
	"glowdesk-backend/internal/testutil/invoicemock"
	"glowdesk-backend/internal/testutil/repomock"
	"glowdesk-backend/internal/testutil/uowmock"
	"glowdesk-backend/internal/usecase/payroll"

	"github.com/rs/zerolog"
)

const testStaffID = "55555555555555555555555555555555"

func payrollHandler(repos uow.Repos) *PayrollHandler {
	uc := payroll.NewUsecase(uowmock.Passthrough(repos), &invoicemock.LineSource{}, &invoicemock.RuleLookup{}, zerolog.Nop())
	return NewPayrollHandler(uc)
}

func TestPreviewCycle_RejectsBadDate(t *testing.T) {
	e := newEchoWithValidator()
	h := payrollHandler(uow.Repos{})

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/payroll-cycles/preview", map[string]any{
		"from_date": "2026/08/01",
		"to_date":   "2026-09-01",
	})

	if err := h.PreviewCycle(c); err != nil {
		t.Fatalf("PreviewCycle error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	decodeBody(t, rec, &er)
	if !containsFieldMsg(er.Details, "FromDate", "must match format 2006-01-02") {
		t.Fatalf("unexpected details: %+v", er.Details)
	}
}

func TestPreviewCycle_ComputesItems(t *testing.T) {
	e := newEchoWithValidator()
	repos := uow.Repos{
		Configs: &repomock.ConfigRepo{
			ListByOrgFn: func(context.Context, string, *string) ([]payrollDomain.PayrollConfig, error) {
				return []payrollDomain.PayrollConfig{{
					OrganizationID:   testOrgID,
					StaffID:          testStaffID,
					StaffName:        "Linh",
					SalaryType:       payrollDomain.SalaryMonthly,
					BaseSalary:       8_000_000,
					DefaultAllowance: 500_000,
				}}, nil
			},
		},
	}
	h := payrollHandler(repos)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/payroll-cycles/preview", map[string]any{
		"from_date": "2026-08-01",
		"to_date":   "2026-09-01",
	})

	if err := h.PreviewCycle(c); err != nil {
		t.Fatalf("PreviewCycle error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Items []payroll.ItemPreview `json:"items"`
	}
	decodeBody(t, rec, &body)
	if len(body.Items) != 1 || body.Items[0].NetAmount != 8_500_000 {
		t.Fatalf("unexpected preview: %+v", body.Items)
	}
}

func TestUpsertConfig_RejectsBadStaffParam(t *testing.T) {
	e := newEchoWithValidator()
	h := payrollHandler(uow.Repos{})

	c, rec := newJSONContext(e, stdhttp.MethodPut, "/v1/payroll-configs/not-hex", map[string]any{
		"staff_name":  "Linh",
		"salary_type": "monthly",
		"base_salary": 8_000_000,
	})
	c.SetParamNames("staff_id")
	c.SetParamValues("not-hex")

	if err := h.UpsertConfig(c); err != nil {
		t.Fatalf("UpsertConfig error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
}

func TestUpsertConfig_Persists(t *testing.T) {
	e := newEchoWithValidator()
	var saved *payrollDomain.PayrollConfig
	repos := uow.Repos{
		Configs: &repomock.ConfigRepo{
			UpsertFn: func(_ context.Context, cfg *payrollDomain.PayrollConfig) error {
				saved = cfg
				return nil
			},
		},
	}
	h := payrollHandler(repos)

	c, rec := newJSONContext(e, stdhttp.MethodPut, "/v1/payroll-configs/"+testStaffID, map[string]any{
		"staff_name":  "Linh",
		"salary_type": "monthly",
		"base_salary": 8_000_000,
	})
	c.SetParamNames("staff_id")
	c.SetParamValues(testStaffID)

	if err := h.UpsertConfig(c); err != nil {
		t.Fatalf("UpsertConfig error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	if saved == nil || saved.StaffID != testStaffID || saved.BaseSalary != 8_000_000 {
		t.Fatalf("config not persisted: %+v", saved)
	}
}

func TestPayCycle_RequiresFinalized(t *testing.T) {
	e := newEchoWithValidator()
	cycleID := testSessionID
	repos := uow.Repos{
		Cycles: &repomock.CycleRepo{
			GetByCycleIDForUpdateFn: func(context.Context, string) (*payrollDomain.PayrollCycle, error) {
				return &payrollDomain.PayrollCycle{
					CycleID:        cycleID,
					OrganizationID: testOrgID,
					Status:         payrollDomain.CycleDraft,
				}, nil
			},
		},
	}
	h := payrollHandler(repos)

	c, rec := newJSONContext(e, stdhttp.MethodPost, "/v1/payroll-cycles/"+cycleID+"/pay", nil)
	c.SetParamNames("cycle_id")
	c.SetParamValues(cycleID)

	if err := h.PayCycle(c); err != nil {
		t.Fatalf("PayCycle error: %v", err)
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
