package http

import (
	"net/http"
	"time"

	"glowdesk-backend/internal/usecase/payroll"

	"github.com/labstack/echo/v4"
)

type PayrollHandler struct{ uc *payroll.Usecase }

func NewPayrollHandler(uc *payroll.Usecase) *PayrollHandler { return &PayrollHandler{uc: uc} }

const payrollDateLayout = "2006-01-02"

type payrollRangeReq struct {
	FromDate string  `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string  `json:"to_date"   validate:"required,datetime=2006-01-02"`
	BranchID *string `json:"branch_id" validate:"omitempty,hex32"`
}

func (r *payrollRangeReq) window() (from, to time.Time) {
	from, _ = time.Parse(payrollDateLayout, r.FromDate)
	to, _ = time.Parse(payrollDateLayout, r.ToDate)
	return from, to
}

func (h *PayrollHandler) PreviewCycle(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req payrollRangeReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	from, to := req.window()
	items, err := h.uc.Preview(c.Request().Context(), payroll.PreviewInput{
		OrganizationID: orgID,
		From:           from,
		To:             to,
		BranchID:       req.BranchID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *PayrollHandler) CreateCycle(c echo.Context) error {
	orgID, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req payrollRangeReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	from, to := req.window()
	dto, err := h.uc.CreateCycle(c.Request().Context(), payroll.CreateCycleInput{
		OrganizationID: orgID,
		From:           from,
		To:             to,
		BranchID:       req.BranchID,
		CreatedBy:      actorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PayrollHandler) ListCycles(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dtos, err := h.uc.ListCycles(c.Request().Context(), orgID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"cycles": dtos})
}

func (h *PayrollHandler) GetCycle(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.GetCycle(c.Request().Context(), orgID, c.Param("cycle_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type patchItemReq struct {
	BonusAmount     *int64  `json:"bonus_amount"     validate:"omitempty,gte=0"`
	AllowanceAmount *int64  `json:"allowance_amount" validate:"omitempty,gte=0"`
	DeductionAmount *int64  `json:"deduction_amount" validate:"omitempty,gte=0"`
	AdvanceAmount   *int64  `json:"advance_amount"   validate:"omitempty,gte=0"`
	Notes           *string `json:"notes"`
	PaymentMethod   *string `json:"payment_method"   validate:"omitempty,oneof=cash transfer"`
}

func (h *PayrollHandler) UpdateItem(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req patchItemReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.UpdateItem(c.Request().Context(), orgID, c.Param("item_id"), payroll.ItemPatch{
		BonusAmount:     req.BonusAmount,
		AllowanceAmount: req.AllowanceAmount,
		DeductionAmount: req.DeductionAmount,
		AdvanceAmount:   req.AdvanceAmount,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PayrollHandler) FinalizeCycle(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Finalize(c.Request().Context(), orgID, c.Param("cycle_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PayrollHandler) PayCycle(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Pay(c.Request().Context(), orgID, c.Param("cycle_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type upsertConfigReq struct {
	BranchID         *string `json:"branch_id"         validate:"omitempty,hex32"`
	StaffName        string  `json:"staff_name"        validate:"required"`
	SalaryType       string  `json:"salary_type"       validate:"required,oneof=monthly daily hourly"`
	BaseSalary       int64   `json:"base_salary"       validate:"gte=0"`
	DefaultAllowance int64   `json:"default_allowance" validate:"gte=0"`
	DefaultDeduction int64   `json:"default_deduction" validate:"gte=0"`
	DefaultAdvance   int64   `json:"default_advance"   validate:"gte=0"`
	PaymentMethod    string  `json:"payment_method"    validate:"omitempty,oneof=cash transfer"`
}

func (h *PayrollHandler) UpsertConfig(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	staffID := c.Param("staff_id")
	if !reHex32.MatchString(staffID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "staff_id must be a 32-char hex id"})
	}
	var req upsertConfigReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.UpsertConfig(c.Request().Context(), payroll.ConfigInput{
		OrganizationID:   orgID,
		StaffID:          staffID,
		BranchID:         req.BranchID,
		StaffName:        req.StaffName,
		SalaryType:       req.SalaryType,
		BaseSalary:       req.BaseSalary,
		DefaultAllowance: req.DefaultAllowance,
		DefaultDeduction: req.DefaultDeduction,
		DefaultAdvance:   req.DefaultAdvance,
		PaymentMethod:    req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PayrollHandler) ListConfigs(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	var branchID *string
	if raw := c.QueryParam("branch_id"); raw != "" {
		if !reHex32.MatchString(raw) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "branch_id must be a 32-char hex id"})
		}
		branchID = &raw
	}
	dtos, err := h.uc.ListConfigs(c.Request().Context(), orgID, branchID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"configs": dtos})
}
