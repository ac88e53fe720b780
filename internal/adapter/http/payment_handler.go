package http

import (
	"net/http"

	"glowdesk-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	InvoiceID string `json:"invoice_id" validate:"required,hex32"`
	Method    string `json:"method"     validate:"required,oneof=cash card transfer"`
	Amount    int64  `json:"amount"     validate:"required,gt=0"`
}

func (h *PaymentHandler) Record(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req recordPaymentReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.Record(c.Request().Context(), payment.RecordInput{
		OrganizationID: orgID,
		InvoiceID:      req.InvoiceID,
		Method:         req.Method,
		Amount:         req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) Confirm(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Confirm(c.Request().Context(), orgID, c.Param("payment_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) Fail(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Fail(c.Request().Context(), orgID, c.Param("payment_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) ListByInvoice(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dtos, err := h.uc.ListByInvoice(c.Request().Context(), orgID, c.Param("invoice_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": dtos})
}
