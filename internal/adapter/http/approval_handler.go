package http

import (
	"net/http"

	approvalDomain "glowdesk-backend/internal/domain/approval"
	"glowdesk-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type refundInvoiceReq struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason"`
}

func (h *ApprovalHandler) RefundInvoice(c echo.Context) error {
	orgID, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req refundInvoiceReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	out, err := h.uc.SubmitInvoiceRefund(c.Request().Context(), orgID, actorID, approvalDomain.InvoiceRefundPayload{
		InvoiceID: c.Param("invoice_id"),
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOutcome(c, out, http.StatusOK)
}

type cancelInvoiceReq struct {
	Reason string `json:"reason"`
}

func (h *ApprovalHandler) CancelInvoice(c echo.Context) error {
	orgID, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req cancelInvoiceReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	out, err := h.uc.SubmitInvoiceCancel(c.Request().Context(), orgID, actorID, approvalDomain.InvoiceCancelPayload{
		InvoiceID: c.Param("invoice_id"),
		Reason:    req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOutcome(c, out, http.StatusOK)
}

func (h *ApprovalHandler) ListRequests(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	var status *approvalDomain.Status
	if raw := c.QueryParam("status"); raw != "" {
		s := approvalDomain.Status(raw)
		switch s {
		case approvalDomain.StatusPending, approvalDomain.StatusApproved, approvalDomain.StatusRejected:
			status = &s
		default:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status must be pending, approved or rejected"})
		}
	}
	dtos, err := h.uc.List(c.Request().Context(), orgID, status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"approval_requests": dtos})
}

func (h *ApprovalHandler) GetRequest(c echo.Context) error {
	if _, _, ok := requestContext(c); !ok {
		return nil
	}
	dto, err := h.uc.Get(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) ApproveRequest(c echo.Context) error {
	_, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("request_id"), actorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) RejectRequest(c echo.Context) error {
	_, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("request_id"), actorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) GetPolicy(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.GetPolicy(c.Request().Context(), orgID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updatePolicyReq struct {
	RequireInvoiceCancelApproval bool  `json:"require_invoice_cancel_approval"`
	RequireInvoiceRefundApproval bool  `json:"require_invoice_refund_approval"`
	InvoiceRefundThreshold       int64 `json:"invoice_refund_threshold" validate:"gte=0"`
	RequireCashOutApproval       bool  `json:"require_cash_out_approval"`
	CashOutThreshold             int64 `json:"cash_out_threshold"       validate:"gte=0"`
}

func (h *ApprovalHandler) UpdatePolicy(c echo.Context) error {
	orgID, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req updatePolicyReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.UpdatePolicy(c.Request().Context(), orgID, actorID, approval.UpdatePolicyInput{
		RequireInvoiceCancelApproval: req.RequireInvoiceCancelApproval,
		RequireInvoiceRefundApproval: req.RequireInvoiceRefundApproval,
		InvoiceRefundThreshold:       req.InvoiceRefundThreshold,
		RequireCashOutApproval:       req.RequireCashOutApproval,
		CashOutThreshold:             req.CashOutThreshold,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
