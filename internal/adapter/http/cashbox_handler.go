package http

import (
	"net/http"

	"glowdesk-backend/internal/usecase/approval"
	"glowdesk-backend/internal/usecase/cashbox"

	"github.com/labstack/echo/v4"
)

type CashboxHandler struct{ uc *cashbox.Usecase }

func NewCashboxHandler(uc *cashbox.Usecase) *CashboxHandler { return &CashboxHandler{uc: uc} }

type openSessionReq struct {
	OpeningBalance int64  `json:"opening_balance" validate:"gte=0"`
	Notes          string `json:"notes"`
}

func (h *CashboxHandler) OpenSession(c echo.Context) error {
	orgID, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req openSessionReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.Open(c.Request().Context(), cashbox.OpenInput{
		OrganizationID: orgID,
		OpeningBalance: req.OpeningBalance,
		Notes:          req.Notes,
		OpenedBy:       actorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CashboxHandler) CurrentSession(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Current(c.Request().Context(), orgID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CashboxHandler) Snapshot(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Snapshot(c.Request().Context(), orgID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type closeSessionReq struct {
	ActualClosingBalance int64  `json:"actual_closing_balance" validate:"gte=0"`
	Notes                string `json:"notes"`
}

func (h *CashboxHandler) CloseSession(c echo.Context) error {
	orgID, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req closeSessionReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.Close(c.Request().Context(), cashbox.CloseInput{
		OrganizationID:       orgID,
		SessionID:            c.Param("session_id"),
		ActualClosingBalance: req.ActualClosingBalance,
		Notes:                req.Notes,
		ClosedBy:             actorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type createTransactionReq struct {
	SessionID string `json:"session_id" validate:"required,hex32"`
	Type      string `json:"type"       validate:"required,oneof=in out"`
	Amount    int64  `json:"amount"     validate:"required,gt=0"`
	Category  string `json:"category"   validate:"required"`
	Notes     string `json:"notes"`
}

func (h *CashboxHandler) CreateTransaction(c echo.Context) error {
	orgID, actorID, ok := requestContext(c)
	if !ok {
		return nil
	}
	var req createTransactionReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	out, err := h.uc.CreateTransaction(c.Request().Context(), cashbox.TransactionInput{
		OrganizationID: orgID,
		SessionID:      req.SessionID,
		Type:           req.Type,
		Amount:         req.Amount,
		Category:       req.Category,
		Notes:          req.Notes,
		CreatedBy:      actorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOutcome(c, out, http.StatusCreated)
}

func (h *CashboxHandler) ListTransactions(c echo.Context) error {
	orgID, _, ok := requestContext(c)
	if !ok {
		return nil
	}
	dtos, err := h.uc.ListTransactions(c.Request().Context(), orgID, c.Param("session_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": dtos})
}

// writeOutcome renders a gate decision: the executed result with the given
// status, or 202 + the pending request when the action got parked.
func writeOutcome(c echo.Context, out *approval.Outcome, executedStatus int) error {
	if out.Executed {
		return c.JSON(executedStatus, out)
	}
	return c.JSON(http.StatusAccepted, map[string]any{
		"requires_approval": true,
		"approval_request":  out.Request,
	})
}
