package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"glowdesk-backend/pkg/apperr"
)

// Org context and acting user travel as headers; both are validated here
// and threaded through explicitly, never via ambient globals.
const (
	HeaderOrganizationID = "X-Organization-Id"
	HeaderActingUserID   = "X-Acting-User-Id"
)

// requestContext pulls and validates the two identity headers. On a missing
// or malformed header it writes the 400 itself and reports ok=false, so no
// usecase ever runs without org scope.
func requestContext(c echo.Context) (orgID, actorID string, ok bool) {
	orgID = c.Request().Header.Get(HeaderOrganizationID)
	if !reHex32.MatchString(orgID) {
		_ = c.JSON(http.StatusBadRequest,
			ErrorResponse{Error: "missing or malformed " + HeaderOrganizationID + " header"})
		return "", "", false
	}
	actorID = c.Request().Header.Get(HeaderActingUserID)
	if !reHex32.MatchString(actorID) {
		_ = c.JSON(http.StatusBadRequest,
			ErrorResponse{Error: "missing or malformed " + HeaderActingUserID + " header"})
		return "", "", false
	}
	return orgID, actorID, true
}

// writeError maps an apperr kind onto the wire. invalid_state shares 409
// with conflict but keeps its own code so clients can tell "someone else
// holds this slot" apart from "this entity moved past that state".
func writeError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindValidation:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: string(kind)})
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: string(kind)})
	case apperr.KindConflict, apperr.KindInvalidState:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: string(kind)})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: string(kind)})
	}
}

// bindAndValidate binds the JSON body and runs struct validation; binding
// problems answer 400, field violations 422 with details. Like
// requestContext it writes the response itself on failure.
func bindAndValidate(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
		return false
	}
	return true
}
