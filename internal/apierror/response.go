// Package apierror writes the JSON error envelope shared by every handler and maps
// rejection kinds onto HTTP status codes.
package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/rules"
)

// Error codes returned in the envelope.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeLimitViolation = "LIMIT_VIOLATION"
	CodeIneligibleSlot = "INELIGIBLE_SLOT"
	CodePlayerLocked   = "PLAYER_LOCKED"
	CodeStaleState     = "STALE_STATE"
	CodeMoveLocked     = "MOVE_LOCKED"
	CodeInternal       = "INTERNAL_ERROR"
)

// ErrorBody is the inner error object.
type ErrorBody struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Violations []rules.Violation `json:"violations,omitempty"`
}

// ErrorResponse represents the error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

var kinds = []struct {
	err    error
	status int
	code   string
}{
	{rules.ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
	{rules.ErrNotFound, http.StatusNotFound, CodeNotFound},
	{rules.ErrLimitViolation, http.StatusConflict, CodeLimitViolation},
	{rules.ErrIneligibleSlot, http.StatusConflict, CodeIneligibleSlot},
	{rules.ErrPlayerLocked, http.StatusConflict, CodePlayerLocked},
	{rules.ErrStaleState, http.StatusConflict, CodeStaleState},
	{rules.ErrMoveLocked, http.StatusConflict, CodeMoveLocked},
}

// Classify maps an error onto its HTTP status and envelope code.
// Unknown errors are internal.
func Classify(err error) (int, string) {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// Respond writes an envelope with an explicit code.
func Respond(c *gin.Context, code, message string, statusCode int) {
	c.JSON(statusCode, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// Body builds the envelope for err. Internal errors never leak their message.
func Body(err error) (int, ErrorResponse) {
	status, code := Classify(err)
	if code == CodeInternal {
		return status, ErrorResponse{Error: ErrorBody{Code: code, Message: "internal server error"}}
	}
	return status, ErrorResponse{Error: ErrorBody{
		Code:       code,
		Message:    err.Error(),
		Violations: rules.ViolationsOf(err),
	}}
}

// Write classifies err and writes the envelope; internal errors are logged.
func Write(c *gin.Context, logger *zap.SugaredLogger, err error, msg string, keysAndValues ...interface{}) {
	status, body := Body(err)
	if status == http.StatusInternalServerError {
		logger.Errorw(msg, append(keysAndValues, "error", err)...)
	}
	c.JSON(status, body)
}

// InvalidRequest writes a 400 envelope.
func InvalidRequest(c *gin.Context, message string) {
	Respond(c, CodeInvalidRequest, message, http.StatusBadRequest)
}
