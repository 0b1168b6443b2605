package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	departmentdomain "github.com/juristech/legara/internal/department/domain"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	paymentdomain "github.com/juristech/legara/internal/payment/domain"
	revenuedomain "github.com/juristech/legara/internal/revenuetarget/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrTooManyRequests = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

var notFoundErrs = []error{
	ErrNotFound,
	firmdomain.ErrFirmNotFound,
	departmentdomain.ErrDepartmentNotFound,
	casefiledomain.ErrCaseNotFound,
	revenuedomain.ErrTargetNotFound,
	gorm.ErrRecordNotFound,
}

var badRequestErrs = []error{
	ErrInvalidRequest,
	firmdomain.ErrInvalidName,
	firmdomain.ErrInvalidPrefix,
	departmentdomain.ErrInvalidName,
	departmentdomain.ErrInvalidCode,
	casefiledomain.ErrInvalidType,
	casefiledomain.ErrInvalidDebtor,
	casefiledomain.ErrInvalidPrincipal,
	casefiledomain.ErrInvalidStatus,
	casefiledomain.ErrInvalidDepartment,
	paymentdomain.ErrInvalidAmount,
	paymentdomain.ErrInvalidMethod,
	revenuedomain.ErrInvalidTarget,
	revenuedomain.ErrInvalidYear,
}

var conflictErrs = []error{
	firmdomain.ErrPrefixTaken,
	departmentdomain.ErrCodeTaken,
	casefiledomain.ErrAlreadyEscalated,
	casefiledomain.ErrNotEscalatable,
	casefiledomain.ErrCaseClosed,
	casefiledomain.ErrInvalidTransition,
}

func mapError(err error) (int, errorPayload) {
	switch {
	case matchesAny(err, notFoundErrs):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}
	case matchesAny(err, badRequestErrs):
		return http.StatusBadRequest, errorPayload{Type: "invalid_request", Message: err.Error()}
	case matchesAny(err, conflictErrs):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: err.Error()}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: "unauthorized"}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{Type: "too_many_requests", Message: "rate limit exceeded"}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// classifyErrorForLog tags request log lines with the mapped error type
// and the HTTP status it resolved to.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	return payload.Type, strconv.Itoa(status)
}
