package bizerror

import (
	"errors"
	"flyerboard/common"
	"flyerboard/domain"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrTooManyRequests = errors.New("too many requests")
	ErrInvalidPassword = errors.New("invalid password")
)

// DefaultChecklist is shown when the board cannot load projects.
var DefaultChecklist = []string{
	"database.driver and database.dsn point to a reachable database",
	"the projects table exists and is readable",
	"oss.endpoint, oss.bucket and the access keys are set",
}

// ErrBoardUnavailable is returned while the board is in its fatal state.
type ErrBoardUnavailable struct {
	Cause     error
	Checklist []string
}

func (e *ErrBoardUnavailable) Error() string {
	if e.Cause != nil {
		return "board unavailable: " + e.Cause.Error()
	}
	return "board unavailable"
}

func (e *ErrBoardUnavailable) Unwrap() error {
	return e.Cause
}

func (e *ErrBoardUnavailable) Respond() *common.BizErrorDetail {
	checklist := e.Checklist
	if checklist == nil {
		checklist = DefaultChecklist
	}
	return &common.BizErrorDetail{Status: http.StatusServiceUnavailable, Code: "board.unavailable",
		Message: e.Error(), Data: checklist, Cause: e.Cause}
}

var badParamErrors = []error{
	domain.ErrInvalidStatus,
	domain.ErrInvalidRole,
	domain.ErrInvalidName,
	domain.ErrEmptyComment,
	domain.ErrMissingProject,
}

// IsBadParam reports whether err was caused by the request itself.
func IsBadParam(err error) bool {
	var badParam *common.ErrBadParam
	if errors.As(err, &badParam) {
		return true
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return true
	}
	for _, e := range badParamErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
