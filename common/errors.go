package common

import (
	"net/http"
)

// BizError is implemented by errors that know their own HTTP response.
type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

// Body is the JSON sent to the client. Cause stays server side.
func (d *BizErrorDetail) Body() *ErrorBody {
	return &ErrorBody{Code: d.Code, Message: d.Message, Data: d.Data}
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const codeBadParam = "common.bad_param"

// ErrBadParam marks a request the client must fix: malformed path ids,
// unknown statuses, missing upload parts and the like.
type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}

func (e *ErrBadParam) Error() string {
	if e.Cause == nil {
		return codeBadParam
	}
	return e.Cause.Error()
}

func (e *ErrBadParam) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: codeBadParam, Message: e.Error(), Cause: e.Cause}
}
