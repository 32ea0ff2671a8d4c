package bizerror

import (
	"encoding/json"
	"errors"
	"flyerboard/common"
	"flyerboard/domain"
	"flyerboard/export"
	"flyerboard/store"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = fmt.Errorf("%v", ret)
		}
		logrus.Debugf("recovered: %v\n%s", err, debug.Stack())
		HandleError(c, err)
	} else {
		if err := c.Errors.Last(); err != nil {
			HandleError(c, err)
		}
	}
}

func HandleError(c *gin.Context, err error) {
	genericErr := err
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		genericErr = ginErr.Err
	}

	status, body := Translate(genericErr)
	if status >= http.StatusInternalServerError {
		logrus.WithField("path", c.Request.URL.Path).Error(err)
	} else {
		logrus.WithField("path", c.Request.URL.Path).Info(err)
	}
	c.AbortWithStatusJSON(status, body)
}

// Translate maps an error onto the response status and body.
func Translate(err error) (int, *common.ErrorBody) {
	var bizErr common.BizError
	if errors.As(err, &bizErr) {
		respond := bizErr.Respond()
		return respond.Status, respond.Body()
	}

	// bad request:  io.EOF (no body).
	if errors.Is(err, io.EOF) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.body_not_found", Message: "body not found"}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: err.Error()}
	}
	// bad request: json syntax Error
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: syntaxErr.Error()}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: typeErr.Error()}
	}
	// validation failed
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.validation_failed", Message: "validation failed", Data: validationErr.Error()}
	}
	if IsBadParam(err) {
		return http.StatusBadRequest, &common.ErrorBody{Code: "common.bad_param", Message: err.Error()}
	}

	if errors.Is(err, ErrUnauthenticated) {
		return http.StatusUnauthorized, &common.ErrorBody{Code: "common.unauthenticated", Message: "unauthenticated"}
	}
	if errors.Is(err, ErrInvalidPassword) {
		return http.StatusUnauthorized, &common.ErrorBody{Code: "security.invalid_password", Message: "invalid password"}
	}
	if errors.Is(err, ErrTooManyRequests) {
		return http.StatusTooManyRequests, &common.ErrorBody{Code: "security.too_many_requests", Message: "too many requests"}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound, &common.ErrorBody{Code: "common.record_not_found", Message: "record not found"}
	}
	if errors.Is(err, export.ErrNoProjects) {
		return http.StatusNotFound, &common.ErrorBody{Code: "export.no_projects", Message: err.Error()}
	}
	if errors.Is(err, store.ErrConcurrentModification) {
		return http.StatusConflict, &common.ErrorBody{Code: "common.concurrent_modification", Message: err.Error()}
	}

	return http.StatusInternalServerError, &common.ErrorBody{Code: "common.internal_server_error", Message: err.Error()}
}
