package common_test

import (
	"bytes"
	"errors"
	"flyerboard/common"
	"net/http"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Errors", func() {
	Describe("ErrBadParam", func() {
		It("should return default message if cause is nil", func() {
			err := common.ErrBadParam{}
			Expect(err.Error()).To(Equal("common.bad_param"))
			Expect(err.Respond().Message).To(Equal("common.bad_param"))
		})
		It("should use the message of its cause", func() {
			cause := errors.New("invalid file name")
			err := &common.ErrBadParam{Cause: cause}
			Expect(err.Error()).To(Equal("invalid file name"))
			Expect(errors.Is(err, cause)).To(BeTrue())
			Expect(*err.Respond()).To(Equal(common.BizErrorDetail{
				Status: http.StatusBadRequest, Code: "common.bad_param", Message: "invalid file name", Cause: cause}))
			Expect(*err.Respond().Body()).To(Equal(common.ErrorBody{Code: "common.bad_param", Message: "invalid file name"}))
		})
	})
})

var _ = Describe("Logging", func() {
	AfterEach(func() {
		Expect(common.InitLogging(common.LogConfig{})).To(BeNil())
	})

	It("should reject unknown levels", func() {
		Expect(common.InitLogging(common.LogConfig{Level: "loud"})).ToNot(BeNil())
	})

	It("should add default fields to every entry", func() {
		Expect(common.InitLogging(common.LogConfig{Level: "debug", Format: "json"})).To(BeNil())
		Expect(logrus.GetLevel()).To(Equal(logrus.DebugLevel))

		buf := &bytes.Buffer{}
		logrus.SetOutput(buf)
		logrus.WithField("projectId", "1").Info("hello")
		Expect(buf.String()).To(ContainSubstring(`"serviceName":"flyerboard"`))
		Expect(buf.String()).To(ContainSubstring(`"serviceInstance":`))
		Expect(buf.String()).To(ContainSubstring(`"projectId":"1"`))
	})

	It("should write to the configured file", func() {
		dir, err := os.MkdirTemp("", "flyerboard_log_")
		Expect(err).To(BeNil())
		defer os.RemoveAll(dir)

		file := filepath.Join(dir, "app.log")
		Expect(common.InitLogging(common.LogConfig{Format: "text", File: file})).To(BeNil())
		logrus.Warn("rotating")

		content, err := os.ReadFile(file)
		Expect(err).To(BeNil())
		Expect(string(content)).To(ContainSubstring("rotating"))
	})
})
