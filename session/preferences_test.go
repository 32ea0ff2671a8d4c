package session_test

import (
	"bytes"
	"flyerboard/bizerror"
	"flyerboard/session"
	"flyerboard/testinfra"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestPreferencesHandler(t *testing.T) {
	RegisterTestingT(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(bizerror.ErrorHandling())
	session.RegisterPreferencesHandler(router)

	t.Run("should return defaults without cookies", func(t *testing.T) {
		status, body, _ := testinfra.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/v1/preferences", nil), router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"userName":"","role":"","fontSize":"base"}`))
	})

	t.Run("should read remembered cookies and ignore invalid values", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/preferences", nil)
		req.AddCookie(&http.Cookie{Name: session.KeyUserName, Value: url.QueryEscape("山田 花子")})
		req.AddCookie(&http.Cookie{Name: session.KeyUserRole, Value: "agency"})
		req.AddCookie(&http.Cookie{Name: session.KeyFontSize, Value: "xl"})
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"userName":"山田 花子","role":"agency","fontSize":"base"}`))
	})

	t.Run("should remember updated preferences in durable cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v1/preferences",
			bytes.NewReader([]byte(`{"userName":" ann ","role":"company","fontSize":"lg"}`)))
		status, body, resp := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"userName":"ann","role":"company","fontSize":"lg"}`))

		cookies := map[string]*http.Cookie{}
		for _, c := range resp.Cookies() {
			cookies[c.Name] = c
		}
		Expect(cookies[session.KeyUserName].Value).To(Equal("ann"))
		Expect(cookies[session.KeyUserRole].Value).To(Equal("company"))
		Expect(cookies[session.KeyFontSize].Value).To(Equal("lg"))
		Expect(cookies[session.KeyFontSize].MaxAge).To(BeNumerically(">", 0))
	})

	t.Run("should reject invalid role and font size", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v1/preferences", bytes.NewReader([]byte(`{"role":"admin"}`)))
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))

		req = httptest.NewRequest(http.MethodPut, "/v1/preferences", bytes.NewReader([]byte(`{"fontSize":"xl"}`)))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param","message":"invalid font size","data":null}`))
	})
}
