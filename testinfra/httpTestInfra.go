package testinfra

import (
	"io"
	"net/http"
	"net/http/httptest"
)

// ExecuteRequest serves req and returns the status code, the body and the raw response.
func ExecuteRequest(req *http.Request, handler http.Handler) (int, string, *http.Response) {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	resp := w.Result()
	defer func() {
		_ = resp.Body.Close()
	}()
	bodyBytes, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(bodyBytes), resp
}
