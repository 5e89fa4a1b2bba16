// Package echoapitest serves requests against an echo app in tests.
package echoapitest

import (
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-assay/apitest"
)

func Serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

// PostJSON serves a POST of body marshaled as JSON.
func PostJSON(e *echo.Echo, url string, body interface{}) *httptest.ResponseRecorder {
	return Serve(e, apitest.NewRequest(http.MethodPost, url, apitest.MustMarshal(body), apitest.JsonReq()))
}
