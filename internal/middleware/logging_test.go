package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newCORSServer() *echo.Echo {
	e := echo.New()
	e.Use(APICORS())

	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/api/categories", ok)
	e.GET("/add", ok)
	e.POST("/add", ok)
	return e
}

func preflight(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set(echo.HeaderOrigin, "http://client.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAPICORS_Preflight(t *testing.T) {
	rec := preflight(newCORSServer(), "/api/categories")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	methods := rec.Header().Get(echo.HeaderAccessControlAllowMethods)
	for _, m := range []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"} {
		assert.Contains(t, methods, m)
	}
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderContentType)
}

func TestAPICORS_SimpleRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set(echo.HeaderOrigin, "http://client.example")
	rec := httptest.NewRecorder()
	newCORSServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestAPICORS_SkipsPagePaths(t *testing.T) {
	rec := preflight(newCORSServer(), "/add")

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods))

	req := httptest.NewRequest(http.MethodGet, "/add", nil)
	req.Header.Set(echo.HeaderOrigin, "http://client.example")
	get := httptest.NewRecorder()
	newCORSServer().ServeHTTP(get, req)

	assert.Equal(t, http.StatusOK, get.Code)
	assert.Empty(t, get.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
