package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRouteAndStatus(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/news/:slug", func(c echo.Context) error {
		if c.Param("slug") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "News not found")
		}
		return c.NoContent(http.StatusOK)
	})

	okBefore := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/news/:slug", "200"))
	nfBefore := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/news/:slug", "404"))

	for _, path := range []string{"/api/news/a", "/api/news/b", "/api/news/missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/news/:slug", "200")))
	assert.Equal(t, nfBefore+1, testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/news/:slug", "404")))
}

func TestMiddleware_ErrorReachesClient(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid ID")
}
