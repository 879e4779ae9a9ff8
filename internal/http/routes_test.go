package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouter_MissingAuthClosesAdminRoutes(t *testing.T) {
	router := NewRouter(RouterServices{})

	targets := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/users"},
		{http.MethodGet, "/api/admin/posts"},
		{http.MethodPost, "/api/admin/awardees"},
		{http.MethodDelete, "/api/admin/events/42"},
		{http.MethodGet, "/api/admin/newsletter/subscribers"},
		{http.MethodPost, "/api/admin/push/broadcast"},
	}
	for _, target := range targets {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(target.method, target.path, nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", target.method, target.path)
		assert.Contains(t, rec.Body.String(), "auth_unavailable")
		// Nothing past the guard runs, so no records can leak.
		assert.NotContains(t, rec.Body.String(), "users")
		assert.NotContains(t, rec.Body.String(), "email")
	}
}

func TestNewRouter_MissingAuthKeepsHealthOpen(t *testing.T) {
	router := NewRouter(RouterServices{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
