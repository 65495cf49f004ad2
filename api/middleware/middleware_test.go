package middleware

import (
	"burnshop_server/structs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testMiddleware() *Middleware {
	return NewMiddleware(&structs.Config{
		RateLimit: &structs.RateLimitConfig{
			GeneralLimit:  100,
			GeneralWindow: time.Minute,
			AuthLimit:     5,
			AuthWindow:    time.Minute,
			AdminLimit:    20,
			AdminWindow:   time.Minute,
			SearchLimit:   30,
			SearchWindow:  30 * time.Second,
		},
	}, gecho.NewDefaultLogger(), nil, nil)
}

func TestRateLimitForEndpoint(t *testing.T) {
	mw := testMiddleware()
	id := uuid.NewString()

	cases := []struct {
		method, path string
		limit        int
	}{
		{http.MethodPost, "/login", 5},
		{http.MethodPost, "/register", 5},
		{http.MethodPost, "/product/" + id + "/edit", 20},
		{http.MethodPost, "/category/add", 20},
		{http.MethodPost, "/product/" + id + "/reviews", 100},
		{http.MethodGet, "/search", 30},
		{http.MethodGet, "/products", 30},
		{http.MethodGet, "/product/" + id, 100},
	}
	for _, c := range cases {
		limit, _ := mw.getRateLimitForEndpoint(c.path, c.method)
		assert.Equal(t, c.limit, limit, "%s %s", c.method, c.path)
	}
}

func TestRateLimitEndpointGroupsIDs(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()

	assert.Equal(t, "PUT /orders/:id/items/:id", rateLimitEndpoint("/orders/"+a+"/items/"+b, http.MethodPut))
	assert.Equal(t, "POST /wishlist/toggle/:id", rateLimitEndpoint("/wishlist/toggle/"+a+"/", http.MethodPost))
	assert.Equal(t, "GET /categories", rateLimitEndpoint("/categories", http.MethodGet))
}

func TestCSRFMiddleware(t *testing.T) {
	mw := testMiddleware()
	handler := mw.CSRFMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(method, cookie, header string) int {
		req := httptest.NewRequest(method, "/wishlist/toggle/x", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "csrf", Value: cookie})
		}
		if header != "" {
			req.Header.Set("X-CSRF-Token", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send(http.MethodGet, "", ""))
	assert.Equal(t, http.StatusForbidden, send(http.MethodPost, "", "abc"))
	assert.Equal(t, http.StatusForbidden, send(http.MethodPost, "abc", "abd"))
	assert.Equal(t, http.StatusNoContent, send(http.MethodPost, "abc", "abc"))
}

func TestRequireAdminWithoutClaimsRedirectsToLogin(t *testing.T) {
	mw := testMiddleware()
	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/add", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
