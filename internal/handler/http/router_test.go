package http

import (
	"net/http"
	"testing"

	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, cfg RouterConfig) *chi.Mux {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	return NewRouter(cfg,
		jwtService,
		NewAuthHandler(jwtService, nil, nil, ""),
		NewRegisterHandler(nil),
		NewEmployeeHandler(nil),
		NewRollcallHandler(nil),
		NewReportHandler(nil),
	)
}

func routeRegistered(mux *chi.Mux, method, path string) bool {
	rctx := chi.NewRouteContext()
	return mux.Match(rctx, method, path)
}

func TestRouter_GoogleRoutesGatedByConfig(t *testing.T) {
	cfg := RouterConfig{AllowedOrigin: "http://localhost:3000", Env: "test"}

	disabled := newTestRouter(t, cfg)
	assert.False(t, routeRegistered(disabled, http.MethodGet, "/api/v1/auth/login/oauth/google"))
	assert.False(t, routeRegistered(disabled, http.MethodGet, "/api/v1/auth/oauth/callback/google"))

	cfg.GoogleEnabled = true
	enabled := newTestRouter(t, cfg)
	assert.True(t, routeRegistered(enabled, http.MethodGet, "/api/v1/auth/login/oauth/google"))
	assert.True(t, routeRegistered(enabled, http.MethodGet, "/api/v1/auth/oauth/callback/google"))
}

func TestRouter_CoreRoutesRegistered(t *testing.T) {
	mux := newTestRouter(t, RouterConfig{AllowedOrigin: "http://localhost:3000", Env: "test"})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/auth/signup"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/auth/login/manager"},
		{http.MethodPost, "/api/v1/rollcalls/present"},
		{http.MethodGet, "/api/v1/reports/dashboard"},
	} {
		require.True(t, routeRegistered(mux, tc.method, tc.path), "%s %s", tc.method, tc.path)
	}
}
