package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tkay6677/lunchpay/internal/auth"
	"github.com/Tkay6677/lunchpay/internal/httpx"
	"github.com/Tkay6677/lunchpay/internal/metrics"
	"github.com/Tkay6677/lunchpay/internal/storage/inmem"
)

func newAuthRouter(t *testing.T) chi.Router {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	store := inmem.New()
	accountRepo := inmem.NewAccountRepository(store)
	tokenRepo := inmem.NewTokenRepository(store)
	service := auth.NewService(tokenRepo, accountRepo)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	handler := auth.NewHandler(service, logger, metrics.NewMock())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	// A protected probe route so middleware behavior is covered end to end.
	router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(logger))
		r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			email, _ := auth.GetEmail(r.Context())
			httpx.JSON(w, http.StatusOK, map[string]string{"email": email})
		})
	})
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Taylor Johnson",
		"email":    "taylor@example.com",
		"password": "password123",
		"role":     "parent",
	}
}

func TestRegister_Success(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/register", registerPayload())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp auth.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.Account)
	assert.Equal(t, "taylor@example.com", resp.Account.Email)
	assert.Equal(t, "/parent/dashboard", resp.RedirectTo)

	var foundAuthCookie bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" {
			foundAuthCookie = true
			assert.Equal(t, resp.AccessToken, cookie.Value)
		}
	}
	assert.True(t, foundAuthCookie, "token cookie should be set")
}

func TestRegister_AdminLandsOnAdminDashboard(t *testing.T) {
	router := newAuthRouter(t)

	payload := registerPayload()
	payload["role"] = "admin"
	w := doJSON(t, router, http.MethodPost, "/auth/register", payload)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp auth.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "/admin/dashboard", resp.RedirectTo)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newAuthRouter(t)

	first := doJSON(t, router, http.MethodPost, "/auth/register", registerPayload())
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/auth/register", registerPayload())
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "email already exists")
}

func TestRegister_ValidationError(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]interface{}{
		"email":    "invalid",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Success(t *testing.T) {
	router := newAuthRouter(t)
	doJSON(t, router, http.MethodPost, "/auth/register", registerPayload())

	w := doJSON(t, router, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "taylor@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp auth.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "/parent/dashboard", resp.RedirectTo)
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newAuthRouter(t)
	doJSON(t, router, http.MethodPost, "/auth/register", registerPayload())

	w := doJSON(t, router, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "taylor@example.com",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestRefresh_RotatesToken(t *testing.T) {
	router := newAuthRouter(t)
	reg := doJSON(t, router, http.MethodPost, "/auth/register", registerPayload())
	var registered auth.AuthResponse
	require.NoError(t, json.NewDecoder(reg.Body).Decode(&registered))

	w := doJSON(t, router, http.MethodPost, "/auth/refresh", map[string]interface{}{
		"refreshToken": registered.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var refreshed auth.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&refreshed))
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The spent refresh token is no longer valid.
	again := doJSON(t, router, http.MethodPost, "/auth/refresh", map[string]interface{}{
		"refreshToken": registered.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, again.Code)
}

func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	router := newAuthRouter(t)
	reg := doJSON(t, router, http.MethodPost, "/auth/register", registerPayload())
	var registered auth.AuthResponse
	require.NoError(t, json.NewDecoder(reg.Body).Decode(&registered))

	w := doJSON(t, router, http.MethodPost, "/auth/logout", map[string]interface{}{
		"refreshToken": registered.RefreshToken,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)

	refresh := doJSON(t, router, http.MethodPost, "/auth/refresh", map[string]interface{}{
		"refreshToken": registered.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, refresh.Code)
}

func TestProtectedRoute_RequiresAuth(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/whoami", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// The denied response carries a login affordance and no account data.
	assert.Contains(t, w.Body.String(), "loginUrl")
	assert.NotContains(t, w.Body.String(), "taylor@example.com")
}

func TestProtectedRoute_WithValidCookie(t *testing.T) {
	router := newAuthRouter(t)
	reg := doJSON(t, router, http.MethodPost, "/auth/register", registerPayload())
	var registered auth.AuthResponse
	require.NoError(t, json.NewDecoder(reg.Body).Decode(&registered))

	cookie := &http.Cookie{Name: "token", Value: registered.AccessToken}
	w := doJSON(t, router, http.MethodGet, "/api/whoami", nil, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "taylor@example.com")
}

func TestProtectedRoute_RejectsGarbageToken(t *testing.T) {
	router := newAuthRouter(t)

	cookie := &http.Cookie{Name: "token", Value: "not-a-jwt"}
	w := doJSON(t, router, http.MethodGet, "/api/whoami", nil, cookie)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
