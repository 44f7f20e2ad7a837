package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warehouse-platform/internal/auth"
	"warehouse-platform/internal/config"
	"warehouse-platform/internal/rbac"
	"warehouse-platform/internal/token"
	"warehouse-platform/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the real auth service and guard over memory stores,
// mirroring the production route layout.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	codec, err := auth.NewCodec(config.AuthConfig{
		JWTSecretBase64: "c2VjcmV0LXNpZ25pbmcta2V5",
		JWTIssuer:       "warehouse-platform",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	users := user.NewMemoryRepo()
	ledger := token.NewMemoryRepo()
	svc := auth.NewService(codec, users, ledger)
	h := Handlers{Auth: svc, Users: users}

	r := gin.New()
	v1 := r.Group("/v1")
	v1.Use(auth.Authenticate(codec, ledger, users,
		"/v1/auth/register", "/v1/auth/login", "/v1/auth/refresh"))
	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)
	v1.POST("/auth/refresh", h.Refresh)
	v1.POST("/auth/logout", h.Logout)
	v1.GET("/me", h.Me)
	v1.GET("/users", rbac.RequirePermission(rbac.PermUserRead), h.ListUsers)
	return r
}

func do(r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodePair(t *testing.T, w *httptest.ResponseRecorder) auth.TokenPair {
	t.Helper()
	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair
}

func registerUser(t *testing.T, r *gin.Engine, email string) auth.TokenPair {
	t.Helper()
	w := do(r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"name": "Test", "email": email, "password": "secret-pw",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodePair(t, w)
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r := newTestRouter(t)
	pair := registerUser(t, r, "a@x.com")

	// Registration is an implicit login.
	w := do(r, http.MethodGet, "/v1/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "a@x.com")

	// Duplicate registration.
	w = do(r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"name": "Again", "email": "a@x.com", "password": "other",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Wrong password and unknown email answer identically.
	wrong := do(r, http.MethodPost, "/v1/auth/login", "", gin.H{"email": "a@x.com", "password": "nope"})
	unknown := do(r, http.MethodPost, "/v1/auth/login", "", gin.H{"email": "ghost@x.com", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, wrong.Body.String(), unknown.Body.String())

	w = do(r, http.MethodPost, "/v1/auth/login", "", gin.H{"email": "a@x.com", "password": "secret-pw"})
	require.Equal(t, http.StatusOK, w.Code)
	fresh := decodePair(t, w)

	w = do(r, http.MethodGet, "/v1/me", fresh.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	r := newTestRouter(t)
	pair := registerUser(t, r, "a@x.com")

	// No usable token: 204, never an error.
	w := do(r, http.MethodPost, "/v1/auth/refresh", "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodPost, "/v1/auth/refresh", "not.a.token", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// An access token is not a refresh token.
	w = do(r, http.MethodPost, "/v1/auth/refresh", pair.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodPost, "/v1/auth/refresh", pair.RefreshToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	next := decodePair(t, w)
	require.Equal(t, pair.RefreshToken, next.RefreshToken)

	// The refreshed access token works; note the old one may coincide with it
	// only if issued within the same second, so assert on the new one.
	w = do(r, http.MethodGet, "/v1/me", next.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	r := newTestRouter(t)
	pair := registerUser(t, r, "a@x.com")

	// Anonymous logout is rejected.
	w := do(r, http.MethodPost, "/v1/auth/logout", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/v1/auth/logout", pair.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/v1/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPermissionGateOnUserListing(t *testing.T) {
	r := newTestRouter(t)
	pair := registerUser(t, r, "plain@x.com")

	// A default USER has no user:read permission.
	w := do(r, http.MethodGet, "/v1/users", pair.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/v1/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
