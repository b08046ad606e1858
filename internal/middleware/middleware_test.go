package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
	"github.com/BruksfildServices01/freelance-desk/internal/usecase/workspace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "ws": TokenWorkspaceID(c)})
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_token")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")

	wsID := uint(9)
	tok, err := tokens.Issue(auth.Identity{UserID: 3, WorkspaceID: &wsID})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: tok})
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":3,"ws":9}`, w.Body.String())
}

type stubResolver struct {
	acc *workspace.Access
	err error
}

func (s stubResolver) Execute(context.Context, uint, *uint) (*workspace.Access, error) {
	return s.acc, s.err
}

func accessRouter(resolver AccessResolver, menu string) *gin.Engine {
	r := gin.New()
	r.GET("/x",
		func(c *gin.Context) { c.Set(ContextUserID, uint(2)); c.Next() },
		WorkspaceAccess(resolver),
		RequireMenu(menu),
		func(c *gin.Context) { c.String(http.StatusOK, string(Access(c).Role)) },
	)
	return r
}

func memberAccess(perms permission.Set) *workspace.Access {
	return &workspace.Access{
		User:        &models.User{ID: 2},
		Workspace:   &models.Workspace{ID: 5, OwnerID: 1, Permissions: perms},
		Role:        permission.RoleMember,
		Permissions: permission.MustDefault().Normalize(perms),
	}
}

func TestRequireMenu(t *testing.T) {
	perms := permission.Set{Member: []string{"clients"}}

	w := serve(accessRouter(stubResolver{acc: memberAccess(perms)}, "clients"),
		httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "member", w.Body.String())

	w = serve(accessRouter(stubResolver{acc: memberAccess(perms)}, "invoices"),
		httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "menu_forbidden")

	owner := memberAccess(permission.Set{})
	owner.Role = permission.RoleOwner
	w = serve(accessRouter(stubResolver{acc: owner}, "invoices"),
		httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWorkspaceAccessError(t *testing.T) {
	resolver := stubResolver{err: httperr.ErrForbidden("not_member", "You are not a member of this workspace")}

	w := serve(accessRouter(resolver, "clients"), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not_member")
}

func TestRequestLoggerCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := serve(r, req)

	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-123","message":"inside"`)
	assert.Contains(t, buf.String(), `"status":204`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/clients/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/clients/CL-1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/clients/CL-2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/clients/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
