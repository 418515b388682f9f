package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/Kariqs/mobistore-api/services"
	"github.com/Kariqs/mobistore-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type fakeResolver struct {
	users map[uint]models.Role
	err   error
}

func (f fakeResolver) ResolveIdentity(_ context.Context, userID uint) (*services.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown user", services.ErrUnauthenticated)
	}
	return &services.Identity{UserID: userID, Role: role}, nil
}

func setupRouter(resolver IdentityResolver, trustHeader bool, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{RequireAuth(resolver, secret, trustHeader)}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(ctx *gin.Context) {
		identity, _ := CurrentIdentity(ctx)
		ctx.JSON(http.StatusOK, gin.H{"user_id": identity.UserID, "role": identity.Role})
	})
	r.GET("/me", chain...)
	return r
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateJWT(models.User{ID: userID, UserType: models.RoleBuyer}, secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(r http.Handler, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_BearerToken(t *testing.T) {
	r := setupRouter(fakeResolver{users: map[uint]models.Role{5: models.RoleSeller}}, false)

	w := do(r, map[string]string{"Authorization": bearer(t, 5)})

	assert.Equal(t, http.StatusOK, w.Code)
	// the stored role wins over the token claim
	assert.JSONEq(t, `{"user_id":5,"role":"seller"}`, w.Body.String())
}

func TestRequireAuth_Rejects(t *testing.T) {
	r := setupRouter(fakeResolver{users: map[uint]models.Role{5: models.RoleBuyer}}, false)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no credentials", nil},
		{"malformed header", map[string]string{"Authorization": "Token abc"}},
		{"bad token", map[string]string{"Authorization": "Bearer nope"}},
		{"unknown user", map[string]string{"Authorization": bearer(t, 6)}},
		{"header auth disabled", map[string]string{"user-id": "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.headers)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"code":"unauthenticated"`)
		})
	}
}

func TestRequireAuth_TrustedHeader(t *testing.T) {
	r := setupRouter(fakeResolver{users: map[uint]models.Role{5: models.RoleBuyer}}, true)

	w := do(r, map[string]string{"user-id": "5"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, map[string]string{"user-id": "abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ResolverFailure(t *testing.T) {
	r := setupRouter(fakeResolver{err: services.ErrInternal}, false)

	w := do(r, map[string]string{"Authorization": bearer(t, 5)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRole(t *testing.T) {
	resolver := fakeResolver{users: map[uint]models.Role{1: models.RoleBuyer, 2: models.RoleSeller, 3: models.RoleAdmin}}
	r := setupRouter(resolver, false, models.RoleSeller)

	assert.Equal(t, http.StatusForbidden, do(r, map[string]string{"Authorization": bearer(t, 1)}).Code)
	assert.Equal(t, http.StatusOK, do(r, map[string]string{"Authorization": bearer(t, 2)}).Code)
	assert.Equal(t, http.StatusForbidden, do(r, map[string]string{"Authorization": bearer(t, 3)}).Code)
}

func TestRequireRole_WithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireRole(models.RoleSeller), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, do(r, nil).Code)
}
