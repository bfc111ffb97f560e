package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/auth"
	"github.com/BruksfildServices01/barbershop-saas/internal/cache"
	"github.com/BruksfildServices01/barbershop-saas/internal/config"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/notify"
)

const testSecret = "routes-test-secret-routes-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Environment:            config.EnvDevelopment,
		JWTSecret:              testSecret,
		AccessTokenTTL:         15 * time.Minute,
		RefreshTokenTTL:        time.Hour,
		OTPTTL:                 5 * time.Minute,
		OTPMaxAttempts:         5,
		TenantHeader:           "x-tenant-slug",
		TenantCacheTTL:         time.Minute,
		RateLimitMax:           20,
		RateLimitPublicMax:     100,
		RateLimitWindow:        time.Minute,
		PaginationDefaultLimit: 10,
		PaginationMaxLimit:     100,
	}
}

type harness struct {
	router *gin.Engine
	store  *cache.MemoryStore
	mock   sqlmock.Sqlmock
}

func setup(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := cache.NewMemoryStore()
	shop, err := json.Marshal(models.Barbershop{
		ID: "shop-1", Name: "Centro", Slug: "centro", IsActive: true, Timezone: "America/Sao_Paulo",
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "tenant:slug:centro", string(shop), time.Minute))

	r := gin.New()
	require.NoError(t, RegisterRoutes(r, db, store, audit.Discard, testConfig(), zap.NewNop()))

	return &harness{router: r, store: store, mock: mock}
}

// token signs with the same secret and store the router uses.
func (h *harness) token(t *testing.T, role string) string {
	t.Helper()
	a, err := auth.NewAuthority(h.store, nil, notify.NewLogSender(zap.NewNop()), auth.Options{
		Secret:     testSecret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
		OTPTTL:     5 * time.Minute,
		BcryptCost: 4,
	}, zap.NewNop())
	require.NoError(t, err)

	pair, err := a.Issue(context.Background(), &models.Professional{
		ID: "prof-1", BarbershopID: "shop-1", Email: "barber@centro.com", Role: role,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func (h *harness) do(method, path, slug, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if slug != "" {
		req.Header.Set("x-tenant-slug", slug)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestRoutes_Operational(t *testing.T) {
	h := setup(t)

	w := h.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), AppName)

	w = h.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRoutes_MiddlewareOrder(t *testing.T) {
	h := setup(t)
	barber := h.token(t, models.RoleBarber)

	// no tenant wins over no token
	w := h.do(http.MethodDelete, "/api/clients/c-1", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "tenant_not_found")

	w = h.do(http.MethodDelete, "/api/clients/c-1", "centro", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodDelete, "/api/clients/c-1", "centro", barber)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(http.MethodGet, "/api/audit-logs", "centro", barber)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestRoutes_PublicTenantEndpoints(t *testing.T) {
	h := setup(t)

	w := h.do(http.MethodGet, "/api/barbershop", "centro", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"centro"`)

	// disabled unless ENABLE_TEST_OTP is set
	w = h.do(http.MethodGet, "/api/auth/test/otp/a@b.com", "centro", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_LogoutRevokesToken(t *testing.T) {
	h := setup(t)
	admin := h.token(t, models.RoleAdmin)

	w := h.do(http.MethodPost, "/api/auth/logout", "centro", admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodPost, "/api/auth/logout", "centro", admin)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
