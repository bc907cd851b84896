package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/auralink/auralink-backend/internal/access"
	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/audit"
	"github.com/auralink/auralink-backend/internal/auth"
	"github.com/auralink/auralink-backend/internal/config"
	"github.com/auralink/auralink-backend/internal/deletion"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/jwt"
	"github.com/auralink/auralink-backend/internal/plans"
	"github.com/auralink/auralink-backend/internal/queue"
	storagemocks "github.com/auralink/auralink-backend/internal/storage/mocks"
	"github.com/auralink/auralink-backend/internal/subscription"
	"github.com/auralink/auralink-backend/internal/video"
	"github.com/auralink/auralink-backend/internal/ydb"
	ydbmocks "github.com/auralink/auralink-backend/internal/ydb/mocks"
)

type stubSender struct{}

func (stubSender) Send(ctx context.Context, phone string) error { return nil }
func (stubSender) Check(ctx context.Context, phone, code string) (bool, error) {
	return true, nil
}

type stubQueue struct{}

func (stubQueue) Enqueue(ctx context.Context, job queue.Job) error { return nil }

func setupTestRouter() (http.Handler, *ydbmocks.Database, jwt.TokenManager) {
	mockDB := new(ydbmocks.Database)
	mockStorage := new(storagemocks.Provider)
	logger := slog.Default()
	registry := identity.NewRegistry()
	tokens := jwt.NewJWTManager(&config.Config{JWTSecretKey: "secret"})

	accessService := access.NewService(mockDB, logger)
	authService := auth.NewService(mockDB, tokens, stubSender{}, accessService, logger)
	planService := plans.NewService(mockDB, logger)
	subs := subscription.NewService(mockDB, planService, logger)
	auditService := audit.NewService(mockDB, registry, logger)
	videoService := video.NewService(mockDB, mockStorage, nil, stubQueue{}, registry, auditService, "http://test.local", logger)
	deletionService := deletion.NewService(mockDB, registry, nil, logger)

	server := NewServer(authService, videoService, accessService, deletionService,
		subs, planService, auditService, mockDB, 7)
	router := SetupRouter(server, tokens, subs, mockDB)

	return router, mockDB, tokens
}

func bearerToken(t *testing.T, tokens jwt.TokenManager, account *ydb.Account) string {
	t.Helper()
	access, _, err := tokens.GenerateTokenPair(account.AccountID, account.Username, account.Kind, account.Elevated)
	require.NoError(t, err)
	return "Bearer " + access
}

func TestHandler_Register_InvalidJSON(t *testing.T) {
	router, _, _ := setupTestRouter()

	jsonBody := `{"username": "alice", "password": "123"`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request format")
}

func TestHandler_Register_InvalidContentType(t *testing.T) {
	router, _, _ := setupTestRouter()

	jsonBody := `{"username": "alice", "mobile_number": "+15551234567", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(jsonBody))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/auth/register", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandler_Register_ValidatorRejectsShortPassword(t *testing.T) {
	router, _, _ := setupTestRouter()

	jsonBody := `{"username": "alice", "mobile_number": "+15551234567", "password": "short"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Login_ReturnsToken(t *testing.T) {
	router, mockDB, _ := setupTestRouter()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	mockDB.On("GetAccountByLogin", mock.Anything, "alice").Return(&ydb.Account{
		AccountID:    "acct-1",
		Username:     "alice",
		PasswordHash: string(hash),
		Kind:         string(identity.KindRegularUser),
		IsActive:     true,
		CreatedAt:    time.Now(),
	}, nil)

	jsonBody := `{"identifier": "alice", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestHandler_SetAccountType_ProvisionsStaffProfile(t *testing.T) {
	router, mockDB, tokens := setupTestRouter()

	account := &ydb.Account{
		AccountID: "acct-1",
		Username:  "alice",
		Kind:      string(identity.KindRegularUser),
		IsActive:  true,
	}
	mockDB.On("GetAccountByID", mock.Anything, "acct-1").Return(account, nil)
	mockDB.On("GetSubscriptionByAccount", mock.Anything, "acct-1").
		Return(nil, apperrors.NotFound("subscription not found"))
	mockDB.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a *ydb.Account) bool {
		return a.Kind == string(identity.KindStaffTenant)
	})).Return(nil)
	mockDB.On("CreateStaffProfile", mock.Anything, mock.AnythingOfType("*ydb.StaffProfile")).Return(nil)

	jsonBody := `{"account_type": "STAFF"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/account-type", strings.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, tokens, account))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"max_clients":2`)
}

func TestHandler_SetAccountType_RejectsUnknownType(t *testing.T) {
	router, mockDB, tokens := setupTestRouter()

	account := &ydb.Account{
		AccountID: "acct-1",
		Username:  "alice",
		Kind:      string(identity.KindRegularUser),
		IsActive:  true,
	}
	mockDB.On("GetAccountByID", mock.Anything, "acct-1").Return(account, nil)
	mockDB.On("GetSubscriptionByAccount", mock.Anything, "acct-1").
		Return(nil, apperrors.NotFound("subscription not found"))

	jsonBody := `{"account_type": "SUPERUSER"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/account-type", strings.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, tokens, account))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListVideos_RequiresAuth(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/video", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_ListVideos_AuthenticatedFlow(t *testing.T) {
	router, mockDB, tokens := setupTestRouter()

	account := &ydb.Account{
		AccountID: "acct-1",
		Username:  "alice",
		Kind:      string(identity.KindRegularUser),
		IsActive:  true,
	}
	mockDB.On("GetAccountByID", mock.Anything, "acct-1").Return(account, nil)
	mockDB.On("GetSubscriptionByAccount", mock.Anything, "acct-1").
		Return(nil, apperrors.NotFound("subscription not found"))
	mockDB.On("ListOwnedOrGlobalVideos", mock.Anything, "acct-1").Return([]*ydb.Video{}, nil)

	req := httptest.NewRequest("GET", "/api/v1/video", nil)
	req.Header.Set("Authorization", bearerToken(t, tokens, account))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestHandler_BlockedAccountRejected(t *testing.T) {
	router, mockDB, tokens := setupTestRouter()

	account := &ydb.Account{
		AccountID: "acct-1",
		Username:  "alice",
		Kind:      string(identity.KindRegularUser),
		IsActive:  false,
	}
	mockDB.On("GetAccountByID", mock.Anything, "acct-1").Return(account, nil)

	req := httptest.NewRequest("GET", "/api/v1/video", nil)
	req.Header.Set("Authorization", bearerToken(t, tokens, account))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "blocked")
}

func TestHandler_GracePeriodBlocksWrites(t *testing.T) {
	router, mockDB, tokens := setupTestRouter()

	account := &ydb.Account{
		AccountID: "acct-1",
		Username:  "alice",
		Kind:      string(identity.KindRegularUser),
		IsActive:  true,
	}
	mockDB.On("GetAccountByID", mock.Anything, "acct-1").Return(account, nil)
	mockDB.On("GetSubscriptionByAccount", mock.Anything, "acct-1").Return(&ydb.Subscription{
		SubscriptionID:  "sub-1",
		AccountID:       "acct-1",
		PlanID:          "plan-premium",
		Status:          ydb.SubscriptionInGracePeriod,
		StartDate:       time.Now().Add(-40 * 24 * time.Hour),
		EndDate:         time.Now().Add(-2 * 24 * time.Hour),
		GracePeriodDays: 7,
	}, nil)

	jsonBody := `{"video_id": "4fa4a4f4-0000-4000-8000-000000000001"}`
	req := httptest.NewRequest("POST", "/api/v1/video/delete", strings.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, tokens, account))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Read-only")
}

func TestHandler_SetRotation_ValidatorRejectsBadAngle(t *testing.T) {
	router, mockDB, tokens := setupTestRouter()

	account := &ydb.Account{
		AccountID: "acct-1",
		Username:  "alice",
		Kind:      string(identity.KindRegularUser),
		IsActive:  true,
	}
	mockDB.On("GetAccountByID", mock.Anything, "acct-1").Return(account, nil)
	mockDB.On("GetSubscriptionByAccount", mock.Anything, "acct-1").
		Return(nil, apperrors.NotFound("subscription not found"))

	jsonBody := `{"video_id": "4fa4a4f4-0000-4000-8000-000000000001", "rotation": 45}`
	req := httptest.NewRequest("POST", "/api/v1/video/rotation", strings.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, tokens, account))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SubscriptionRoutesBypassGate(t *testing.T) {
	router, mockDB, tokens := setupTestRouter()

	account := &ydb.Account{
		AccountID: "acct-1",
		Username:  "alice",
		Kind:      string(identity.KindRegularUser),
		IsActive:  true,
	}
	mockDB.On("GetAccountByID", mock.Anything, "acct-1").Return(account, nil)
	// Expired subscription: the gate would reject any normal route, but the
	// subscription surface stays reachable so the user can renew.
	mockDB.On("GetSubscriptionByAccount", mock.Anything, "acct-1").Return(&ydb.Subscription{
		SubscriptionID: "sub-1",
		AccountID:      "acct-1",
		PlanID:         "plan-premium",
		Status:         ydb.SubscriptionExpired,
	}, nil)

	req := httptest.NewRequest("GET", "/api/v1/subscription", nil)
	req.Header.Set("Authorization", bearerToken(t, tokens, account))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sub-1")
}
