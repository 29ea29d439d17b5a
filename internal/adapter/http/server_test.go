package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasisfintech/oasis-backend/internal/adapter/events"
	"github.com/oasisfintech/oasis-backend/internal/adapter/repository/memory"
	"github.com/oasisfintech/oasis-backend/internal/adapter/session"
	"github.com/oasisfintech/oasis-backend/internal/logger"
	"github.com/oasisfintech/oasis-backend/internal/usecase/access"
	"github.com/oasisfintech/oasis-backend/internal/usecase/fraud"
	"github.com/oasisfintech/oasis-backend/internal/usecase/ledger"
	"github.com/oasisfintech/oasis-backend/internal/usecase/reconcile"
	"github.com/oasisfintech/oasis-backend/internal/usecase/report"
	"github.com/oasisfintech/oasis-backend/internal/usecase/transfer"
)

func newTestRouter(t *testing.T) (*gin.Engine, *ledger.Service, *fraud.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	log := logger.NewNop()

	ledgerService := ledger.NewService(store, log)
	fraudEngine := fraud.NewEngine(store, log)
	transferService := transfer.NewService(ledgerService, fraudEngine, events.NewNoopPublisher(), log)

	server := NewServer(
		ledgerService,
		fraudEngine,
		reconcile.NewEngine(),
		transferService,
		report.NewService(store),
		access.NewPolicy(),
		session.NewMemoryStore(),
		log,
	)
	return server.Router(), ledgerService, fraudEngine
}

func doJSON(t *testing.T, router *gin.Engine, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(HeaderSessionID, sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func openSession(t *testing.T, router *gin.Engine, memberID, role string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/sessions", "", map[string]string{
		"member_id": memberID,
		"role":      role,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestRoutes_RequireSession(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/accounts/ACC-1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/accounts/ACC-1", "bogus-session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_PermissionDenied(t *testing.T) {
	router, _, _ := newTestRouter(t)
	sessionID := openSession(t, router, "MEM-1", "user")

	// "reconcile" is outside the user role's fixed action set.
	rec := doJSON(t, router, http.MethodPost, "/api/reconciliation", sessionID, map[string]any{
		"statements": []any{},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoutes_PostEntryFlow(t *testing.T) {
	router, ledgerService, _ := newTestRouter(t)
	sessionID := openSession(t, router, "MEM-1", "user")

	rec := doJSON(t, router, http.MethodPost, "/api/accounts", sessionID, map[string]string{
		"member_id":       "MEM-1",
		"account_type":    "checking",
		"currency":        "USD",
		"opening_balance": "100.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var accountA struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accountA))

	rec = doJSON(t, router, http.MethodPost, "/api/accounts", sessionID, map[string]string{
		"member_id":       "MEM-1",
		"account_type":    "savings",
		"currency":        "USD",
		"opening_balance": "50.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var accountB struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accountB))

	rec = doJSON(t, router, http.MethodPost, "/api/ledger", sessionID, map[string]string{
		"debit_account_id":  accountA.ID,
		"credit_account_id": accountB.ID,
		"amount":            "30.00",
		"memo":              "savings top-up",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	updated, err := ledgerService.GetAccount(context.Background(), accountA.ID)
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("70.00")))

	// Validation errors map to 400 and nothing posts.
	rec = doJSON(t, router, http.MethodPost, "/api/ledger", sessionID, map[string]string{
		"debit_account_id":  accountA.ID,
		"credit_account_id": accountA.ID,
		"amount":            "30.00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/ledger", sessionID, map[string]string{
		"debit_account_id":  "ACC-missing",
		"credit_account_id": accountB.ID,
		"amount":            "5.00",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_FraudBlockedEntry(t *testing.T) {
	router, ledgerService, fraudEngine := newTestRouter(t)
	sessionID := openSession(t, router, "MEM-1", "user")
	fraudEngine.AddRule("large-amount", fraud.AmountAboveLimit(decimal.NewFromInt(100)))

	rec := doJSON(t, router, http.MethodPost, "/api/accounts", sessionID, map[string]string{
		"member_id": "MEM-1", "account_type": "checking", "opening_balance": "1000.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var accountA struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accountA))

	rec = doJSON(t, router, http.MethodPost, "/api/accounts", sessionID, map[string]string{
		"member_id": "MEM-1", "account_type": "savings", "opening_balance": "0",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var accountB struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accountB))

	rec = doJSON(t, router, http.MethodPost, "/api/ledger", sessionID, map[string]string{
		"debit_account_id":  accountA.ID,
		"credit_account_id": accountB.ID,
		"amount":            "500.00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Rule string `json:"rule"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "large-amount", resp.Rule)

	// The flagged transaction never reached the ledger.
	entries, err := ledgerService.Entries(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRoutes_Health(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
