package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attestor/internal/audit"
	"attestor/internal/certificate"
	jwttoken "attestor/internal/jwt_token"
	"attestor/internal/ledger"
	"attestor/internal/oracle"
	"attestor/internal/platform/metrics"
	"attestor/internal/platform/middleware"
)

var testMetrics = metrics.New()

// newTestServer wires the real coordinator over the in-memory ledger and
// seed oracle, the same composition as dev mode.
func newTestServer(t *testing.T, validator middleware.JWTValidator) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := oracle.NewMemoryStore(oracle.SeedEvents(), oracle.SeedParticipants())
	require.NoError(t, err)
	oracleSvc := oracle.NewService(store, nil, logger, testMetrics)

	chain := ledger.NewMemoryLedger("0xf39f")
	publisher := audit.NewPublisher(64, logger)
	coordinator := certificate.NewService(oracleSvc, chain, publisher, logger, testMetrics, 5*time.Second)

	handler := NewHandler(coordinator, oracleSvc, ContractInfo{
		Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		Network: "localhost:8545",
	}, logger, validator)
	return NewRouter(handler, logger, testMetrics)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestIssueVerifyRevokeFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	w, resp := doJSON(t, srv, http.MethodPost, "/api/certificates/issue", map[string]string{
		"recipientName": "John Doe",
		"eventName":     "Programming Contest 2024",
		"issueDate":     "2024-06-01",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]any)
	hash := data["certificateHash"].(string)
	assert.NotEmpty(t, hash)
	assert.NotEmpty(t, data["transactionHash"])
	assert.NotNil(t, data["validation"])

	w, resp = doJSON(t, srv, http.MethodGet, "/api/certificates/verify/"+hash, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	verified := resp["data"].(map[string]any)
	assert.Equal(t, "John Doe", verified["recipientName"])
	assert.Equal(t, "Programming Contest 2024", verified["eventName"])
	assert.Equal(t, "2024-06-01", verified["issueDate"])
	assert.Equal(t, true, verified["isValid"])
	assert.NotNil(t, verified["oracleValidation"])

	w, resp = doJSON(t, srv, http.MethodPost, "/api/certificates/revoke/"+hash, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	revoked := resp["data"].(map[string]any)
	assert.NotEmpty(t, revoked["transactionHash"])

	// Revocation is terminal: verification now reports invalid, forever.
	for range 2 {
		w, resp = doJSON(t, srv, http.MethodGet, "/api/certificates/verify/"+hash, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, "negative verification is still HTTP 200")
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Certificate not found or invalid", resp["message"])
	}
}

func TestIssueIneligibleRecipient(t *testing.T) {
	srv := newTestServer(t, nil)

	w, resp := doJSON(t, srv, http.MethodPost, "/api/certificates/issue", map[string]string{
		"recipientName": "Jane Roe",
		"eventName":     "Nonexistent Event",
		"issueDate":     "2024-06-01",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "Event not found")
}

func TestIssueMissingFields(t *testing.T) {
	srv := newTestServer(t, nil)

	w, resp := doJSON(t, srv, http.MethodPost, "/api/certificates/issue", map[string]string{
		"recipientName": "John Doe",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "Missing required fields")
}

func TestVerifyUnknownHash(t *testing.T) {
	srv := newTestServer(t, nil)

	w, resp := doJSON(t, srv, http.MethodGet, "/api/certificates/verify/0x1111", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Certificate not found or invalid", resp["message"])
}

func TestRevokeUnknownHashIsLedgerFailure(t *testing.T) {
	srv := newTestServer(t, nil)

	w, resp := doJSON(t, srv, http.MethodPost, "/api/certificates/revoke/0x1111", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestListEventsAndParticipants(t *testing.T) {
	srv := newTestServer(t, nil)

	w, resp := doJSON(t, srv, http.MethodGet, "/api/events", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := resp["data"].([]any)
	assert.Len(t, events, 3)

	w, resp = doJSON(t, srv, http.MethodGet, "/api/events/1/participants", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	participants := resp["data"].([]any)
	assert.Len(t, participants, 2)

	w, _ = doJSON(t, srv, http.MethodGet, "/api/events/abc/participants", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndContractInfo(t *testing.T) {
	srv := newTestServer(t, nil)

	w, resp := doJSON(t, srv, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API is running", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])

	w, resp = doJSON(t, srv, http.MethodGet, "/api/contract-info", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := resp["data"].(map[string]any)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", info["address"])
	assert.Equal(t, "localhost:8545", info["network"])
}

func TestMutatingRoutesRequireAuthWhenConfigured(t *testing.T) {
	jwtSvc := jwttoken.NewJWTService("test-secret", "attestor")
	srv := newTestServer(t, jwtSvc)

	body := map[string]string{
		"recipientName": "John Doe",
		"eventName":     "Programming Contest 2024",
		"issueDate":     "2024-06-01",
	}

	w, _ := doJSON(t, srv, http.MethodPost, "/api/certificates/issue", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, srv, http.MethodPost, "/api/certificates/issue", body, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwtSvc.GenerateAccessToken("ops@attestor", time.Hour)
	require.NoError(t, err)
	w, resp := doJSON(t, srv, http.MethodPost, "/api/certificates/issue", body, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	// Verification stays public.
	w, _ = doJSON(t, srv, http.MethodGet, "/api/certificates/verify/0x1111", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
