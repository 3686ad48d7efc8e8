// Package httpapi is the thin HTTP layer over the coordinator. Handlers
// decode, delegate, and encode; business rules stay in the services.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"attestor/internal/certificate"
	"attestor/internal/oracle"
	"attestor/internal/platform/middleware"
	dErrors "attestor/pkg/domain-errors"
)

// CertificateService is the coordinator surface the handlers need.
type CertificateService interface {
	Issue(ctx context.Context, req certificate.IssueRequest) (certificate.IssueResult, error)
	Verify(ctx context.Context, identifier string) (certificate.VerifyResult, error)
	Revoke(ctx context.Context, identifier string) (certificate.RevokeResult, error)
}

// OracleService serves the read-only event endpoints.
type OracleService interface {
	ListEvents(ctx context.Context) ([]oracle.Event, error)
	ListParticipants(ctx context.Context, eventID int64) ([]oracle.Participant, error)
}

// HealthChecker reports the health of an optional dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// ContractInfo is static deployment metadata served as-is.
type ContractInfo struct {
	Address string `json:"address"`
	Network string `json:"network"`
}

// Handler wires the public endpoints to the services.
type Handler struct {
	certs        CertificateService
	oracle       OracleService
	contract     ContractInfo
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator // nil disables auth on mutating routes
	deps         map[string]HealthChecker
}

func NewHandler(
	certs CertificateService,
	oracleSvc OracleService,
	contract ContractInfo,
	logger *slog.Logger,
	jwtValidator middleware.JWTValidator,
) *Handler {
	return &Handler{
		certs:        certs,
		oracle:       oracleSvc,
		contract:     contract,
		logger:       logger,
		jwtValidator: jwtValidator,
		deps:         make(map[string]HealthChecker),
	}
}

// AddDependency registers a named dependency for the health endpoint.
func (h *Handler) AddDependency(name string, checker HealthChecker) {
	h.deps[name] = checker
}

// Register mounts all routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Get("/events", h.handleListEvents)
		api.Get("/events/{eventID}/participants", h.handleListParticipants)
		api.Get("/certificates/verify/{hash}", h.handleVerify)
		api.Get("/contract-info", h.handleContractInfo)

		mutating := api
		if h.jwtValidator != nil {
			mutating = api.With(middleware.RequireAuth(h.jwtValidator, h.logger))
		}
		mutating.Post("/certificates/issue", h.handleIssue)
		mutating.Post("/certificates/revoke/{hash}", h.handleRevoke)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := "API is running"
	deps := make(map[string]string, len(h.deps))
	healthy := true
	for name, checker := range h.deps {
		if err := checker.Health(ctx); err != nil {
			deps[name] = "unhealthy"
			healthy = false
		} else {
			deps[name] = "ok"
		}
	}
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	body := map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}
	writeJSON(w, code, body)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.oracle.ListEvents(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list events failed", "error", err)
		writeError(w, dErrors.New(dErrors.CodeInternal, "failed to list events"))
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: events})
}

func (h *Handler) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "eventID must be an integer"))
		return
	}
	participants, err := h.oracle.ListParticipants(r.Context(), eventID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list participants failed", "error", err)
		writeError(w, dErrors.New(dErrors.CodeInternal, "failed to list participants"))
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: participants})
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req certificate.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.certs.Issue(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Certificate issued successfully",
		Data:    result,
	})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	result, err := h.certs.Verify(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !result.Valid {
		// A negative verification is a successful check, not an error:
		// polling callers never need an error path for unknown or
		// revoked certificates.
		writeJSON(w, http.StatusOK, envelope{
			Success: false,
			Message: "Certificate not found or invalid",
		})
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Certificate is valid",
		Data:    result,
	})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	result, err := h.certs.Revoke(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Certificate revoked successfully",
		Data:    result,
	})
}

func (h *Handler) handleContractInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: h.contract})
}
