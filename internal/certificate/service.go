// Package certificate holds the coordinator: the workflow that combines the
// oracle's eligibility attestation with the ledger's certificate registry.
// The ledger is authoritative for certificate state; the oracle gates
// issuance and supplies supplementary context on verification.
package certificate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"attestor/internal/audit"
	"attestor/internal/platform/metrics"
	dErrors "attestor/pkg/domain-errors"
	"attestor/pkg/requestcontext"
)

// Service is the coordinator. Stateless between requests: all durable state
// lives in the ledger, so concurrent requests need no locking here and
// double-issuance protection is entirely the ledger's transaction ordering.
type Service struct {
	oracle  Oracle
	ledger  Ledger
	audit   *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	// ledgerTimeout bounds each ledger call, submission through
	// confirmation. Expiry surfaces as CodeTimeout, never a hang.
	ledgerTimeout time.Duration
}

func NewService(
	oracle Oracle,
	ledger Ledger,
	publisher *audit.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
	ledgerTimeout time.Duration,
) *Service {
	return &Service{
		oracle:        oracle,
		ledger:        ledger,
		audit:         publisher,
		logger:        logger,
		metrics:       m,
		tracer:        otel.Tracer("attestor/certificate"),
		ledgerTimeout: ledgerTimeout,
	}
}

// Issue mints a certificate. The oracle check is a hard precondition
// evaluated before any ledger write: a certificate is never appended for a
// recipient the oracle does not currently attest. Ledger failures surface to
// the caller untouched — no automatic retry, since a second Issue on a
// non-idempotent registry can double-mint.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (IssueResult, error) {
	ctx, span := s.tracer.Start(ctx, "certificate.issue")
	defer span.End()

	if err := validateIssueRequest(req); err != nil {
		s.metrics.IssuancesTotal.WithLabelValues("invalid_request").Inc()
		return IssueResult{}, err
	}

	validation, err := s.oracle.ValidateEligibility(ctx, req.EventName, req.RecipientName)
	if err != nil {
		span.RecordError(err)
		s.metrics.IssuancesTotal.WithLabelValues("oracle_error").Inc()
		return IssueResult{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "eligibility check unavailable")
	}
	if !validation.Valid {
		s.metrics.IssuancesTotal.WithLabelValues("ineligible").Inc()
		s.audit.Emit(ctx, audit.Event{
			Action:        audit.ActionIssuanceRejected,
			RecipientName: req.RecipientName,
			EventName:     req.EventName,
			Reason:        validation.Reason,
			RequestID:     requestcontext.RequestID(ctx),
		})
		return IssueResult{}, dErrors.Newf(dErrors.CodeIneligible, "Validation failed: %s", validation.Reason)
	}

	lctx, cancel := context.WithTimeout(ctx, s.ledgerTimeout)
	defer cancel()
	start := time.Now()
	receipt, err := s.ledger.Issue(lctx, req.RecipientName, req.EventName, req.IssueDate)
	s.metrics.ObserveLedgerCall("issue", start)
	if err != nil {
		span.RecordError(err)
		return IssueResult{}, s.ledgerFailure(ctx, "issue", err)
	}

	s.metrics.IssuancesTotal.WithLabelValues("success").Inc()
	s.audit.Emit(ctx, audit.Event{
		Action:        audit.ActionCertificateIssued,
		Identifier:    receipt.Identifier,
		RecipientName: req.RecipientName,
		EventName:     req.EventName,
		TxRef:         receipt.TransactionRef,
		RequestID:     requestcontext.RequestID(ctx),
	})
	return IssueResult{
		Identifier:     receipt.Identifier,
		Issuer:         receipt.Issuer,
		TransactionRef: receipt.TransactionRef,
		BlockNumber:    receipt.BlockNumber,
		Validation:     validation,
	}, nil
}

// Verify reads the certificate from the ledger and, when it is valid,
// re-checks the oracle purely for enrichment. An unknown or revoked
// certificate is a successful negative answer, not an error. The oracle can
// never override the ledger verdict, and an oracle failure degrades to a
// missing enrichment rather than failing the call.
func (s *Service) Verify(ctx context.Context, identifier string) (VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, "certificate.verify")
	defer span.End()

	if strings.TrimSpace(identifier) == "" {
		return VerifyResult{}, dErrors.New(dErrors.CodeBadRequest, "certificate identifier is required")
	}

	lctx, cancel := context.WithTimeout(ctx, s.ledgerTimeout)
	defer cancel()
	start := time.Now()
	record, err := s.ledger.Verify(lctx, identifier)
	s.metrics.ObserveLedgerCall("verify", start)
	if err != nil {
		span.RecordError(err)
		s.metrics.VerificationsTotal.WithLabelValues("error").Inc()
		return VerifyResult{}, s.ledgerFailure(ctx, "verify", err)
	}

	if !record.IsValid {
		s.metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
		return VerifyResult{Valid: false}, nil
	}

	result := VerifyResult{
		Valid:         true,
		RecipientName: record.RecipientName,
		EventName:     record.EventName,
		IssueDate:     record.IssueDate,
		Issuer:        record.Issuer,
	}

	enrichment, err := s.oracle.Enrich(ctx, record.EventName, record.RecipientName)
	if err != nil {
		// Enrichment is informational only; the ledger verdict stands.
		s.logger.WarnContext(ctx, "oracle enrichment unavailable",
			"identifier", identifier,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	} else {
		result.OracleValidation = &enrichment
	}

	s.metrics.VerificationsTotal.WithLabelValues("valid").Inc()
	s.audit.Emit(ctx, audit.Event{
		Action:        audit.ActionCertificateVerified,
		Identifier:    identifier,
		RecipientName: record.RecipientName,
		EventName:     record.EventName,
		RequestID:     requestcontext.RequestID(ctx),
	})
	return result, nil
}

// Revoke marks the certificate revoked. Unconditional: the coordinator does
// not re-derive eligibility, and who may revoke is enforced upstream.
func (s *Service) Revoke(ctx context.Context, identifier string) (RevokeResult, error) {
	ctx, span := s.tracer.Start(ctx, "certificate.revoke")
	defer span.End()

	if strings.TrimSpace(identifier) == "" {
		return RevokeResult{}, dErrors.New(dErrors.CodeBadRequest, "certificate identifier is required")
	}

	lctx, cancel := context.WithTimeout(ctx, s.ledgerTimeout)
	defer cancel()
	start := time.Now()
	receipt, err := s.ledger.Revoke(lctx, identifier)
	s.metrics.ObserveLedgerCall("revoke", start)
	if err != nil {
		span.RecordError(err)
		s.metrics.RevocationsTotal.WithLabelValues("error").Inc()
		return RevokeResult{}, s.ledgerFailure(ctx, "revoke", err)
	}

	outcome := "success"
	if receipt.AlreadyRevoked {
		outcome = "noop"
	} else {
		s.audit.Emit(ctx, audit.Event{
			Action:     audit.ActionCertificateRevoked,
			Identifier: identifier,
			TxRef:      receipt.TransactionRef,
			RequestID:  requestcontext.RequestID(ctx),
		})
	}
	s.metrics.RevocationsTotal.WithLabelValues(outcome).Inc()
	return RevokeResult{
		TransactionRef: receipt.TransactionRef,
		AlreadyRevoked: receipt.AlreadyRevoked,
	}, nil
}

// ledgerFailure translates a ledger error into the coded taxonomy. Deadline
// expiry is distinguished from registry failures so callers can tell a slow
// chain from a broken one.
func (s *Service) ledgerFailure(ctx context.Context, operation string, err error) error {
	s.logger.ErrorContext(ctx, "ledger call failed",
		"operation", operation,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		if operation == "issue" {
			s.metrics.IssuancesTotal.WithLabelValues("timeout").Inc()
		}
		return dErrors.Wrap(err, dErrors.CodeTimeout, "ledger "+operation+" not confirmed before deadline")
	}
	if operation == "issue" {
		s.metrics.IssuancesTotal.WithLabelValues("ledger_error").Inc()
	}
	return dErrors.Wrap(err, dErrors.CodeLedger, "ledger "+operation+" failed")
}

func validateIssueRequest(req IssueRequest) error {
	if strings.TrimSpace(req.RecipientName) == "" ||
		strings.TrimSpace(req.EventName) == "" ||
		strings.TrimSpace(req.IssueDate) == "" {
		return dErrors.New(dErrors.CodeBadRequest,
			"Missing required fields: recipientName, eventName, issueDate")
	}
	if !govalidator.IsTime(req.IssueDate, "2006-01-02") && !govalidator.IsRFC3339(req.IssueDate) {
		return dErrors.New(dErrors.CodeBadRequest,
			"issueDate must be YYYY-MM-DD or RFC3339")
	}
	return nil
}
