package certificate

import (
	"context"

	"attestor/internal/ledger"
	"attestor/internal/oracle"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports_mocks.go -package=mocks

// Oracle is the eligibility source the coordinator consults. Read-only,
// safe for concurrent use.
type Oracle interface {
	// ValidateEligibility is the issuance precondition; always a live read.
	ValidateEligibility(ctx context.Context, eventName, participantName string) (oracle.Validation, error)
	// Enrich answers the same question for verification enrichment and may
	// serve a cached answer.
	Enrich(ctx context.Context, eventName, participantName string) (oracle.Validation, error)
}

// Ledger is the certificate registry façade. See ledger.Client for the
// confirmation and no-retry contract.
type Ledger interface {
	Issue(ctx context.Context, recipientName, eventName, issueDate string) (ledger.IssueReceipt, error)
	Verify(ctx context.Context, identifier string) (ledger.Record, error)
	Revoke(ctx context.Context, identifier string) (ledger.RevokeReceipt, error)
}
