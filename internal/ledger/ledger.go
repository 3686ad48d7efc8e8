// Package ledger is the typed façade over the certificate registry: an
// append-only keyed store that is the sole authority for certificate
// existence, validity, and revocation.
package ledger

import "context"

// Client exposes the three registry transactions. Implementations report
// success only after confirmation (durable finality), never after mere
// submission. Mutating calls are not retried here or anywhere above:
// a blind retry of Issue can double-mint.
type Client interface {
	// Issue appends a new certificate with status Issued and returns its
	// identifier. At most one underlying transaction per call.
	Issue(ctx context.Context, recipientName, eventName, issueDate string) (IssueReceipt, error)

	// Verify is a pure read. A missing or revoked certificate yields
	// IsValid=false with a nil error; errors mean the registry itself
	// could not be read.
	Verify(ctx context.Context, identifier string) (Record, error)

	// Revoke transitions Issued -> Revoked. Revoking an already-revoked
	// certificate is a no-op success carrying the original revocation's
	// transaction ref and AlreadyRevoked=true; no new transaction is
	// submitted. Revoking an unknown identifier is an error.
	Revoke(ctx context.Context, identifier string) (RevokeReceipt, error)
}

// IssueReceipt is the confirmed outcome of an issuance transaction.
type IssueReceipt struct {
	Identifier     string
	Issuer         string
	TransactionRef string
	BlockNumber    uint64
}

// Record is the registry's view of one certificate. The identifier is
// opaque, comparison-only data to everything above this package.
type Record struct {
	RecipientName string
	EventName     string
	IssueDate     string
	Issuer        string
	// IsValid is true iff the certificate exists and has not been revoked.
	IsValid bool
}

// RevokeReceipt is the confirmed outcome of a revocation.
type RevokeReceipt struct {
	TransactionRef string
	AlreadyRevoked bool
}
