package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attestor/pkg/platform/sentinel"
)

const testIssuer = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"

func TestMemoryLedger_IssueVerifyRevokeLifecycle(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger(testIssuer)

	receipt, err := l.Issue(ctx, "John Doe", "Programming Contest 2024", "2024-06-01")
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Identifier)
	assert.Equal(t, testIssuer, receipt.Issuer)
	assert.NotEmpty(t, receipt.TransactionRef)
	assert.Equal(t, uint64(1), receipt.BlockNumber)

	record, err := l.Verify(ctx, receipt.Identifier)
	require.NoError(t, err)
	assert.True(t, record.IsValid)
	assert.Equal(t, "John Doe", record.RecipientName)
	assert.Equal(t, "Programming Contest 2024", record.EventName)
	assert.Equal(t, "2024-06-01", record.IssueDate)
	assert.Equal(t, testIssuer, record.Issuer)

	revocation, err := l.Revoke(ctx, receipt.Identifier)
	require.NoError(t, err)
	assert.NotEmpty(t, revocation.TransactionRef)
	assert.False(t, revocation.AlreadyRevoked)

	record, err = l.Verify(ctx, receipt.Identifier)
	require.NoError(t, err)
	assert.False(t, record.IsValid, "revocation is terminal")
	assert.Equal(t, "John Doe", record.RecipientName, "record survives revocation for auditability")
}

func TestMemoryLedger_VerifyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger(testIssuer)

	receipt, err := l.Issue(ctx, "Jane Smith", "Programming Contest 2024", "2024-06-01")
	require.NoError(t, err)

	first, err := l.Verify(ctx, receipt.Identifier)
	require.NoError(t, err)
	second, err := l.Verify(ctx, receipt.Identifier)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMemoryLedger_VerifyUnknownIdentifier(t *testing.T) {
	l := NewMemoryLedger(testIssuer)

	record, err := l.Verify(context.Background(), "0x0000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err, "unknown identifier is a negative answer, not an error")
	assert.False(t, record.IsValid)
	assert.Empty(t, record.RecipientName)
}

func TestMemoryLedger_RevokeUnknownIdentifierFails(t *testing.T) {
	l := NewMemoryLedger(testIssuer)

	_, err := l.Revoke(context.Background(), "0xmissing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestMemoryLedger_DoubleRevokeIsNoOp(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger(testIssuer)

	receipt, err := l.Issue(ctx, "Bob Johnson", "Hackathon 2024", "2024-06-01")
	require.NoError(t, err)

	first, err := l.Revoke(ctx, receipt.Identifier)
	require.NoError(t, err)
	second, err := l.Revoke(ctx, receipt.Identifier)
	require.NoError(t, err)

	assert.True(t, second.AlreadyRevoked)
	assert.Equal(t, first.TransactionRef, second.TransactionRef,
		"no new transaction on a second revoke")

	record, err := l.Verify(ctx, receipt.Identifier)
	require.NoError(t, err)
	assert.False(t, record.IsValid)
}

func TestMemoryLedger_IdenticalContentGetsDistinctIdentifiers(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger(testIssuer)

	first, err := l.Issue(ctx, "John Doe", "Programming Contest 2024", "2024-06-01")
	require.NoError(t, err)
	second, err := l.Issue(ctx, "John Doe", "Programming Contest 2024", "2024-06-01")
	require.NoError(t, err)

	assert.NotEqual(t, first.Identifier, second.Identifier,
		"issuance nonce keeps identical content from colliding")
	assert.Equal(t, 2, l.Size())
}

func TestCertificateDigest(t *testing.T) {
	base := certificateDigest("John Doe", "Programming Contest 2024", "2024-06-01", testIssuer, 1)

	assert.Len(t, base, 66, "0x prefix plus 64 hex chars")
	assert.Equal(t, base,
		certificateDigest("John Doe", "Programming Contest 2024", "2024-06-01", testIssuer, 1),
		"deterministic for identical input")
	assert.NotEqual(t, base,
		certificateDigest("John Doe", "Programming Contest 2024", "2024-06-01", testIssuer, 2),
		"nonce participates in the digest")
	assert.NotEqual(t,
		certificateDigest("ab", "c", "d", "e", 1),
		certificateDigest("a", "bc", "d", "e", 1),
		"length prefixing keeps field boundaries distinct")
}
