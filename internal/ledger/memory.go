package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"attestor/pkg/platform/sentinel"
)

type status int

const (
	statusIssued status = iota
	statusRevoked
)

type entry struct {
	recipientName string
	eventName     string
	issueDate     string
	issuer        string
	status        status
	issueTxRef    string
	revokeTxRef   string
	blockNumber   uint64
}

// MemoryLedger is the in-process registry used in dev mode and tests.
// Appends confirm immediately, so submission and confirmation coincide.
// Entries are never deleted; revocation only flips the status flag.
type MemoryLedger struct {
	mu     sync.Mutex
	issuer string
	nonce  uint64
	height uint64
	certs  map[string]*entry
}

// NewMemoryLedger builds an empty chain. issuer is the account recorded on
// every certificate this ledger mints.
func NewMemoryLedger(issuer string) *MemoryLedger {
	return &MemoryLedger{
		issuer: issuer,
		certs:  make(map[string]*entry),
	}
}

func (l *MemoryLedger) Issue(_ context.Context, recipientName, eventName, issueDate string) (IssueReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nonce++
	l.height++
	identifier := certificateDigest(recipientName, eventName, issueDate, l.issuer, l.nonce)
	if _, exists := l.certs[identifier]; exists {
		return IssueReceipt{}, fmt.Errorf("issue: identifier collision: %w", sentinel.ErrConflict)
	}

	txRef := newTxRef()
	l.certs[identifier] = &entry{
		recipientName: recipientName,
		eventName:     eventName,
		issueDate:     issueDate,
		issuer:        l.issuer,
		status:        statusIssued,
		issueTxRef:    txRef,
		blockNumber:   l.height,
	}
	return IssueReceipt{
		Identifier:     identifier,
		Issuer:         l.issuer,
		TransactionRef: txRef,
		BlockNumber:    l.height,
	}, nil
}

func (l *MemoryLedger) Verify(_ context.Context, identifier string) (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.certs[identifier]
	if !ok {
		return Record{IsValid: false}, nil
	}
	return Record{
		RecipientName: e.recipientName,
		EventName:     e.eventName,
		IssueDate:     e.issueDate,
		Issuer:        e.issuer,
		IsValid:       e.status == statusIssued,
	}, nil
}

func (l *MemoryLedger) Revoke(_ context.Context, identifier string) (RevokeReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.certs[identifier]
	if !ok {
		return RevokeReceipt{}, fmt.Errorf("revoke %s: %w", identifier, sentinel.ErrNotFound)
	}
	if e.status == statusRevoked {
		return RevokeReceipt{TransactionRef: e.revokeTxRef, AlreadyRevoked: true}, nil
	}

	l.height++
	e.status = statusRevoked
	e.revokeTxRef = newTxRef()
	return RevokeReceipt{TransactionRef: e.revokeTxRef}, nil
}

// Size reports how many certificates have ever been appended. Test hook for
// asserting that rejected issuances leave the chain untouched.
func (l *MemoryLedger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.certs)
}

func newTxRef() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))
	return "0x" + hex.EncodeToString(sum[:])
}
