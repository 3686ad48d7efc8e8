package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherStampsEvents(t *testing.T) {
	p := NewPublisher(4, discardLogger())

	p.Emit(context.Background(), Event{
		Action:        ActionCertificateIssued,
		Identifier:    "0xabc",
		RecipientName: "John Doe",
	})

	select {
	case event := <-p.Inbox():
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
		assert.Equal(t, CategoryCompliance, event.Category)
		assert.Equal(t, "0xabc", event.Identifier)
	default:
		t.Fatal("expected event in inbox")
	}
}

func TestPublisherDropsWhenFull(t *testing.T) {
	p := NewPublisher(1, discardLogger())

	p.Emit(context.Background(), Event{Action: ActionCertificateIssued, Identifier: "first"})
	p.Emit(context.Background(), Event{Action: ActionCertificateIssued, Identifier: "second"})

	event := <-p.Inbox()
	assert.Equal(t, "first", event.Identifier)
	select {
	case leftover := <-p.Inbox():
		t.Fatalf("second event should have been dropped, got %q", leftover.Identifier)
	default:
	}
}

func TestWorkerPersistsUntilCancelled(t *testing.T) {
	p := NewPublisher(8, discardLogger())
	store := NewMemoryStore()
	worker := NewWorker(store, p.Inbox(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	p.Emit(ctx, Event{Action: ActionCertificateIssued, Identifier: "0x1"})
	p.Emit(ctx, Event{Action: ActionCertificateVerified, Identifier: "0x1"})
	p.Emit(ctx, Event{Action: ActionIssuanceRejected, Reason: "Event not found"})

	require.Eventually(t, func() bool {
		events, err := store.List(ctx)
		return err == nil && len(events) == 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	events, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionCertificateIssued, events[0].Action)
	assert.Equal(t, CategoryOperations, events[2].Category)
}

func TestCategoryOfUnknownActionDefaultsToOperations(t *testing.T) {
	assert.Equal(t, CategoryOperations, CategoryOf(Action("something_else")))
	assert.Equal(t, CategoryCompliance, CategoryOf(ActionCertificateRevoked))
}
