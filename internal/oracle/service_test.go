package oracle

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attestor/internal/platform/metrics"
)

var testMetrics = metrics.New()

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := NewMemoryStore(SeedEvents(), SeedParticipants())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, nil, logger, testMetrics)
}

func TestValidateEligibility(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	t.Run("eligible participant", func(t *testing.T) {
		v, err := svc.ValidateEligibility(ctx, "Programming Contest 2024", "John Doe")
		require.NoError(t, err)
		assert.True(t, v.Valid)
		assert.Empty(t, v.Reason)
		require.NotNil(t, v.Event)
		assert.Equal(t, int64(1), v.Event.ID)
		require.NotNil(t, v.Participant)
		assert.Equal(t, 1, v.Participant.Rank)
	})

	t.Run("unknown event", func(t *testing.T) {
		v, err := svc.ValidateEligibility(ctx, "Nonexistent Event", "Jane Roe")
		require.NoError(t, err, "a negative answer is not an error")
		assert.False(t, v.Valid)
		assert.Equal(t, ReasonEventNotFound, v.Reason)
		assert.Nil(t, v.Event)
	})

	t.Run("unknown participant", func(t *testing.T) {
		v, err := svc.ValidateEligibility(ctx, "Programming Contest 2024", "Jane Roe")
		require.NoError(t, err)
		assert.False(t, v.Valid)
		assert.Equal(t, ReasonParticipantNotFound, v.Reason)
		assert.NotNil(t, v.Event, "event context survives a participant miss")
	})

	t.Run("participant registered for a different event", func(t *testing.T) {
		v, err := svc.ValidateEligibility(ctx, "Programming Contest 2024", "Alice Brown")
		require.NoError(t, err)
		assert.False(t, v.Valid)
	})
}

func TestEnrichWithoutCacheReadsThrough(t *testing.T) {
	svc := newTestService(t)

	v, err := svc.Enrich(context.Background(), "Hackathon 2024", "Bob Johnson")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	require.NotNil(t, v.Participant)
	assert.Equal(t, 1, v.Participant.Rank)
}

func TestListParticipantsForUnknownEventIsEmpty(t *testing.T) {
	svc := newTestService(t)

	participants, err := svc.ListParticipants(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, participants)
}
