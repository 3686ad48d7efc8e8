package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attestor/pkg/platform/sentinel"
)

func TestMemoryStore_Lookups(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(SeedEvents(), SeedParticipants())
	require.NoError(t, err)

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	event, err := store.FindEventByName(ctx, "Programming Contest 2024")
	require.NoError(t, err)
	assert.Equal(t, int64(1), event.ID)
	assert.Equal(t, "Tech University", event.Organizer)

	_, err = store.FindEventByName(ctx, "Nonexistent Event")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	participant, err := store.FindParticipant(ctx, 1, "John Doe")
	require.NoError(t, err)
	assert.Equal(t, 1, participant.Rank)

	_, err = store.FindParticipant(ctx, 1, "Bob Johnson")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound),
		"participant of another event is not found here")

	participants, err := store.ListParticipants(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
}

func TestNewMemoryStore_RejectsAmbiguousSeeds(t *testing.T) {
	events := []Event{{ID: 1, Name: "Programming Contest 2024", Organizer: "Tech University"}}

	t.Run("duplicate participant", func(t *testing.T) {
		_, err := NewMemoryStore(events, []Participant{
			{EventID: 1, Name: "John Doe", Rank: 1},
			{EventID: 1, Name: "John Doe", Rank: 2},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous participant seed")
	})

	t.Run("duplicate event name", func(t *testing.T) {
		_, err := NewMemoryStore([]Event{
			{ID: 1, Name: "Programming Contest 2024"},
			{ID: 2, Name: "Programming Contest 2024"},
		}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate event name")
	})

	t.Run("non-positive rank", func(t *testing.T) {
		_, err := NewMemoryStore(events, []Participant{
			{EventID: 1, Name: "John Doe", Rank: 0},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rank")
	})
}

func TestMemoryStore_SameNameAcrossEventsIsAllowed(t *testing.T) {
	events := []Event{
		{ID: 1, Name: "Programming Contest 2024"},
		{ID: 2, Name: "Hackathon 2024"},
	}
	store, err := NewMemoryStore(events, []Participant{
		{EventID: 1, Name: "John Doe", Rank: 1},
		{EventID: 2, Name: "John Doe", Rank: 5},
	})
	require.NoError(t, err)

	p1, err := store.FindParticipant(context.Background(), 1, "John Doe")
	require.NoError(t, err)
	p2, err := store.FindParticipant(context.Background(), 2, "John Doe")
	require.NoError(t, err)
	assert.NotEqual(t, p1.Rank, p2.Rank)
}
