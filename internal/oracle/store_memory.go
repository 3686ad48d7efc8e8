package oracle

import (
	"context"
	"fmt"
	"sync"

	"attestor/pkg/platform/sentinel"
)

// MemoryStore holds the seed dataset. Reads are lock-free after construction
// apart from the RWMutex kept for future reload support.
type MemoryStore struct {
	mu           sync.RWMutex
	events       []Event
	eventsByName map[string]Event
	participants map[int64][]Participant
}

// NewMemoryStore builds a store from seed data. A duplicate (eventID, name)
// participant pair is rejected outright: first-match lookups over ambiguous
// seeds would silently pick a rank, so bad seeds fail at load time instead.
func NewMemoryStore(events []Event, participants []Participant) (*MemoryStore, error) {
	s := &MemoryStore{
		events:       append([]Event{}, events...),
		eventsByName: make(map[string]Event, len(events)),
		participants: make(map[int64][]Participant),
	}
	for _, e := range events {
		if _, exists := s.eventsByName[e.Name]; exists {
			return nil, fmt.Errorf("duplicate event name in seed: %q", e.Name)
		}
		s.eventsByName[e.Name] = e
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		key := fmt.Sprintf("%d|%s", p.EventID, p.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("ambiguous participant seed: %q appears twice for event %d", p.Name, p.EventID)
		}
		if p.Rank < 1 {
			return nil, fmt.Errorf("participant %q has non-positive rank %d", p.Name, p.Rank)
		}
		seen[key] = struct{}{}
		s.participants[p.EventID] = append(s.participants[p.EventID], p)
	}
	return s, nil
}

func (s *MemoryStore) ListEvents(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...), nil
}

func (s *MemoryStore) FindEventByName(_ context.Context, name string) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.eventsByName[name]
	if !ok {
		return Event{}, sentinel.ErrNotFound
	}
	return event, nil
}

func (s *MemoryStore) FindParticipant(_ context.Context, eventID int64, name string) (Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants[eventID] {
		if p.Name == name {
			return p, nil
		}
	}
	return Participant{}, sentinel.ErrNotFound
}

func (s *MemoryStore) ListParticipants(_ context.Context, eventID int64) ([]Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Participant{}, s.participants[eventID]...), nil
}
