package oracle

import "context"

// Store is the read-only lookup behind the oracle. Interface-driven so the
// static seed dataset can be swapped for postgres without rewiring the
// service. Implementations return sentinel.ErrNotFound for missing records.
type Store interface {
	ListEvents(ctx context.Context) ([]Event, error)
	FindEventByName(ctx context.Context, name string) (Event, error)
	FindParticipant(ctx context.Context, eventID int64, name string) (Participant, error)
	ListParticipants(ctx context.Context, eventID int64) ([]Participant, error)
}
