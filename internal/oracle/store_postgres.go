package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"attestor/pkg/platform/sentinel"
)

// PostgresStore reads oracle data from PostgreSQL. The unique index on
// (event_id, participant_name) enforces at the schema level what
// NewMemoryStore enforces at load time.
type PostgresStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS oracle_events (
	id        BIGINT PRIMARY KEY,
	name      TEXT NOT NULL UNIQUE,
	organizer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS oracle_participants (
	event_id         BIGINT NOT NULL REFERENCES oracle_events(id),
	participant_name TEXT NOT NULL,
	rank             INT NOT NULL CHECK (rank >= 1),
	UNIQUE (event_id, participant_name)
);
`

// NewPostgresStore opens the connection and ensures the schema exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open oracle db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping oracle db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure oracle schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, organizer FROM oracle_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Organizer); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *PostgresStore) FindEventByName(ctx context.Context, name string) (Event, error) {
	var e Event
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, organizer FROM oracle_events WHERE name = $1`, name,
	).Scan(&e.ID, &e.Name, &e.Organizer)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Event{}, fmt.Errorf("find event: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) FindParticipant(ctx context.Context, eventID int64, name string) (Participant, error) {
	var p Participant
	err := s.db.QueryRowContext(ctx,
		`SELECT event_id, participant_name, rank FROM oracle_participants
		 WHERE event_id = $1 AND participant_name = $2`, eventID, name,
	).Scan(&p.EventID, &p.Name, &p.Rank)
	if errors.Is(err, sql.ErrNoRows) {
		return Participant{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Participant{}, fmt.Errorf("find participant: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListParticipants(ctx context.Context, eventID int64) ([]Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, participant_name, rank FROM oracle_participants
		 WHERE event_id = $1 ORDER BY rank`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.EventID, &p.Name, &p.Rank); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// Seed inserts the given dataset, skipping rows that already exist. Used by
// dev tooling; production data is managed externally.
func (s *PostgresStore) Seed(ctx context.Context, events []Event, participants []Participant) error {
	for _, e := range events {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO oracle_events (id, name, organizer) VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO NOTHING`, e.ID, e.Name, e.Organizer); err != nil {
			return fmt.Errorf("seed event %q: %w", e.Name, err)
		}
	}
	for _, p := range participants {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO oracle_participants (event_id, participant_name, rank) VALUES ($1, $2, $3)
			 ON CONFLICT (event_id, participant_name) DO NOTHING`, p.EventID, p.Name, p.Rank); err != nil {
			return fmt.Errorf("seed participant %q: %w", p.Name, err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
