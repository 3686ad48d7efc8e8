package oracle

import (
	"context"
	"errors"
	"log/slog"

	"attestor/internal/platform/metrics"
	"attestor/pkg/platform/sentinel"
)

// Reasons reported on a failed validation. Stable strings: callers and the
// HTTP surface expose them verbatim.
const (
	ReasonEventNotFound       = "Event not found"
	ReasonParticipantNotFound = "Participant not found in event records"
)

// Service answers eligibility questions from the injected store. Pure
// lookups, no side effects, safe for unlimited concurrent reads.
type Service struct {
	store   Store
	cache   *ValidationCache
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService builds the oracle. cache may be nil (redis not configured).
func NewService(store Store, cache *ValidationCache, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, cache: cache, logger: logger, metrics: m}
}

// ListEvents returns all known events.
func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	return s.store.ListEvents(ctx)
}

// ListParticipants returns the ranked participants for one event.
func (s *Service) ListParticipants(ctx context.Context, eventID int64) ([]Participant, error) {
	return s.store.ListParticipants(ctx, eventID)
}

// ValidateEligibility reports whether participantName holds a record for
// eventName. Always reads through to the store: this is the issuance
// precondition and must never be answered from a stale cache.
func (s *Service) ValidateEligibility(ctx context.Context, eventName, participantName string) (Validation, error) {
	event, err := s.store.FindEventByName(ctx, eventName)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Validation{Valid: false, Reason: ReasonEventNotFound}, nil
	}
	if err != nil {
		return Validation{}, err
	}

	participant, err := s.store.FindParticipant(ctx, event.ID, participantName)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Validation{Valid: false, Reason: ReasonParticipantNotFound, Event: &event}, nil
	}
	if err != nil {
		return Validation{}, err
	}

	return Validation{Valid: true, Event: &event, Participant: &participant}, nil
}

// Enrich is ValidateEligibility for informational re-checks during
// verification. It may serve a cached answer within the TTL; cache failures
// degrade to a store read.
func (s *Service) Enrich(ctx context.Context, eventName, participantName string) (Validation, error) {
	if s.cache != nil {
		cached, err := s.cache.Find(ctx, eventName, participantName)
		switch {
		case err == nil:
			s.metrics.OracleCacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		case !errors.Is(err, sentinel.ErrNotFound):
			s.logger.WarnContext(ctx, "oracle cache read failed", "error", err)
		}
		s.metrics.OracleCacheHits.WithLabelValues("miss").Inc()
	}

	v, err := s.ValidateEligibility(ctx, eventName, participantName)
	if err != nil {
		return Validation{}, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, eventName, participantName, v); err != nil {
			s.logger.WarnContext(ctx, "oracle cache write failed", "error", err)
		}
	}
	return v, nil
}
