package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pclient "attestor/internal/platform/redis"
	"attestor/pkg/platform/sentinel"
)

// ValidationCache keeps recent eligibility answers in redis. Enrichment
// lookups during verification hit this first; the issuance precondition
// always goes to the store so a stale cache can never mint a certificate.
type ValidationCache struct {
	client *pclient.Client
	ttl    time.Duration
}

func NewValidationCache(client *pclient.Client, ttl time.Duration) *ValidationCache {
	return &ValidationCache{client: client, ttl: ttl}
}

func cacheKey(eventName, participantName string) string {
	// Unit separator keeps "a|b","c" distinct from "a","b|c".
	return fmt.Sprintf("oracle:validate:%s\x1f%s", eventName, participantName)
}

// Find returns a cached validation or sentinel.ErrNotFound on a miss.
func (c *ValidationCache) Find(ctx context.Context, eventName, participantName string) (Validation, error) {
	raw, err := c.client.Get(ctx, cacheKey(eventName, participantName)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return Validation{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Validation{}, fmt.Errorf("oracle cache get: %w", err)
	}
	var v Validation
	if err := json.Unmarshal(raw, &v); err != nil {
		return Validation{}, fmt.Errorf("oracle cache decode: %w", err)
	}
	return v, nil
}

// Save stores a validation under the configured TTL.
func (c *ValidationCache) Save(ctx context.Context, eventName, participantName string, v Validation) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("oracle cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(eventName, participantName), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("oracle cache set: %w", err)
	}
	return nil
}
