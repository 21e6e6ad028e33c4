package listing

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sasank-in/skin-disease/internal/metrics"
)

// Cached keeps successful lookups in redis. Cache errors never reach callers.
type Cached struct {
	next  Scraper
	redis *redis.Client
	ttl   time.Duration
}

func NewCached(next Scraper, client *redis.Client, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &Cached{next: next, redis: client, ttl: ttl}
}

func cacheKey(location string) string {
	return "listing:practo:" + Slug(location)
}

func (c *Cached) Clinics(ctx context.Context, location string) ([]Clinic, string) {
	key := cacheKey(location)
	value, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var clinics []Clinic
		if jerr := json.Unmarshal([]byte(value), &clinics); jerr == nil && len(clinics) > 0 {
			metrics.ListingFetches.WithLabelValues("cache_hit").Inc()
			return clinics, ""
		}
	case err != redis.Nil:
		log.Printf("listing cache get %s: %v", key, err)
	}

	clinics, note := c.next.Clinics(ctx, location)
	if len(clinics) == 0 {
		return clinics, note
	}
	if data, err := json.Marshal(clinics); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("listing cache set %s: %v", key, err)
		}
	}
	return clinics, note
}
