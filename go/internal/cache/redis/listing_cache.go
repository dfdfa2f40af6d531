package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/mcdev12/transfermarket/go/internal/transfer"
	"github.com/redis/go-redis/v9"
)

// DefaultListingTTL bounds how long a listing read may be served from cache
const DefaultListingTTL = 5 * time.Minute

// ListingCache stores listings as JSON strings under listing:{id}
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListingCache creates a ListingCache. A non-positive ttl uses DefaultListingTTL.
func NewListingCache(c *Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{rdb: c.rdb, ttl: ttl}
}

func listingKey(id uuid.UUID) string { return "listing:" + id.String() }

// GetListing returns the cached listing, or false on a miss
func (lc *ListingCache) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, bool, error) {
	data, err := lc.rdb.Get(ctx, listingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis: get listing %s: %w", id, err)
	}

	var listing models.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, false, fmt.Errorf("redis: unmarshal listing %s: %w", id, err)
	}
	return &listing, true, nil
}

// SetListing caches listing until the TTL expires or it is invalidated
func (lc *ListingCache) SetListing(ctx context.Context, listing *models.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("redis: marshal listing %s: %w", listing.ID, err)
	}
	if err := lc.rdb.Set(ctx, listingKey(listing.ID), data, lc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set listing %s: %w", listing.ID, err)
	}
	return nil
}

// InvalidateListing drops the cached listing
func (lc *ListingCache) InvalidateListing(ctx context.Context, id uuid.UUID) error {
	if err := lc.rdb.Del(ctx, listingKey(id)).Err(); err != nil {
		return fmt.Errorf("redis: invalidate listing %s: %w", id, err)
	}
	return nil
}

var _ transfer.ListingCache = (*ListingCache)(nil)
