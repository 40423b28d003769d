package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

// CachedPoolPreview is the browse-facing projection of an available pool.
// Seat counts here are advisory: the purchase path never trusts them and
// always re-checks capacity inside the reservation transaction.
type CachedPoolPreview struct {
	PoolSID                string `json:"pool_sid"`
	CatalogPriceCents      int64  `json:"catalog_price_cents"`
	DiscountedMonthlyCents int64  `json:"discounted_monthly_cents"`
	SeatCap                int    `json:"seat_cap"`
	SeatsUsed              int    `json:"seats_used"`
	SeatsLeft              int    `json:"seats_left"`
	AccessType             string `json:"access_type"`
}

// CachedAvailability is the cached answer for one service's available pools
type CachedAvailability struct {
	Pools    []CachedPoolPreview `json:"pools"`
	NotFound bool                `json:"-"` // Null marker: service confirmed missing/inactive in DB
}

// PoolAvailabilityCache defines the interface for pool availability caching
type PoolAvailabilityCache interface {
	Get(ctx context.Context, serviceID uint) (*CachedAvailability, error)
	Set(ctx context.Context, serviceID uint, availability *CachedAvailability) error
	Invalidate(ctx context.Context, serviceID uint) error
	// SetNullMarker caches a short-lived marker indicating the service was not
	// found or inactive in DB, preventing repeated DB lookups (cache penetration
	// protection).
	SetNullMarker(ctx context.Context, serviceID uint) error
}

const (
	availabilityKeyPrefix = "catalog:availability:"

	// TTL tiers track how fast the cached answer can go stale. A service with
	// a nearly-full pool flips to unavailable on the next purchase, so its
	// entry must die quickly; a service with plenty of seats can live longer.
	availabilityTTLHigh    = 30 * time.Second
	availabilityTTLDefault = 2 * time.Minute
	availabilityTTLLow     = 10 * time.Minute
	availabilityTTLJitter  = 15 * time.Second // anti-stampede

	availabilityNullMarkerTTL = 2 * time.Minute
	nullMarkerPayload         = "_null"

	// A pool with this many seats left or fewer puts the whole service entry
	// in the high-churn tier.
	nearFullThreshold = 1
	// Every pool having at least this many seats left puts the entry in the
	// low-churn tier.
	plentyThreshold = 5
)

// RedisPoolAvailabilityCache implements PoolAvailabilityCache using Redis
type RedisPoolAvailabilityCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisPoolAvailabilityCache creates a new Redis-based pool availability cache
func NewRedisPoolAvailabilityCache(client *redis.Client, logger logger.Interface) *RedisPoolAvailabilityCache {
	return &RedisPoolAvailabilityCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisPoolAvailabilityCache) key(serviceID uint) string {
	return fmt.Sprintf("%s%d", availabilityKeyPrefix, serviceID)
}

// Get retrieves the cached availability for a service. Returns (nil, nil) on
// cache miss.
func (c *RedisPoolAvailabilityCache) Get(ctx context.Context, serviceID uint) (*CachedAvailability, error) {
	payload, err := c.client.Get(ctx, c.key(serviceID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability from cache: %w", err)
	}

	if payload == nullMarkerPayload {
		return &CachedAvailability{NotFound: true}, nil
	}

	var availability CachedAvailability
	if err := json.Unmarshal([]byte(payload), &availability); err != nil {
		// Treat a corrupt entry as a miss; it will be rewritten on the next fill.
		c.logger.Warnw("dropping corrupt availability cache entry",
			"service_id", serviceID,
			"error", err)
		return nil, nil
	}

	return &availability, nil
}

// Set stores the availability for a service, picking the TTL tier from how
// close the pools are to filling up.
func (c *RedisPoolAvailabilityCache) Set(ctx context.Context, serviceID uint, availability *CachedAvailability) error {
	payload, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}

	ttl := availabilityTTLWithJitter(tierTTL(availability.Pools))
	if err := c.client.Set(ctx, c.key(serviceID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set availability in cache: %w", err)
	}

	c.logger.Debugw("pool availability cached",
		"service_id", serviceID,
		"pool_count", len(availability.Pools),
		"ttl", ttl,
	)
	return nil
}

// Invalidate removes the cached availability for a service. Called after any
// write that changes seat counts or pool definitions.
func (c *RedisPoolAvailabilityCache) Invalidate(ctx context.Context, serviceID uint) error {
	if err := c.client.Del(ctx, c.key(serviceID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate availability cache: %w", err)
	}

	c.logger.Debugw("pool availability cache invalidated", "service_id", serviceID)
	return nil
}

// SetNullMarker stores a short-lived marker for a missing or inactive service
func (c *RedisPoolAvailabilityCache) SetNullMarker(ctx context.Context, serviceID uint) error {
	if err := c.client.Set(ctx, c.key(serviceID), nullMarkerPayload, availabilityNullMarkerTTL).Err(); err != nil {
		return fmt.Errorf("failed to set availability null marker: %w", err)
	}

	c.logger.Debugw("pool availability null marker set",
		"service_id", serviceID,
		"ttl", availabilityNullMarkerTTL,
	)
	return nil
}

// tierTTL maps the tightest pool in the list to a TTL tier.
func tierTTL(pools []CachedPoolPreview) time.Duration {
	if len(pools) == 0 {
		return availabilityTTLDefault
	}

	minLeft := pools[0].SeatsLeft
	for _, p := range pools[1:] {
		if p.SeatsLeft < minLeft {
			minLeft = p.SeatsLeft
		}
	}

	switch {
	case minLeft <= nearFullThreshold:
		return availabilityTTLHigh
	case minLeft >= plentyThreshold:
		return availabilityTTLLow
	default:
		return availabilityTTLDefault
	}
}

// availabilityTTLWithJitter randomizes the TTL to prevent cache stampede.
func availabilityTTLWithJitter(base time.Duration) time.Duration {
	jitter := time.Duration(rand.Int64N(int64(availabilityTTLJitter)))
	return base + jitter
}
