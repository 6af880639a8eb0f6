// Package cache provides a caching decorator for the backing store. Catalog
// reads are served from an in-process LRU (L1) and Redis (L2); writes
// invalidate both layers. Credential and partition operations pass through
// uncached.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
	"github.com/platinummonkey/orgmaster/pkg/storage"
)

// Store wraps an orgs.Store with L1/L2 caching of organization reads.
type Store struct {
	orgs.Store

	redis  *redis.Client
	l1     *lru.LRU[string, *orgs.Organization]
	ttl    time.Duration
	logger *observability.Logger
}

// New creates a caching store in front of inner. The Redis connection is
// verified before the decorator is returned.
func New(inner orgs.Store, config storage.Config, logger *observability.Logger) (*Store, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if config.RedisPassword != "" {
		opts.Password = config.RedisPassword
	}
	if config.RedisDB >= 0 {
		opts.DB = config.RedisDB
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{
		Store:  inner,
		redis:  client,
		l1:     lru.NewLRU[string, *orgs.Organization](config.L1CacheSize, nil, config.CacheTTL),
		ttl:    config.CacheTTL,
		logger: logger,
	}, nil
}

// GetOrganizationByName implements orgs.OrganizationStore with caching.
func (s *Store) GetOrganizationByName(ctx context.Context, name string) (*orgs.Organization, error) {
	return s.getCached(ctx, nameKey(name), func() (*orgs.Organization, error) {
		return s.Store.GetOrganizationByName(ctx, name)
	})
}

// GetOrganizationByID implements orgs.OrganizationStore with caching.
func (s *Store) GetOrganizationByID(ctx context.Context, id string) (*orgs.Organization, error) {
	return s.getCached(ctx, idKey(id), func() (*orgs.Organization, error) {
		return s.Store.GetOrganizationByID(ctx, id)
	})
}

// CreateOrganization implements orgs.OrganizationStore, invalidating any
// stale negative lookups for the new name.
func (s *Store) CreateOrganization(ctx context.Context, org *orgs.Organization) error {
	if err := s.Store.CreateOrganization(ctx, org); err != nil {
		return err
	}
	s.invalidate(ctx, org)
	return nil
}

// UpdateOrganization implements orgs.OrganizationStore. Both the previous
// and the new name keys are invalidated so a rename does not serve the
// old catalog record.
func (s *Store) UpdateOrganization(ctx context.Context, org *orgs.Organization) error {
	previous, err := s.Store.GetOrganizationByID(ctx, org.ID)
	if err := s.Store.UpdateOrganization(ctx, org); err != nil {
		return err
	}
	if err == nil && previous != nil {
		s.invalidate(ctx, previous)
	}
	s.invalidate(ctx, org)
	return nil
}

// DeleteOrganization implements orgs.OrganizationStore with invalidation.
func (s *Store) DeleteOrganization(ctx context.Context, id string) error {
	previous, lookupErr := s.Store.GetOrganizationByID(ctx, id)
	if err := s.Store.DeleteOrganization(ctx, id); err != nil {
		return err
	}
	if lookupErr == nil && previous != nil {
		s.invalidate(ctx, previous)
	}
	return nil
}

// Close implements orgs.Store, closing the Redis client and the inner
// store.
func (s *Store) Close() error {
	if err := s.redis.Close(); err != nil {
		s.logger.WithError(err).Warn("failed to close redis client")
	}
	return s.Store.Close()
}

func (s *Store) getCached(ctx context.Context, key string, load func() (*orgs.Organization, error)) (*orgs.Organization, error) {
	if org, ok := s.l1.Get(key); ok {
		cp := *org
		return &cp, nil
	}

	if data, err := s.redis.Get(ctx, key).Result(); err == nil {
		var org orgs.Organization
		if err := json.Unmarshal([]byte(data), &org); err == nil {
			s.l1.Add(key, &org)
			cp := org
			return &cp, nil
		}
		// Corrupt cache entry, drop it and fall through.
		s.redis.Del(ctx, key)
	}

	org, err := load()
	if err != nil {
		return nil, err
	}

	s.l1.Add(key, org)
	if data, err := json.Marshal(org); err == nil {
		if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.logger.WithError(err).Debug("failed to populate redis cache")
		}
	}

	cp := *org
	return &cp, nil
}

func (s *Store) invalidate(ctx context.Context, org *orgs.Organization) {
	keys := []string{nameKey(org.Name), idKey(org.ID)}
	for _, key := range keys {
		s.l1.Remove(key)
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.WithError(err).Debug("failed to invalidate redis cache")
	}
}

func nameKey(name string) string {
	return "org:name:" + name
}

func idKey(id string) string {
	return "org:id:" + id
}
