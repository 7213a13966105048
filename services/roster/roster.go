package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"playarena/models"
	"playarena/utils"

	"github.com/go-redis/redis/v8"
)

// Reader is the slice of the Redis client the roster needs. The auth
// cache client satisfies it; tests substitute a stub.
type Reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// DefaultRosterService reads the roster cached by the directory sync job.
type DefaultRosterService struct {
	Cache Reader
}

// NewDefaultRosterService constructs a roster validator over the auth cache.
func NewDefaultRosterService(cache Reader) *DefaultRosterService {
	return &DefaultRosterService{Cache: cache}
}

// All returns the full cached roster, failing closed if the cache is
// unreadable or the key is absent.
func (s *DefaultRosterService) All(ctx context.Context) ([]models.AuthUser, error) {
	raw, err := s.Cache.Get(ctx, utils.RosterKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: roster cache is empty", ErrRosterUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}

	var users []models.AuthUser
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("%w: corrupt roster payload: %v", ErrRosterUnavailable, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: roster cache is empty", ErrRosterUnavailable)
	}
	return users, nil
}

// ValidateAll checks that every attuid is present in the roster.
func (s *DefaultRosterService) ValidateAll(ctx context.Context, attuids []string) error {
	if len(attuids) == 0 {
		return fmt.Errorf("%w: no identities given", ErrUnknownIdentity)
	}

	users, err := s.All(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(users))
	for _, u := range users {
		known[u.ATTUID] = struct{}{}
	}
	for _, id := range attuids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownIdentity, id)
		}
	}
	return nil
}

// Lookup returns one roster entry from the per-user cache key.
func (s *DefaultRosterService) Lookup(ctx context.Context, attuid string) (*models.AuthUser, error) {
	raw, err := s.Cache.Get(ctx, utils.RosterUserPrefix+attuid).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIdentity, attuid)
		}
		return nil, fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}

	var user models.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("%w: corrupt roster entry: %v", ErrRosterUnavailable, err)
	}
	return &user, nil
}
