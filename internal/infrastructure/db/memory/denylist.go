package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

var revokedMarker = []byte{1}

// Denylist records revoked token IDs in a bigcache instance. bigcache evicts
// on a single global life window, so entries live for maxTTL regardless of
// the ttl passed to Revoke; maxTTL should be the token TTL.
type Denylist struct {
	cache *bigcache.BigCache
}

func NewDenylist(maxTTL time.Duration) (*Denylist, error) {
	cfg := bigcache.DefaultConfig(maxTTL)
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 10000
	cfg.MaxEntrySize = 64
	cfg.CleanWindow = time.Minute
	cfg.Verbose = false

	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("denylist cache: %w", err)
	}
	return &Denylist{cache: cache}, nil
}

func (d *Denylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.cache.Set(tokenID, revokedMarker)
}

func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	buf, err := d.cache.Get(tokenID)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return false, nil
		}
		return false, err
	}
	return len(buf) > 0 && buf[0] == 1, nil
}

func (d *Denylist) Close() error {
	return d.cache.Close()
}
