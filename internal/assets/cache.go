package assets

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/glyphscope/internal/store"
)

// CachedSource reads through a local cache. Fresh downloads are stored and a
// failed download falls back to a cached copy.
type CachedSource struct {
	Source Source
	Store  *store.Store
	// Refresh skips cache hits and always asks Source first.
	Refresh bool
}

// Fetch returns the cached body when present, otherwise fetches and stores it.
func (s CachedSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if !s.Refresh {
		entry, err := s.Store.GetAsset(ctx, name)
		if err == nil {
			tracer().Debugf("cache hit for %s", name)
			return entry.Body, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	data, err := s.Source.Fetch(ctx, name)
	if err != nil {
		if !s.Refresh {
			return nil, err
		}
		entry, cerr := s.Store.GetAsset(ctx, name)
		if cerr != nil {
			return nil, err
		}
		tracer().Infof("using cached %s after failed refresh: %v", name, err)
		return entry.Body, nil
	}
	if err := s.Store.PutAsset(ctx, name, data); err != nil {
		return nil, fmt.Errorf("failed to cache %s: %w", name, err)
	}
	return data, nil
}
