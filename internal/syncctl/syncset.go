package syncctl

import (
    "context"
    "fmt"
    "time"

    "github.com/sirupsen/logrus"
    "golang.org/x/sync/singleflight"

    "offerconsole/internal/cache"
    "offerconsole/internal/models"
)

const snapshotKey = "configured:snapshot"

// SnapshotStore holds the session's view of the configured-offer set. It
// is a read-mostly cache over the backend: reads serve the cached
// snapshot, every mutation path invalidates and refetches. The snapshot
// is never mutated in place, which keeps displayed state and backend
// truth from drifting apart.
type SnapshotStore struct {
    backend Backend
    cache   cache.Cache
    ttl     time.Duration
    group   singleflight.Group
    logger  *logrus.Logger
}

func NewSnapshotStore(backend Backend, c cache.Cache, ttl time.Duration, logger *logrus.Logger) *SnapshotStore {
    return &SnapshotStore{
        backend: backend,
        cache:   c,
        ttl:     ttl,
        logger:  logger,
    }
}

// Snapshot returns the configured-offer set, fetching from the backend on
// a cache miss. Concurrent misses collapse into a single backend call.
func (s *SnapshotStore) Snapshot(ctx context.Context) ([]models.ConfiguredOffer, error) {
    var set []models.ConfiguredOffer
    if err := cache.GetJSON(ctx, s.cache, snapshotKey, &set); err == nil {
        return set, nil
    }

    v, err, _ := s.group.Do(snapshotKey, func() (interface{}, error) {
        return s.fetchAndStore(ctx)
    })
    if err != nil {
        return nil, err
    }
    return v.([]models.ConfiguredOffer), nil
}

// Refresh drops the cached snapshot and refetches from the backend. Each
// completed mutation triggers its own refresh; refreshes are deliberately
// not coalesced so the snapshot always reflects the newest completed one.
func (s *SnapshotStore) Refresh(ctx context.Context) ([]models.ConfiguredOffer, error) {
    if err := s.cache.Delete(ctx, snapshotKey); err != nil {
        s.logger.WithError(err).Warn("Failed to invalidate configured snapshot")
    }
    return s.fetchAndStore(ctx)
}

func (s *SnapshotStore) fetchAndStore(ctx context.Context) ([]models.ConfiguredOffer, error) {
    set, err := s.backend.FetchConfiguredOffers(ctx, "", "")
    if err != nil {
        return nil, fmt.Errorf("%w: configured set: %v", models.ErrFetchFailed, err)
    }

    if err := cache.SetJSON(ctx, s.cache, snapshotKey, set, s.ttl); err != nil {
        s.logger.WithError(err).Warn("Failed to cache configured snapshot")
    }

    s.logger.WithField("records", len(set)).Debug("Refreshed configured snapshot")
    return set, nil
}
