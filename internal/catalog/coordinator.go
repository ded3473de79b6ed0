package catalog

import (
    "context"
    "fmt"
    "sync"
    "time"

    "github.com/sirupsen/logrus"

    "offerconsole/internal/adapter"
    "offerconsole/internal/models"
    "offerconsole/internal/storage"
)

// ProviderAPI is the upstream offer source. Safe to call repeatedly with
// the same arguments.
type ProviderAPI interface {
    FetchCatalog(ctx context.Context, provider string, kind models.OfferKind, filters models.CatalogFilters) ([]models.RawOffer, error)
}

// Coordinator fetches a provider catalog for the current filter set and
// publishes the normalized result. Filter changes can fire fetches faster
// than the network answers, so every fetch captures a generation number
// at start; a result whose generation is no longer current is silently
// discarded. The last-started fetch always wins.
type Coordinator struct {
    mu         sync.Mutex
    generation uint64

    api    ProviderAPI
    store  *storage.SessionStore
    logger *logrus.Logger
}

func NewCoordinator(api ProviderAPI, store *storage.SessionStore, logger *logrus.Logger) *Coordinator {
    return &Coordinator{
        api:    api,
        store:  store,
        logger: logger,
    }
}

// Refresh fetches and publishes the catalog for one provider/kind/filter
// selection. A stale result (superseded by a later Refresh) is dropped
// without touching the store and without surfacing an error.
func (c *Coordinator) Refresh(ctx context.Context, provider string, kind models.OfferKind, filters models.CatalogFilters) error {
    c.mu.Lock()
    c.generation++
    myGeneration := c.generation
    c.mu.Unlock()

    raws, err := c.api.FetchCatalog(ctx, provider, kind, filters)
    if err != nil {
        c.logger.WithError(err).WithFields(logrus.Fields{
            "provider": provider,
            "kind":     kind,
        }).Error("Catalog fetch failed, keeping previous view")
        return fmt.Errorf("%w: %v", models.ErrFetchFailed, err)
    }

    offers := adapter.NormalizeAll(raws, provider, kind)

    c.mu.Lock()
    defer c.mu.Unlock()
    if myGeneration != c.generation {
        // A newer fetch started while this one was in flight.
        c.logger.WithFields(logrus.Fields{
            "provider":   provider,
            "generation": myGeneration,
            "current":    c.generation,
        }).Debug("Discarding stale catalog result")
        return nil
    }

    c.store.Publish(storage.CatalogView{
        Provider:  provider,
        Kind:      kind,
        Filters:   filters,
        Offers:    offers,
        FetchedAt: time.Now(),
    })

    c.logger.WithFields(logrus.Fields{
        "provider": provider,
        "kind":     kind,
        "records":  len(offers),
    }).Info("Published catalog view")

    return nil
}
