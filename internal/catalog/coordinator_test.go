package catalog

import (
    "context"
    "errors"
    "io"
    "testing"
    "time"

    "github.com/sirupsen/logrus"

    "offerconsole/internal/models"
    "offerconsole/internal/storage"
)

func testLogger() *logrus.Logger {
    logger := logrus.New()
    logger.SetOutput(io.Discard)
    return logger
}

// gatedCall lets a test control exactly when a fetch enters and resolves,
// so resolve order can be forced independently of start order.
type gatedCall struct {
    entered chan struct{}
    release chan struct{}
    offers  []models.RawOffer
    err     error
}

func newGatedCall(offers []models.RawOffer, err error) *gatedCall {
    return &gatedCall{
        entered: make(chan struct{}),
        release: make(chan struct{}),
        offers:  offers,
        err:     err,
    }
}

// gatedAPI routes each fetch to the gate keyed by the country filter.
type gatedAPI struct {
    calls map[string]*gatedCall
}

func (a *gatedAPI) FetchCatalog(ctx context.Context, provider string, kind models.OfferKind, filters models.CatalogFilters) ([]models.RawOffer, error) {
    call := a.calls[filters.Country]
    close(call.entered)
    <-call.release
    return call.offers, call.err
}

func TestRefresh_StaleFetchDiscarded(t *testing.T) {
    callA := newGatedCall([]models.RawOffer{{"id": "a1", "title": "From fetch A"}}, nil)
    callB := newGatedCall([]models.RawOffer{{"id": "b1", "title": "From fetch B"}}, nil)
    api := &gatedAPI{calls: map[string]*gatedCall{"us": callA, "de": callB}}

    store := storage.NewSessionStore()
    coordinator := NewCoordinator(api, store, testLogger())

    errA := make(chan error, 1)
    errB := make(chan error, 1)

    // Fetch A starts first and captures the older generation.
    go func() {
        errA <- coordinator.Refresh(context.Background(), "bitlabs", models.KindSurvey, models.CatalogFilters{Country: "us"})
    }()
    <-callA.entered

    // Fetch B starts while A is still in flight.
    go func() {
        errB <- coordinator.Refresh(context.Background(), "bitlabs", models.KindSurvey, models.CatalogFilters{Country: "de"})
    }()
    <-callB.entered

    // B resolves first and publishes.
    close(callB.release)
    if err := <-errB; err != nil {
        t.Fatalf("Fetch B failed: %v", err)
    }

    // A resolves late; its result must be dropped silently.
    close(callA.release)
    if err := <-errA; err != nil {
        t.Fatalf("Expected stale fetch to be discarded without error, got %v", err)
    }

    offers := store.Offers()
    if len(offers) != 1 {
        t.Fatalf("Expected 1 offer, got %d", len(offers))
    }
    if offers[0].ID != "b1" {
        t.Errorf("Expected fetch B's result to win, got offer %q", offers[0].ID)
    }
}

func TestRefresh_PublishesNormalizedView(t *testing.T) {
    call := newGatedCall([]models.RawOffer{
        {"id": "7", "merchant_name": "Acme", "total_points": "500"},
    }, nil)
    close(call.release) // resolve immediately
    api := &gatedAPI{calls: map[string]*gatedCall{"": call}}

    store := storage.NewSessionStore()
    coordinator := NewCoordinator(api, store, testLogger())

    if err := coordinator.Refresh(context.Background(), "bitlabs", models.KindCashback, models.CatalogFilters{}); err != nil {
        t.Fatalf("Refresh failed: %v", err)
    }

    view := store.View()
    if view.Provider != "bitlabs" || view.Kind != models.KindCashback {
        t.Errorf("Unexpected view selection: %s/%s", view.Provider, view.Kind)
    }
    if len(view.Offers) != 1 {
        t.Fatalf("Expected 1 offer, got %d", len(view.Offers))
    }
    if view.Offers[0].RewardCoins != 100 {
        t.Errorf("Expected normalization to run (100 coins), got %d", view.Offers[0].RewardCoins)
    }
    if view.FetchedAt.IsZero() || time.Since(view.FetchedAt) > time.Minute {
        t.Errorf("Expected a fresh FetchedAt, got %v", view.FetchedAt)
    }
}

func TestRefresh_FetchFailureKeepsPreviousView(t *testing.T) {
    good := newGatedCall([]models.RawOffer{{"id": "1", "title": "Keep me"}}, nil)
    close(good.release)
    bad := newGatedCall(nil, errors.New("connection refused"))
    close(bad.release)
    api := &gatedAPI{calls: map[string]*gatedCall{"us": good, "de": bad}}

    store := storage.NewSessionStore()
    coordinator := NewCoordinator(api, store, testLogger())

    if err := coordinator.Refresh(context.Background(), "bitlabs", models.KindSurvey, models.CatalogFilters{Country: "us"}); err != nil {
        t.Fatalf("First refresh failed: %v", err)
    }

    err := coordinator.Refresh(context.Background(), "bitlabs", models.KindSurvey, models.CatalogFilters{Country: "de"})
    if err == nil {
        t.Fatal("Expected an error from the failing fetch")
    }
    if !errors.Is(err, models.ErrFetchFailed) {
        t.Errorf("Expected ErrFetchFailed, got %v", err)
    }

    offers := store.Offers()
    if len(offers) != 1 || offers[0].ID != "1" {
        t.Errorf("Expected previous view untouched after failure, got %+v", offers)
    }
}
