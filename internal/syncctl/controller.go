package syncctl

import (
    "context"
    "fmt"
    "sync"

    "github.com/google/uuid"
    "github.com/sirupsen/logrus"

    "offerconsole/internal/audience"
    "offerconsole/internal/models"
    "offerconsole/internal/reconcile"
)

// Backend is the opaque persistence service behind the console. The
// controller guarantees one call per confirmed gesture; the idempotency
// key on create requests lets the backend dedupe beyond that.
type Backend interface {
    FetchConfiguredOffers(ctx context.Context, kind, status string) ([]models.ConfiguredOffer, error)
    CreateConfiguredOffer(ctx context.Context, req models.CreateConfiguredRequest) (models.ConfiguredOffer, error)
    CreateConfiguredOffers(ctx context.Context, req models.BulkCreateRequest) ([]models.ConfiguredOffer, error)
    DeleteConfiguredOffer(ctx context.Context, configuredID string) error
    UpdateConfiguredOfferReward(ctx context.Context, configuredID string, coins int) (models.ConfiguredOffer, error)
}

// Controller turns toggle gestures into at most one create-or-delete call
// each. Per offer id: while a request is in flight the id sits in the
// in-flight set and any further gesture for it is ignored, which is what
// makes double-clicks and duplicate submits safe. Toggling on always
// passes through a pending action awaiting the audience confirmation;
// toggling off deletes immediately.
//
// All state is owned here, per session. No globals.
type Controller struct {
    mu       sync.Mutex
    inflight map[string]struct{}
    pending  *models.PendingSyncAction

    backend  Backend
    snapshot *SnapshotStore
    logger   *logrus.Logger
}

func NewController(backend Backend, snapshot *SnapshotStore, logger *logrus.Logger) *Controller {
    return &Controller{
        inflight: make(map[string]struct{}),
        backend:  backend,
        snapshot: snapshot,
        logger:   logger,
    }
}

// tryAcquire adds an id to the in-flight set. Returns false when the id
// already has a request in flight.
func (c *Controller) tryAcquire(id string) bool {
    c.mu.Lock()
    defer c.mu.Unlock()

    if _, busy := c.inflight[id]; busy {
        return false
    }
    c.inflight[id] = struct{}{}
    return true
}

// release always runs in a defer so the in-flight set never leaks an id,
// whatever the request outcome.
func (c *Controller) release(ids ...string) {
    c.mu.Lock()
    defer c.mu.Unlock()

    for _, id := range ids {
        delete(c.inflight, id)
    }
}

// InFlight reports whether an offer id currently has a request in flight.
func (c *Controller) InFlight(id string) bool {
    c.mu.Lock()
    defer c.mu.Unlock()

    _, busy := c.inflight[id]
    return busy
}

// Pending returns the action awaiting audience confirmation, if any.
func (c *Controller) Pending() *models.PendingSyncAction {
    c.mu.Lock()
    defer c.mu.Unlock()

    if c.pending == nil {
        return nil
    }
    p := *c.pending
    return &p
}

// BeginSync handles the toggle-on gesture for one offer. No network call
// is made here: the transition is to AwaitingAudience, represented by the
// pending action the confirmation will consume. A nil action with nil
// error means the gesture was ignored (request in flight, or the offer is
// already configured).
func (c *Controller) BeginSync(ctx context.Context, offerID string, kind models.OfferKind) (*models.PendingSyncAction, error) {
    if c.InFlight(offerID) {
        c.logger.WithField("offer_id", offerID).Debug("Toggle ignored, request in flight")
        return nil, nil
    }

    set, err := c.snapshot.Snapshot(ctx)
    if err != nil {
        return nil, err
    }
    if reconcile.IsConfigured(offerID, set) {
        c.logger.WithField("offer_id", offerID).Debug("Toggle ignored, offer already configured")
        return nil, nil
    }

    return c.setPending(models.PendingSyncAction{
        Kind:      models.PendingSingle,
        OfferIDs:  []string{offerID},
        OfferKind: kind,
    }), nil
}

// BeginBulk handles the sync-selected and sync-all-visible gestures.
// Already-configured ids are dropped from the batch; if nothing is left
// the gesture is ignored.
func (c *Controller) BeginBulk(ctx context.Context, actionKind models.PendingActionKind, offerIDs []string, kind models.OfferKind) (*models.PendingSyncAction, error) {
    set, err := c.snapshot.Snapshot(ctx)
    if err != nil {
        return nil, err
    }

    remaining := make([]string, 0, len(offerIDs))
    for _, id := range offerIDs {
        if c.InFlight(id) || reconcile.IsConfigured(id, set) {
            continue
        }
        remaining = append(remaining, id)
    }
    if len(remaining) == 0 {
        c.logger.Debug("Bulk sync ignored, nothing to configure")
        return nil, nil
    }

    return c.setPending(models.PendingSyncAction{
        Kind:      actionKind,
        OfferIDs:  remaining,
        OfferKind: kind,
    }), nil
}

func (c *Controller) setPending(action models.PendingSyncAction) *models.PendingSyncAction {
    c.mu.Lock()
    defer c.mu.Unlock()

    c.pending = &action
    p := action
    return &p
}

// Cancel discards the pending action without any network call. Returns
// false when nothing was pending.
func (c *Controller) Cancel() bool {
    c.mu.Lock()
    defer c.mu.Unlock()

    had := c.pending != nil
    c.pending = nil
    return had
}

// Confirm consumes the pending action exactly once, builds the target
// audience from the raw selections and issues a single create call (one
// batched call for bulk actions), then refetches the configured set so
// displayed state comes from backend truth rather than an optimistic
// flip. The pending action is gone after this call whatever the outcome.
func (c *Controller) Confirm(ctx context.Context, selectedAges, selectedGenders []string, filters models.CatalogFilters) error {
    c.mu.Lock()
    action := c.pending
    c.pending = nil
    c.mu.Unlock()

    if action == nil {
        return models.ErrNoPendingAction
    }

    target := audience.BuildDefault(selectedAges, selectedGenders)

    // Ids that picked up an in-flight request since the action was
    // created are dropped, same as a duplicate toggle.
    acquired := make([]string, 0, len(action.OfferIDs))
    for _, id := range action.OfferIDs {
        if c.tryAcquire(id) {
            acquired = append(acquired, id)
        }
    }
    if len(acquired) == 0 {
        c.logger.Debug("Sync confirmation ignored, all offers busy")
        return nil
    }
    defer c.release(acquired...)

    key := uuid.NewString()

    var err error
    if action.Kind == models.PendingSingle && len(acquired) == 1 {
        _, err = c.backend.CreateConfiguredOffer(ctx, models.CreateConfiguredRequest{
            OfferID:        acquired[0],
            OfferKind:      action.OfferKind,
            Filters:        filters,
            TargetAudience: target,
            IdempotencyKey: key,
        })
    } else {
        _, err = c.backend.CreateConfiguredOffers(ctx, models.BulkCreateRequest{
            OfferIDs:       acquired,
            OfferKind:      action.OfferKind,
            Filters:        filters,
            TargetAudience: target,
            IdempotencyKey: key,
        })
    }
    if err != nil {
        c.logger.WithError(err).WithField("offer_ids", acquired).Error("Sync call failed")
        return fmt.Errorf("%w: %v", models.ErrSyncFailed, err)
    }

    c.refreshAfterMutation(ctx)

    c.logger.WithFields(logrus.Fields{
        "offer_ids": acquired,
        "kind":      action.OfferKind,
        "audience":  target,
    }).Info("Offers configured")

    return nil
}

// Unsync handles the toggle-off gesture: resolve the persisted record for
// the offer id and issue one delete. There is no confirmation step. The
// returned bool is false when the gesture was ignored because a request
// for the id is already in flight, so callers can report the no-op
// instead of claiming a delete happened.
func (c *Controller) Unsync(ctx context.Context, offerID string) (bool, error) {
    if !c.tryAcquire(offerID) {
        c.logger.WithField("offer_id", offerID).Debug("Unsync ignored, request in flight")
        return false, nil
    }
    defer c.release(offerID)

    set, err := c.snapshot.Snapshot(ctx)
    if err != nil {
        return false, err
    }

    configured := reconcile.Resolve(offerID, set)
    if configured == nil {
        // Shown as configured but no record resolves; leave it visible
        // rather than guessing a key to delete.
        c.logger.WithField("offer_id", offerID).Error("No configured record resolves for offer")
        return false, fmt.Errorf("%w: offer %s", models.ErrReconciliation, offerID)
    }

    if err := c.backend.DeleteConfiguredOffer(ctx, configured.ConfiguredID); err != nil {
        c.logger.WithError(err).WithField("configured_id", configured.ConfiguredID).Error("Unsync call failed")
        return false, fmt.Errorf("%w: %v", models.ErrUnsyncFailed, err)
    }

    c.refreshAfterMutation(ctx)

    c.logger.WithFields(logrus.Fields{
        "offer_id":      offerID,
        "configured_id": configured.ConfiguredID,
    }).Info("Offer unconfigured")

    return true, nil
}

// UpdateReward changes the coin value on a live configured offer, under
// the same in-flight-lock discipline as sync/unsync. The returned bool
// is false when the gesture was ignored because an update for the id is
// already in flight.
func (c *Controller) UpdateReward(ctx context.Context, configuredID string, coins int) (bool, error) {
    if !c.tryAcquire(configuredID) {
        c.logger.WithField("configured_id", configuredID).Debug("Reward update ignored, request in flight")
        return false, nil
    }
    defer c.release(configuredID)

    if _, err := c.backend.UpdateConfiguredOfferReward(ctx, configuredID, coins); err != nil {
        c.logger.WithError(err).WithField("configured_id", configuredID).Error("Reward update failed")
        return false, fmt.Errorf("%w: %v", models.ErrSyncFailed, err)
    }

    c.refreshAfterMutation(ctx)
    return true, nil
}

// refreshAfterMutation refetches the configured set after a successful
// write. A failed refresh does not fail the gesture: the cache entry is
// already invalidated, so the next read fetches fresh state.
func (c *Controller) refreshAfterMutation(ctx context.Context) {
    if _, err := c.snapshot.Refresh(ctx); err != nil {
        c.logger.WithError(err).Warn("Configured set refresh failed after mutation")
    }
}
