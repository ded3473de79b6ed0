package handlers

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/sirupsen/logrus"
    "golang.org/x/sync/errgroup"

    "offerconsole/internal/catalog"
    "offerconsole/internal/models"
    "offerconsole/internal/reconcile"
    "offerconsole/internal/storage"
    "offerconsole/internal/syncctl"
)

type Handler struct {
    coordinator *catalog.Coordinator
    store       *storage.SessionStore
    snapshot    *syncctl.SnapshotStore
    controller  *syncctl.Controller
    logger      *logrus.Logger
}

func New(coordinator *catalog.Coordinator, store *storage.SessionStore,
    snapshot *syncctl.SnapshotStore, controller *syncctl.Controller,
    logger *logrus.Logger) *Handler {
    return &Handler{
        coordinator: coordinator,
        store:       store,
        snapshot:    snapshot,
        controller:  controller,
        logger:      logger,
    }
}

func (h *Handler) HealthCheck(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{
        "status":    "ok",
        "timestamp": time.Now().Format(time.RFC3339),
        "service":   "offerconsole",
    })
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
    if h.store.HasData() {
        c.JSON(http.StatusOK, gin.H{
            "status":     "ready",
            "has_data":   true,
            "last_fetch": h.store.LastFetchTime().Format(time.RFC3339),
        })
    } else {
        c.JSON(http.StatusServiceUnavailable, gin.H{
            "status":   "not ready",
            "has_data": false,
            "message":  "No catalog fetched yet",
        })
    }
}

// GetCatalog fetches the live catalog for the selected provider and
// filters, reconciles it against the configured set and returns the
// annotated rows. The provider fetch and the configured-set read run
// concurrently; they hit independent upstreams. On a fetch failure the
// previously displayed view is kept and the error surfaces as a
// transient message.
func (h *Handler) GetCatalog(c *gin.Context) {
    provider := c.Query("provider")
    if provider == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "provider parameter is required"})
        return
    }

    kind := models.OfferKind(c.DefaultQuery("kind", string(models.KindSurvey)))
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    filters := models.CatalogFilters{
        Country: c.Query("country"),
        Device:  c.Query("device"),
        Type:    c.Query("type"),
        Page:    page,
    }

    var set []models.ConfiguredOffer
    g, ctx := errgroup.WithContext(c.Request.Context())
    g.Go(func() error {
        return h.coordinator.Refresh(ctx, provider, kind, filters)
    })
    g.Go(func() error {
        var err error
        set, err = h.snapshot.Snapshot(ctx)
        return err
    })
    if err := g.Wait(); err != nil {
        h.logger.WithError(err).Error("Catalog refresh failed")
        c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch catalog data"})
        return
    }

    view := h.store.View()
    rows := reconcile.Annotate(view.Offers, set)

    c.JSON(http.StatusOK, models.CatalogListResponse{
        Provider:  view.Provider,
        Kind:      view.Kind,
        Filters:   view.Filters,
        Rows:      rows,
        Total:     len(rows),
        FetchedAt: view.FetchedAt.Format(time.RFC3339),
    })
}

// GetSummary aggregates sync state for the current catalog view.
func (h *Handler) GetSummary(c *gin.Context) {
    if !h.store.HasData() {
        c.JSON(http.StatusNotFound, gin.H{"error": "No catalog view available. Fetch a catalog first."})
        return
    }

    set, err := h.snapshot.Snapshot(c.Request.Context())
    if err != nil {
        h.logger.WithError(err).Error("Failed to fetch configured offers")
        c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch configured offers"})
        return
    }

    rows := reconcile.Annotate(h.store.Offers(), set)
    c.JSON(http.StatusOK, gin.H{"summary": reconcile.Summarize(rows)})
}

// BeginSync handles the toggle-on gesture. No persistence call happens
// here; the response tells the UI to open the audience dialog.
func (h *Handler) BeginSync(c *gin.Context) {
    offerID := c.Param("id")
    view := h.store.View()

    pending, err := h.controller.BeginSync(c.Request.Context(), offerID, view.Kind)
    if err != nil {
        h.renderError(c, err)
        return
    }
    if pending == nil {
        c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "status":  "awaiting_audience",
        "pending": pending,
    })
}

// BeginBulkSync handles the sync-selected and sync-all-visible gestures.
func (h *Handler) BeginBulkSync(c *gin.Context) {
    var req models.BulkSyncRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
        return
    }

    offerIDs := req.OfferIDs
    actionKind := req.Kind
    switch actionKind {
    case models.PendingAllVisible:
        offerIDs = h.store.VisibleIDs()
    case models.PendingSelectedMany:
        if len(offerIDs) == 0 {
            c.JSON(http.StatusBadRequest, gin.H{"error": "offer_ids is required"})
            return
        }
    default:
        c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be selected_many or all_visible"})
        return
    }

    view := h.store.View()
    pending, err := h.controller.BeginBulk(c.Request.Context(), actionKind, offerIDs, view.Kind)
    if err != nil {
        h.renderError(c, err)
        return
    }
    if pending == nil {
        c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "status":  "awaiting_audience",
        "pending": pending,
    })
}

// ConfirmSync consumes the pending action with the confirmed audience
// selection: one create call, then a configured-set refresh.
func (h *Handler) ConfirmSync(c *gin.Context) {
    var req models.ConfirmSyncRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
        return
    }

    filters := h.store.View().Filters
    if err := h.controller.Confirm(c.Request.Context(), req.Ages, req.Genders, filters); err != nil {
        h.renderError(c, err)
        return
    }

    c.JSON(http.StatusOK, gin.H{"status": "synced"})
}

// CancelSync discards the pending action. No network call is made.
func (h *Handler) CancelSync(c *gin.Context) {
    cancelled := h.controller.Cancel()
    c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

// Unsync handles the toggle-off gesture: one delete call keyed by the
// resolved configured id, then a refresh. A gesture ignored because a
// request for the id is in flight replies 202, not a claimed delete.
func (h *Handler) Unsync(c *gin.Context) {
    offerID := c.Param("id")
    handled, err := h.controller.Unsync(c.Request.Context(), offerID)
    if err != nil {
        h.renderError(c, err)
        return
    }
    if !handled {
        c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "unsynced"})
}

// UpdateReward edits the coin value on a configured offer.
func (h *Handler) UpdateReward(c *gin.Context) {
    configuredID := c.Param("configuredId")

    var req models.UpdateRewardRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
        return
    }
    if req.Coins < 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "coins cannot be negative"})
        return
    }

    handled, err := h.controller.UpdateReward(c.Request.Context(), configuredID, req.Coins)
    if err != nil {
        h.renderError(c, err)
        return
    }
    if !handled {
        c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) renderError(c *gin.Context, err error) {
    switch {
    case errors.Is(err, models.ErrNoPendingAction):
        c.JSON(http.StatusConflict, gin.H{"error": "No sync action awaiting confirmation"})
    case errors.Is(err, models.ErrReconciliation):
        c.JSON(http.StatusConflict, gin.H{"error": "Offer appears configured but no record could be resolved"})
    case errors.Is(err, models.ErrSyncFailed):
        c.JSON(http.StatusBadGateway, gin.H{"error": "Sync call failed, offer left unchanged"})
    case errors.Is(err, models.ErrUnsyncFailed):
        c.JSON(http.StatusBadGateway, gin.H{"error": "Unsync call failed, offer left unchanged"})
    case errors.Is(err, models.ErrFetchFailed):
        c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch configured offers"})
    default:
        h.logger.WithError(err).Error("Unhandled engine error")
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
    }
}
