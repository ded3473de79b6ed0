package models

import (
    "time"
)

// OfferKind classifies a normalized offer.
type OfferKind string

const (
    KindSurvey       OfferKind = "survey"
    KindCashback     OfferKind = "cashback"
    KindShopping     OfferKind = "shopping"
    KindMagicReceipt OfferKind = "magic_receipt"
    KindOther        OfferKind = "other"
)

// DefaultCategory returns the category label used when a provider
// payload carries no usable category field.
func (k OfferKind) DefaultCategory() string {
    switch k {
    case KindSurvey:
        return "Survey"
    case KindCashback:
        return "Cashback"
    case KindShopping:
        return "Shopping"
    case KindMagicReceipt:
        return "Magic Receipt"
    default:
        return "Offer"
    }
}

// RawOffer is one upstream provider record exactly as decoded from the
// provider response. Field names vary per provider; adapters read it,
// nothing mutates it.
type RawOffer map[string]interface{}

// NormalizedOffer is the canonical provider-agnostic offer shape used by
// everything downstream of the adapters.
type NormalizedOffer struct {
    ID               string                 `json:"id"`
    Kind             OfferKind              `json:"kind"`
    Title            string                 `json:"title"`
    Description      string                 `json:"description"`
    Provider         string                 `json:"provider"`
    RawValue         float64                `json:"raw_value"`
    RewardCoins      int                    `json:"user_reward_coins"`
    RewardXP         int                    `json:"user_reward_xp"`
    EstimatedMinutes float64                `json:"estimated_time_minutes"`
    CountryCode      string                 `json:"country_code"`
    Category         string                 `json:"category"`
    Available        bool                   `json:"is_available"`
    ProviderSpecific map[string]interface{} `json:"provider_specific,omitempty"`
}

// ConfiguredStatus is the lifecycle status of a persisted configured offer.
type ConfiguredStatus string

const (
    StatusLive   ConfiguredStatus = "live"
    StatusPaused ConfiguredStatus = "paused"
)

// ConfiguredOffer is a persisted record marking an offer as exposed to end
// users. Historical records were written under more than one identifier
// convention, which is why ExternalID and the legacy OfferID both exist;
// the reconciler tries them in priority order.
type ConfiguredOffer struct {
    ConfiguredID   string           `json:"configured_id"`
    ExternalID     string           `json:"external_id"`
    OfferID        string           `json:"offer_id,omitempty"`
    Kind           OfferKind        `json:"kind"`
    Status         ConfiguredStatus `json:"status"`
    TargetAudience TargetAudience   `json:"target_audience"`
    RewardCoins    int              `json:"reward_coins,omitempty"`
    CreatedAt      time.Time        `json:"created_at"`
}

// TargetAudience is the age/gender filter attached to a configured offer.
// An empty or complete selection for a dimension is stored as ["all"].
type TargetAudience struct {
    Age    []string `json:"age"`
    Gender []string `json:"gender"`
}

// SyncState is the derived per-row view of whether a normalized offer is
// currently configured. Never persisted.
type SyncState struct {
    Configured   bool   `json:"configured"`
    ConfiguredID string `json:"configured_id,omitempty"`
    Status       string `json:"status,omitempty"`
}

// PendingActionKind distinguishes the gesture that created a pending sync.
type PendingActionKind string

const (
    PendingSingle       PendingActionKind = "single"
    PendingSelectedMany PendingActionKind = "selected_many"
    PendingAllVisible   PendingActionKind = "all_visible"
)

// PendingSyncAction lives only between "user requested sync" and the
// audience confirmation (or cancellation). It is consumed exactly once.
type PendingSyncAction struct {
    Kind      PendingActionKind `json:"kind"`
    OfferIDs  []string          `json:"offer_ids"`
    OfferKind OfferKind         `json:"offer_kind"`
}

// CatalogFilters are the operator-selected filters for a catalog fetch.
// Page is a pass-through to the provider API.
type CatalogFilters struct {
    Country string `json:"country,omitempty"`
    Device  string `json:"device,omitempty"`
    Type    string `json:"type,omitempty"`
    Page    int    `json:"page,omitempty"`
}

// CatalogRow is one rendered row: the normalized offer plus its sync state.
type CatalogRow struct {
    NormalizedOffer
    Sync SyncState `json:"sync"`
}

// SyncSummary aggregates sync state per provider and kind for the console
// overview.
type SyncSummary struct {
    Provider    string    `json:"provider"`
    Kind        OfferKind `json:"kind"`
    Visible     int       `json:"visible"`
    Synced      int       `json:"synced"`
    Live        int       `json:"live"`
    Paused      int       `json:"paused"`
    SyncedShare float64   `json:"synced_share"`
}

// CreateConfiguredRequest is the payload for a single create/sync call.
type CreateConfiguredRequest struct {
    OfferID        string         `json:"offer_id"`
    OfferKind      OfferKind      `json:"offer_kind"`
    Filters        CatalogFilters `json:"filters"`
    TargetAudience TargetAudience `json:"target_audience"`
    IdempotencyKey string         `json:"idempotency_key"`
}

// BulkCreateRequest is the payload for a batched create/sync call. The
// confirmed audience applies identically to every offer id in the batch.
type BulkCreateRequest struct {
    OfferIDs       []string       `json:"offer_ids"`
    OfferKind      OfferKind      `json:"offer_kind"`
    Filters        CatalogFilters `json:"filters"`
    TargetAudience TargetAudience `json:"target_audience"`
    IdempotencyKey string         `json:"idempotency_key"`
}

// Provider response envelopes.
type CatalogResponse struct {
    Offers []RawOffer `json:"offers"`
}

type ConfiguredOffersResponse struct {
    Offers []ConfiguredOffer `json:"offers"`
}

// Console API shapes.
type CatalogListResponse struct {
    Provider  string         `json:"provider"`
    Kind      OfferKind      `json:"kind"`
    Filters   CatalogFilters `json:"filters"`
    Rows      []CatalogRow   `json:"rows"`
    Total     int            `json:"total"`
    FetchedAt string         `json:"fetched_at"`
}

type ConfirmSyncRequest struct {
    Ages    []string `json:"ages"`
    Genders []string `json:"genders"`
}

type BulkSyncRequest struct {
    Kind     PendingActionKind `json:"kind"`
    OfferIDs []string          `json:"offer_ids"`
}

type UpdateRewardRequest struct {
    Coins int `json:"coins"`
}
