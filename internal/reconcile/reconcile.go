package reconcile

import (
    "encoding/json"
    "strconv"
    "strings"

    "offerconsole/internal/models"
)

// Matching against the configured set is tolerant because historical
// records were written under different identifier conventions. The input
// id is compared, after string coercion, against each record's
// external_id, then offer_id, then configured_id. First match in that
// priority order wins.

// IsConfigured reports whether an offer id has a configured record.
func IsConfigured(offerID interface{}, set []models.ConfiguredOffer) bool {
    return Resolve(offerID, set) != nil
}

// Resolve returns the configured record matching an offer id, or nil.
func Resolve(offerID interface{}, set []models.ConfiguredOffer) *models.ConfiguredOffer {
    id := CoerceID(offerID)
    if id == "" {
        return nil
    }

    candidates := []func(models.ConfiguredOffer) string{
        func(c models.ConfiguredOffer) string { return c.ExternalID },
        func(c models.ConfiguredOffer) string { return c.OfferID },
        func(c models.ConfiguredOffer) string { return c.ConfiguredID },
    }

    for _, field := range candidates {
        for i := range set {
            if field(set[i]) == id {
                return &set[i]
            }
        }
    }
    return nil
}

// StateFor derives the per-row sync view for an offer id.
func StateFor(offerID string, set []models.ConfiguredOffer) models.SyncState {
    configured := Resolve(offerID, set)
    if configured == nil {
        return models.SyncState{}
    }
    return models.SyncState{
        Configured:   true,
        ConfiguredID: configured.ConfiguredID,
        Status:       string(configured.Status),
    }
}

// Annotate attaches sync state to every normalized offer in a view.
func Annotate(offers []models.NormalizedOffer, set []models.ConfiguredOffer) []models.CatalogRow {
    rows := make([]models.CatalogRow, 0, len(offers))
    for _, offer := range offers {
        rows = append(rows, models.CatalogRow{
            NormalizedOffer: offer,
            Sync:            StateFor(offer.ID, set),
        })
    }
    return rows
}

// CoerceID stringifies an identifier of any wire type. Comparison is
// always string equality, never numeric, so "42" matches 42 but "043"
// does not.
func CoerceID(v interface{}) string {
    switch val := v.(type) {
    case string:
        return strings.TrimSpace(val)
    case float64:
        return strconv.FormatFloat(val, 'f', -1, 64)
    case int:
        return strconv.Itoa(val)
    case int64:
        return strconv.FormatInt(val, 10)
    case json.Number:
        return val.String()
    default:
        return ""
    }
}
