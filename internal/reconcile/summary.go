package reconcile

import (
    "math"
    "sort"

    "offerconsole/internal/models"
)

// Summarize aggregates sync state per provider and kind for the console
// overview. Rows come from Annotate, so the counts always reflect the
// last published catalog view against the current configured snapshot.
func Summarize(rows []models.CatalogRow) []models.SyncSummary {
    grouped := make(map[string][]models.CatalogRow)
    for _, row := range rows {
        key := row.Provider + "|" + string(row.Kind)
        grouped[key] = append(grouped[key], row)
    }

    var results []models.SyncSummary

    for _, group := range grouped {
        if len(group) == 0 {
            continue
        }

        summary := models.SyncSummary{
            Provider: group[0].Provider,
            Kind:     group[0].Kind,
            Visible:  len(group),
        }

        for _, row := range group {
            if !row.Sync.Configured {
                continue
            }
            summary.Synced++
            switch models.ConfiguredStatus(row.Sync.Status) {
            case models.StatusLive:
                summary.Live++
            case models.StatusPaused:
                summary.Paused++
            }
        }

        summary.SyncedShare = safeDivide(float64(summary.Synced), float64(summary.Visible))
        results = append(results, summary)
    }

    sort.Slice(results, func(i, j int) bool {
        if results[i].Provider != results[j].Provider {
            return results[i].Provider < results[j].Provider
        }
        return results[i].Kind < results[j].Kind
    })

    return results
}

func safeDivide(numerator, denominator float64) float64 {
    if denominator == 0 {
        return 0
    }
    result := numerator / denominator
    if math.IsNaN(result) || math.IsInf(result, 0) {
        return 0
    }
    return math.Round(result*1000) / 1000 // Round to 3 decimal places
}
