package reconcile

import (
    "testing"

    "offerconsole/internal/models"
)

func configuredSet() []models.ConfiguredOffer {
    return []models.ConfiguredOffer{
        {
            ConfiguredID: "cfg-1",
            ExternalID:   "42",
            Kind:         models.KindSurvey,
            Status:       models.StatusLive,
        },
        {
            ConfiguredID: "cfg-2",
            OfferID:      "legacy-7", // historical record, no external_id
            Kind:         models.KindCashback,
            Status:       models.StatusPaused,
        },
    }
}

func TestIsConfigured_StringAndNumericInput(t *testing.T) {
    set := configuredSet()

    if !IsConfigured("42", set) {
        t.Error("Expected string \"42\" to match external_id 42")
    }
    if !IsConfigured(42, set) {
        t.Error("Expected numeric 42 to match external_id \"42\"")
    }
    if !IsConfigured(float64(42), set) {
        t.Error("Expected float 42 to match external_id \"42\"")
    }
    if IsConfigured("043", set) {
        t.Error("Expected \"043\" not to match \"42\": comparison is string equality, never numeric")
    }
}

func TestResolve_FieldPriorityOrder(t *testing.T) {
    set := []models.ConfiguredOffer{
        {ConfiguredID: "55", ExternalID: "a"},
        {ConfiguredID: "cfg-x", OfferID: "55", ExternalID: "b"},
        {ConfiguredID: "cfg-y", ExternalID: "55"},
    }

    // external_id outranks offer_id outranks configured_id.
    resolved := Resolve("55", set)
    if resolved == nil {
        t.Fatal("Expected a match")
    }
    if resolved.ConfiguredID != "cfg-y" {
        t.Errorf("Expected external_id match cfg-y to win, got %s", resolved.ConfiguredID)
    }
}

func TestResolve_LegacyOfferIDField(t *testing.T) {
    resolved := Resolve("legacy-7", configuredSet())
    if resolved == nil {
        t.Fatal("Expected legacy offer_id record to resolve")
    }
    if resolved.ConfiguredID != "cfg-2" {
        t.Errorf("Expected cfg-2, got %s", resolved.ConfiguredID)
    }
}

func TestResolve_NoMatch(t *testing.T) {
    if resolved := Resolve("missing", configuredSet()); resolved != nil {
        t.Errorf("Expected nil for unknown id, got %+v", resolved)
    }
    if resolved := Resolve("", configuredSet()); resolved != nil {
        t.Errorf("Expected nil for empty id, got %+v", resolved)
    }
    if resolved := Resolve(nil, configuredSet()); resolved != nil {
        t.Errorf("Expected nil for nil id, got %+v", resolved)
    }
}

func TestStateFor(t *testing.T) {
    set := configuredSet()

    state := StateFor("42", set)
    if !state.Configured {
        t.Fatal("Expected configured state")
    }
    if state.ConfiguredID != "cfg-1" {
        t.Errorf("Expected cfg-1, got %s", state.ConfiguredID)
    }
    if state.Status != "live" {
        t.Errorf("Expected live, got %s", state.Status)
    }

    unknown := StateFor("nope", set)
    if unknown.Configured || unknown.ConfiguredID != "" {
        t.Errorf("Expected empty state for unknown id, got %+v", unknown)
    }
}

func TestAnnotate(t *testing.T) {
    offers := []models.NormalizedOffer{
        {ID: "42", Provider: "bitlabs", Kind: models.KindSurvey},
        {ID: "100", Provider: "bitlabs", Kind: models.KindSurvey},
    }

    rows := Annotate(offers, configuredSet())
    if len(rows) != 2 {
        t.Fatalf("Expected 2 rows, got %d", len(rows))
    }
    if !rows[0].Sync.Configured {
        t.Error("Expected offer 42 to be marked configured")
    }
    if rows[1].Sync.Configured {
        t.Error("Expected offer 100 to be marked not configured")
    }
}

func TestSummarize(t *testing.T) {
    rows := []models.CatalogRow{
        {NormalizedOffer: models.NormalizedOffer{ID: "1", Provider: "bitlabs", Kind: models.KindSurvey},
            Sync: models.SyncState{Configured: true, Status: "live"}},
        {NormalizedOffer: models.NormalizedOffer{ID: "2", Provider: "bitlabs", Kind: models.KindSurvey},
            Sync: models.SyncState{Configured: true, Status: "paused"}},
        {NormalizedOffer: models.NormalizedOffer{ID: "3", Provider: "bitlabs", Kind: models.KindSurvey}},
        {NormalizedOffer: models.NormalizedOffer{ID: "4", Provider: "bitlabs", Kind: models.KindSurvey}},
        {NormalizedOffer: models.NormalizedOffer{ID: "5", Provider: "everflow", Kind: models.KindOther}},
    }

    summaries := Summarize(rows)
    if len(summaries) != 2 {
        t.Fatalf("Expected 2 summary groups, got %d", len(summaries))
    }

    bitlabs := summaries[0]
    if bitlabs.Provider != "bitlabs" {
        t.Fatalf("Expected bitlabs first after sorting, got %s", bitlabs.Provider)
    }
    if bitlabs.Visible != 4 || bitlabs.Synced != 2 || bitlabs.Live != 1 || bitlabs.Paused != 1 {
        t.Errorf("Unexpected bitlabs counts: %+v", bitlabs)
    }
    if bitlabs.SyncedShare != 0.5 {
        t.Errorf("Expected synced share 0.5, got %v", bitlabs.SyncedShare)
    }

    everflow := summaries[1]
    if everflow.Visible != 1 || everflow.Synced != 0 || everflow.SyncedShare != 0 {
        t.Errorf("Unexpected everflow counts: %+v", everflow)
    }
}

func TestCoerceID(t *testing.T) {
    cases := []struct {
        in   interface{}
        want string
    }{
        {"abc", "abc"},
        {" abc ", "abc"},
        {42, "42"},
        {float64(42), "42"},
        {float64(42.5), "42.5"},
        {int64(9), "9"},
        {nil, ""},
        {true, ""},
    }

    for _, tc := range cases {
        if got := CoerceID(tc.in); got != tc.want {
            t.Errorf("CoerceID(%v) = %q, want %q", tc.in, got, tc.want)
        }
    }
}
