package adapter

import (
    "fmt"
    "hash/fnv"
    "sort"

    "offerconsole/internal/models"
    "offerconsole/internal/reward"
)

const untitledOffer = "Untitled Offer"

// Provider families the console sources offers from.
const (
    ProviderBitLabs  = "bitlabs"
    ProviderBesitos  = "besitos"
    ProviderEverflow = "everflow"
)

// providerChains carries the per-provider deviations from baseChains.
// Each adapter is the base resolution order with the provider's own
// field names tried first.
var providerChains = map[string]fieldChains{
    ProviderBitLabs: {
        Value:   []string{"total_points", "cpi", "value"},
        Minutes: []string{"loi", "estimated_time"},
        Country: []string{"country", "country_code"},
    },
    ProviderBesitos: {
        ID:    []string{"id", "offerId", "merchant_id", "product_id"},
        Value: []string{"total_points", "cashback_amount", "amount", "value"},
    },
    ProviderEverflow: {
        ID:    []string{"id", "networkOfferId", "network_offer_id", "offerId"},
        Value: []string{"payout", "epc", "value"},
    },
}

// chainsFor merges a provider's overrides onto the base chains. Unknown
// providers get the base order unchanged.
func chainsFor(provider string) fieldChains {
    chains := baseChains
    overrides, ok := providerChains[provider]
    if !ok {
        return chains
    }
    if len(overrides.ID) > 0 {
        chains.ID = overrides.ID
    }
    if len(overrides.Title) > 0 {
        chains.Title = overrides.Title
    }
    if len(overrides.Value) > 0 {
        chains.Value = overrides.Value
    }
    if len(overrides.Minutes) > 0 {
        chains.Minutes = overrides.Minutes
    }
    if len(overrides.Country) > 0 {
        chains.Country = overrides.Country
    }
    if len(overrides.Category) > 0 {
        chains.Category = overrides.Category
    }
    return chains
}

// Normalize maps one raw provider record into the canonical offer shape.
// It never fails: every canonical field has a fallback, and anything the
// chains did not consume is preserved in ProviderSpecific.
func Normalize(raw models.RawOffer, provider string, kind models.OfferKind) models.NormalizedOffer {
    chains := chainsFor(provider)
    r := newFieldReader(raw)

    id := r.firstString(chains.ID)
    if id == "" {
        id = syntheticID(provider, raw)
    }

    title := r.firstString(chains.Title)
    if title == "" {
        title = untitledOffer
    }

    category := r.firstCategory(chains.Category)
    if category == "" {
        category = kind.DefaultCategory()
    }

    rawValue, _ := r.firstNumber(chains.Value)
    if rawValue < 0 {
        rawValue = 0
    }

    var providedCoins, providedXP *int
    if n, ok := r.firstNumber(chains.Coins); ok {
        c := int(n)
        providedCoins = &c
    }
    if n, ok := r.firstNumber(chains.XP); ok {
        x := int(n)
        providedXP = &x
    }
    coins, xp := reward.Derive(rawValue, providedCoins, providedXP)

    minutes, _ := r.firstNumber(chains.Minutes)
    if minutes < 0 {
        minutes = 0
    }

    return models.NormalizedOffer{
        ID:               id,
        Kind:             kind,
        Title:            title,
        Description:      r.firstString(chains.Description),
        Provider:         provider,
        RawValue:         rawValue,
        RewardCoins:      coins,
        RewardXP:         xp,
        EstimatedMinutes: minutes,
        CountryCode:      r.firstString(chains.Country),
        Category:         category,
        Available:        r.firstBool(chains.Available, true),
        ProviderSpecific: r.leftovers(),
    }
}

// NormalizeAll maps a whole provider page.
func NormalizeAll(raws []models.RawOffer, provider string, kind models.OfferKind) []models.NormalizedOffer {
    offers := make([]models.NormalizedOffer, 0, len(raws))
    for _, raw := range raws {
        offers = append(offers, Normalize(raw, provider, kind))
    }
    return offers
}

// syntheticID is the last resort when every identifier candidate is
// missing: a stable hash of the record content, so the same payload maps
// to the same id on every fetch.
func syntheticID(provider string, raw models.RawOffer) string {
    keys := make([]string, 0, len(raw))
    for key := range raw {
        keys = append(keys, key)
    }
    sort.Strings(keys)

    h := fnv.New32a()
    h.Write([]byte(provider))
    for _, key := range keys {
        fmt.Fprintf(h, "|%s=%v", key, raw[key])
    }
    return fmt.Sprintf("%s-%08x", provider, h.Sum32())
}
