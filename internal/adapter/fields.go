package adapter

import (
    "encoding/json"
    "strconv"
    "strings"

    "offerconsole/internal/models"
)

// Field fallback chains are kept as data so the resolution order is
// testable in isolation instead of living in inline conditionals.
type fieldChains struct {
    ID          []string
    Title       []string
    Description []string
    Value       []string
    Coins       []string
    XP          []string
    Minutes     []string
    Country     []string
    Category    []string
    Available   []string
}

// baseChains is the documented resolution order shared by every provider.
// Identifier: id -> surveyId/offerId -> merchant_id/product_id -> networkOfferId.
// Title: title -> name -> anchor -> product_name -> merchant_name.
var baseChains = fieldChains{
    ID:          []string{"id", "surveyId", "offerId", "merchant_id", "product_id", "networkOfferId"},
    Title:       []string{"title", "name", "anchor", "product_name", "merchant_name"},
    Description: []string{"description", "details", "summary"},
    Value:       []string{"total_points", "cpi", "payout", "amount", "value"},
    Coins:       []string{"user_reward_coins", "coins"},
    XP:          []string{"user_reward_xp", "xp"},
    Minutes:     []string{"loi", "estimated_time", "time_to_complete"},
    Country:     []string{"country", "country_code", "geo"},
    Category:    []string{"category", "categories", "vertical"},
    Available:   []string{"is_available", "available", "is_active", "enabled"},
}

// fieldReader reads canonical values out of a raw record while tracking
// which keys were consumed, so everything else can be preserved verbatim
// in ProviderSpecific.
type fieldReader struct {
    raw      models.RawOffer
    consumed map[string]bool
}

func newFieldReader(raw models.RawOffer) *fieldReader {
    return &fieldReader{
        raw:      raw,
        consumed: make(map[string]bool),
    }
}

// firstString walks the chain and returns the first key holding a
// non-empty string (numbers are stringified, never compared numerically).
func (r *fieldReader) firstString(chain []string) string {
    for _, key := range chain {
        v, ok := r.raw[key]
        if !ok {
            continue
        }
        s := asString(v)
        if s == "" {
            continue
        }
        r.consumed[key] = true
        return s
    }
    return ""
}

// firstNumber walks the chain and returns the first key holding a
// parseable number. Non-numeric input is skipped, never NaN.
func (r *fieldReader) firstNumber(chain []string) (float64, bool) {
    for _, key := range chain {
        v, ok := r.raw[key]
        if !ok {
            continue
        }
        n, parsed := asNumber(v)
        if !parsed {
            continue
        }
        r.consumed[key] = true
        return n, true
    }
    return 0, false
}

// firstCategory unwraps either a plain string or the first element of a
// category list.
func (r *fieldReader) firstCategory(chain []string) string {
    for _, key := range chain {
        v, ok := r.raw[key]
        if !ok {
            continue
        }
        switch val := v.(type) {
        case string:
            if s := strings.TrimSpace(val); s != "" {
                r.consumed[key] = true
                return s
            }
        case []interface{}:
            if len(val) > 0 {
                if s := asString(val[0]); s != "" {
                    r.consumed[key] = true
                    return s
                }
            }
        case []string:
            if len(val) > 0 && strings.TrimSpace(val[0]) != "" {
                r.consumed[key] = true
                return strings.TrimSpace(val[0])
            }
        }
    }
    return ""
}

// firstBool walks the chain for an availability flag. Defaults to true
// when no provider supplies one.
func (r *fieldReader) firstBool(chain []string, fallback bool) bool {
    for _, key := range chain {
        v, ok := r.raw[key]
        if !ok {
            continue
        }
        switch val := v.(type) {
        case bool:
            r.consumed[key] = true
            return val
        case string:
            s := strings.ToLower(strings.TrimSpace(val))
            if s == "true" || s == "1" || s == "yes" {
                r.consumed[key] = true
                return true
            }
            if s == "false" || s == "0" || s == "no" {
                r.consumed[key] = true
                return false
            }
        case float64:
            r.consumed[key] = true
            return val != 0
        }
    }
    return fallback
}

// leftovers returns every raw key the reader did not consume.
func (r *fieldReader) leftovers() map[string]interface{} {
    rest := make(map[string]interface{})
    for key, v := range r.raw {
        if !r.consumed[key] {
            rest[key] = v
        }
    }
    if len(rest) == 0 {
        return nil
    }
    return rest
}

func asString(v interface{}) string {
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

func asNumber(v interface{}) (float64, bool) {
    switch val := v.(type) {
    case float64:
        return val, true
    case int:
        return float64(val), true
    case int64:
        return float64(val), true
    case json.Number:
        f, err := val.Float64()
        if err != nil {
            return 0, false
        }
        return f, true
    case string:
        f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
        if err != nil {
            return 0, false
        }
        return f, true
    default:
        return 0, false
    }
}
