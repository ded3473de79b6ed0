package audience

import (
    "offerconsole/internal/models"
)

// Wildcard is the stored value meaning "no restriction" for a dimension.
const Wildcard = "all"

// Default age and gender options presented by the console. Callers may
// pass their own option sets to Build.
var (
    AgeOptions    = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}
    GenderOptions = []string{"male", "female", "other"}
)

// Build turns a multi-select age/gender selection into the canonical
// target audience filter. Each dimension normalizes independently: an
// empty selection and a complete selection both mean "all".
func Build(selectedAges, selectedGenders, allAges, allGenders []string) models.TargetAudience {
    return models.TargetAudience{
        Age:    normalizeDimension(selectedAges, allAges),
        Gender: normalizeDimension(selectedGenders, allGenders),
    }
}

// BuildDefault applies Build against the console's standard option sets.
func BuildDefault(selectedAges, selectedGenders []string) models.TargetAudience {
    return Build(selectedAges, selectedGenders, AgeOptions, GenderOptions)
}

func normalizeDimension(selected, all []string) []string {
    if len(selected) == 0 || coversAll(selected, all) {
        return []string{Wildcard}
    }
    out := make([]string, len(selected))
    copy(out, selected)
    return out
}

// coversAll reports whether the selection includes every available option.
// An empty option set counts as covered, so the builder still returns the
// wildcard instead of erroring.
func coversAll(selected, all []string) bool {
    if len(all) == 0 {
        return true
    }
    chosen := make(map[string]bool, len(selected))
    for _, s := range selected {
        chosen[s] = true
    }
    for _, option := range all {
        if !chosen[option] {
            return false
        }
    }
    return true
}
