package reward

import (
    "math"
)

// Providers report value in incompatible units (USD CPI, point totals,
// flat payouts). The two-stage derivation below keeps the mapping uniform
// and the ratios auditable.
const (
    coinsPerValue = 0.2
    xpPerCoin     = 0.5
)

// Derive computes the user-facing reward for an offer. Provider-supplied
// values win; otherwise coins come from the raw value and XP from the
// coins. Negative or missing input derives to 0, never a negative reward.
func Derive(rawValue float64, providedCoins, providedXP *int) (coins, xp int) {
    if providedCoins != nil {
        coins = *providedCoins
    } else {
        coins = int(math.Round(rawValue * coinsPerValue))
    }
    if coins < 0 {
        coins = 0
    }

    if providedXP != nil {
        xp = *providedXP
    } else {
        xp = int(math.Round(float64(coins) * xpPerCoin))
    }
    if xp < 0 {
        xp = 0
    }

    return coins, xp
}
