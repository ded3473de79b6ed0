package reward

import (
    "testing"
)

func TestDerive_FromRawValue(t *testing.T) {
    cases := []struct {
        rawValue  float64
        wantCoins int
        wantXP    int
    }{
        {500, 100, 50},
        {0, 0, 0},
        {1, 0, 0},       // round(0.2) = 0
        {3, 1, 1},       // round(0.6) = 1, round(0.5) = 1
        {10, 2, 1},
        {12.5, 3, 2},    // round(2.5) = 3, round(1.5) = 2
        {999, 200, 100},
    }

    for _, tc := range cases {
        coins, xp := Derive(tc.rawValue, nil, nil)
        if coins != tc.wantCoins {
            t.Errorf("Derive(%v) coins = %d, want %d", tc.rawValue, coins, tc.wantCoins)
        }
        if xp != tc.wantXP {
            t.Errorf("Derive(%v) xp = %d, want %d", tc.rawValue, xp, tc.wantXP)
        }
    }
}

func TestDerive_NegativeValueClampsToZero(t *testing.T) {
    coins, xp := Derive(-100, nil, nil)
    if coins != 0 || xp != 0 {
        t.Errorf("Expected 0/0 for negative value, got coins=%d xp=%d", coins, xp)
    }
}

func TestDerive_ProvidedCoinsWin(t *testing.T) {
    provided := 250
    coins, xp := Derive(10, &provided, nil)
    if coins != 250 {
        t.Errorf("Expected provided coins 250 regardless of raw value, got %d", coins)
    }
    if xp != 125 {
        t.Errorf("Expected xp derived from provided coins, got %d", xp)
    }
}

func TestDerive_ProvidedXPWins(t *testing.T) {
    providedXP := 7
    _, xp := Derive(500, nil, &providedXP)
    if xp != 7 {
        t.Errorf("Expected provided xp 7, got %d", xp)
    }
}

func TestDerive_NegativeProvidedValuesClamp(t *testing.T) {
    coins := -5
    xp := -9
    gotCoins, gotXP := Derive(100, &coins, &xp)
    if gotCoins != 0 || gotXP != 0 {
        t.Errorf("Expected negative provided rewards clamped to 0, got coins=%d xp=%d", gotCoins, gotXP)
    }
}
