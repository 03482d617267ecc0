package currency

import "math"

// Payment gateways operate on integer minor units (pesewas for GHS, kobo
// for NGN). The conversion assumes a 2-decimal currency, which holds for
// every currency the donation app offers today.

// ToMinorUnits converts a major-unit amount to integer minor units.
// Rounding is math.Round (half away from zero), so the mapping is
// deterministic: 12.34 -> 1234, 0.005 -> 1.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts integer minor units back to a major-unit amount.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}
