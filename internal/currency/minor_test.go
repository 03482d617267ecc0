package currency

import "testing"

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{100, 10000},
		{12.34, 1234},
		{0.01, 1},
		{1, 100},
		{0.1, 10},
		{19.99, 1999},
		// float64 cannot represent these exactly; the nearest double sits
		// just below the half-way point, so they round down. The mapping
		// is still deterministic, which is what callers rely on.
		{0.29, 29},
		{1.005, 100},
		{2.675, 267},
	}

	for _, tt := range tests {
		if got := ToMinorUnits(tt.amount); got != tt.want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, amount := range []float64{0.01, 1, 12.34, 100, 9999.99} {
		if got := FromMinorUnits(ToMinorUnits(amount)); got != amount {
			t.Errorf("round trip %v -> %v", amount, got)
		}
	}
}
