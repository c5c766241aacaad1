package calculator

import (
	"portfoliobias/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMarketCap(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.2T", 1.2e12},
		{"45.3B", 45.3e9},
		{"450M", 450e6},
		{"450m", 450e6},
		{"2.5b", 2.5e9},
		{"3,100,000", 3_100_000},
		{" 12.5 B ", 12.5e9},
		{"1,234.5M", 1234.5e6},
		{"", 0},
		{"garbage", 0},
		{"B", 0},
		{"N/A", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.InDelta(t, tt.want, ParseMarketCap(tt.in), 1e-3)
		})
	}
}

func TestClassifyMarketCap(t *testing.T) {
	tests := []struct {
		in   string
		want domain.CapTier
	}{
		{"5T", domain.CapTierMega},
		{"250B", domain.CapTierMega},
		{"200.1B", domain.CapTierMega},
		{"200B", domain.CapTierLarge},
		{"150B", domain.CapTierLarge},
		{"10B", domain.CapTierLarge},
		{"9.99B", domain.CapTierMid},
		{"2B", domain.CapTierMid},
		{"1.5B", domain.CapTierSmall},
		{"300M", domain.CapTierSmall},
		{"299M", domain.CapTierMicro},
		{"50M", domain.CapTierMicro},
		{"49M", domain.CapTierNano},
		{"", domain.CapTierNano},
		{"garbage", domain.CapTierNano},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifyMarketCapString(tt.in))
		})
	}
}
