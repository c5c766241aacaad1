package calculator

import (
	"portfoliobias/internal/domain"
	"strconv"
	"strings"
)

var marketCapSuffixes = []struct {
	suffix     string
	multiplier float64
}{
	{"T", 1_000_000_000_000},
	{"B", 1_000_000_000},
	{"M", 1_000_000},
}

// ParseMarketCap reads strings like "1.2T", "450m" or "3,100,000". Empty
// or unparseable input is 0.
func ParseMarketCap(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ToUpper(s), ",", ""))
	if s == "" {
		return 0
	}

	multiplier := 1.0
	for _, m := range marketCapSuffixes {
		if strings.HasSuffix(s, m.suffix) {
			multiplier = m.multiplier
			s = strings.TrimSuffix(s, m.suffix)
			break
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v * multiplier
}

// ClassifyMarketCap buckets a magnitude. Large-cap is closed on both ends,
// so exactly 200B is Large and anything above is Mega.
func ClassifyMarketCap(v float64) domain.CapTier {
	switch {
	case v > 200_000_000_000:
		return domain.CapTierMega
	case v >= 10_000_000_000 && v <= 200_000_000_000:
		return domain.CapTierLarge
	case v >= 2_000_000_000 && v < 10_000_000_000:
		return domain.CapTierMid
	case v >= 300_000_000 && v < 2_000_000_000:
		return domain.CapTierSmall
	case v >= 50_000_000 && v < 300_000_000:
		return domain.CapTierMicro
	default:
		return domain.CapTierNano
	}
}

func ClassifyMarketCapString(s string) domain.CapTier {
	return ClassifyMarketCap(ParseMarketCap(s))
}
