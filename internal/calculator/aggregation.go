package calculator

import (
	"fmt"
	"portfoliobias/internal/domain"
	"strings"
)

// KeySelector picks the category a holding accumulates into. A non-empty
// skip reason drops the holding from the aggregation.
type KeySelector func(h domain.Holding) (key string, skipReason string)

// WeightSelector picks how much a holding contributes. A non-empty skip
// reason drops the holding from the aggregation.
type WeightSelector func(h domain.Holding) (weight float64, skipReason string)

// Aggregation is the result of one fold over a view.
type Aggregation struct {
	// Weights are the raw accumulated weights, not normalized.
	Weights  domain.Distribution
	Total    float64
	Included int
	Skipped  []domain.SkippedHolding
}

// Normalized scales the accumulated weights to sum to 100. Skipped
// holdings are not part of the denominator.
func (a Aggregation) Normalized() domain.Distribution {
	return Normalize(a.Weights)
}

// Aggregate folds holdings into per-key weights. Holdings that fail either
// selector are recorded in Skipped and the fold carries on.
func Aggregate(holdings []domain.Holding, key KeySelector, weight WeightSelector) Aggregation {
	out := Aggregation{
		Weights: domain.Distribution{},
		Skipped: []domain.SkippedHolding{},
	}

	for i, h := range holdings {
		w, reason := weight(h)
		if reason != "" {
			out.Skipped = append(out.Skipped, domain.SkippedHolding{Index: i, Symbol: h.Symbol, Reason: reason})
			continue
		}
		k, reason := key(h)
		if reason != "" {
			out.Skipped = append(out.Skipped, domain.SkippedHolding{Index: i, Symbol: h.Symbol, Reason: reason})
			continue
		}

		out.Weights[k] += w
		out.Total += w
		out.Included++
	}

	return out
}

// UnknownCategory stands in for a missing sector, asset type or country.
const UnknownCategory = "Unknown"

// PortfolioWeight uses the holding's portfolio percentage. Missing and
// non-positive percentages are skipped.
func PortfolioWeight(h domain.Holding) (float64, string) {
	if h.PortfolioPercentage == nil {
		return 0, "missing portfolio percentage"
	}
	if *h.PortfolioPercentage <= 0 {
		return 0, fmt.Sprintf("percentage %v <= 0", *h.PortfolioPercentage)
	}
	return *h.PortfolioPercentage, ""
}

// CountWeight makes every holding count once regardless of its size.
func CountWeight(domain.Holding) (float64, string) {
	return 1, ""
}

// SectorKey never skips; a missing sector is Unknown.
func SectorKey(h domain.Holding) (string, string) {
	return orUnknown(h.Sector), ""
}

func AssetTypeKey(h domain.Holding) (string, string) {
	if h.AssetType == nil || *h.AssetType == "" {
		return UnknownCategory, ""
	}
	return string(*h.AssetType), ""
}

// CapTierKey classifies the market-cap string. Unparseable values land in
// Nano-cap.
func CapTierKey(h domain.Holding) (string, string) {
	return string(ClassifyMarketCapString(domain.StringOrEmpty(h.MarketCap))), ""
}

// LocationKey builds "{state}, {country}", then "{city}, {country}", then
// just the country. Holdings with none of the three are skipped.
func LocationKey(h domain.Holding) (string, string) {
	country := strings.TrimSpace(domain.StringOrEmpty(h.Country))
	city := strings.TrimSpace(domain.StringOrEmpty(h.City))
	state := strings.TrimSpace(domain.StringOrEmpty(h.State))

	if country == "" && city == "" && state == "" {
		return "", "no location data"
	}
	if country == "" {
		country = UnknownCategory
	}

	switch {
	case state != "":
		return fmt.Sprintf("%s, %s", state, country), ""
	case city != "":
		return fmt.Sprintf("%s, %s", city, country), ""
	default:
		return country, ""
	}
}

func orUnknown(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return UnknownCategory
	}
	return *s
}

// WeightedSum is Σ percentage/100 * metric. A missing metric or percentage
// contributes nothing; unlike Aggregate no holding is skipped.
func WeightedSum(holdings []domain.Holding, metric func(h domain.Holding) *float64) float64 {
	total := 0.0
	for _, h := range holdings {
		weight := h.Percentage() / 100
		total += weight * domain.FloatOrZero(metric(h))
	}
	return total
}

func Beta(h domain.Holding) *float64             { return h.Beta }
func Sharpe(h domain.Holding) *float64           { return h.Sharpe }
func TrailingReturn1m(h domain.Holding) *float64 { return h.TrailingReturn1m }

// MomentumComparison is the percent deviation of the weighted return from
// the benchmark return. An exactly-zero weighted return is treated as "not
// enough signal" and yields nil, as does a zero benchmark.
func MomentumComparison(weightedReturn, benchmarkReturn float64) *float64 {
	if weightedReturn == 0 || benchmarkReturn == 0 {
		return nil
	}
	c := ((weightedReturn - benchmarkReturn) / benchmarkReturn) * 100
	return &c
}
