package l1_service

import (
	"math"
	"portfoliobias/internal/calculator"
	"portfoliobias/internal/domain"
	"sort"
	"strings"
	"time"
)

// percentageTolerance absorbs float error when brokerage percentages are
// summed.
const percentageTolerance = 1e-9

const topHoldingsCount = 4

type ComputeInput struct {
	PortfolioID string
	Dimension   domain.Dimension
	Holdings    []domain.Holding
	Benchmarks  domain.Benchmarks
	Now         time.Time
}

// Compute runs one dimension over its reduced view. Commentary fields are
// left empty; the bias service fills them in.
func Compute(in ComputeInput) (domain.Result, error) {
	if err := ValidateHoldings(in.PortfolioID, in.Holdings); err != nil {
		return nil, err
	}
	now := in.Now.UTC()

	switch in.Dimension {
	case domain.DimensionSector:
		return ComputeSector(in.PortfolioID, in.Holdings, in.Benchmarks, now), nil
	case domain.DimensionLocation:
		return ComputeLocation(in.PortfolioID, in.Holdings, now)
	case domain.DimensionSize:
		return ComputeSize(in.PortfolioID, in.Holdings, in.Benchmarks, now), nil
	case domain.DimensionMomentum:
		return ComputeMomentum(in.PortfolioID, in.Holdings, in.Benchmarks, now), nil
	case domain.DimensionVolatility:
		return ComputeVolatility(in.PortfolioID, in.Holdings, now), nil
	default:
		return nil, domain.NewValidationError("unknown dimension %q", in.Dimension)
	}
}

// ValidateHoldings rejects a missing identifier, an empty holdings list and
// percentages outside [0, 100] individually or above 100 in total.
func ValidateHoldings(portfolioID string, holdings []domain.Holding) error {
	if strings.TrimSpace(portfolioID) == "" {
		return domain.NewValidationError("unique identifier is required")
	}
	if len(holdings) == 0 {
		return domain.NewValidationError("holdings are required for %s", portfolioID)
	}

	total := 0.0
	for i, h := range holdings {
		if h.PortfolioPercentage == nil {
			continue
		}
		p := *h.PortfolioPercentage
		if math.IsNaN(p) || p < 0 || p > 100 {
			return domain.NewValidationError("portfolio percentages must be between 0%% and 100%%, found %.2f%% in holding %d", p, i)
		}
		total += p
	}
	if total > 100+percentageTolerance {
		return domain.NewValidationError("total portfolio percentage cannot exceed 100%%, current sum: %.2f%%", total)
	}

	return nil
}

func ComputeSector(portfolioID string, holdings []domain.Holding, benchmarks domain.Benchmarks, now time.Time) domain.SectorResult {
	agg := calculator.Aggregate(holdings, calculator.SectorKey, calculator.PortfolioWeight)
	user := agg.Normalized()
	benchmark := benchmarks.Sector()

	return domain.SectorResult{
		UniqueIdentifier:     portfolioID,
		Timestamp:            now,
		Sp500Sectors:         benchmark,
		UserSectors:          calculator.Round(user, 2),
		SimilarityPercentage: calculator.CosineSimilarity(benchmark, user),
		SkippedHoldings:      agg.Skipped,
	}
}

func ComputeLocation(portfolioID string, holdings []domain.Holding, now time.Time) (domain.LocationResult, error) {
	agg := calculator.Aggregate(holdings, calculator.LocationKey, calculator.PortfolioWeight)
	if agg.Included == 0 {
		return domain.LocationResult{}, domain.NewValidationError(
			"no valid locations found for %s, holdings need a country, city or state and a positive portfolio percentage",
			portfolioID,
		)
	}

	weighted := []domain.WeightedLocation{}
	for location, pct := range agg.Normalized() {
		weighted = append(weighted, domain.WeightedLocation{
			Location:   location,
			Percentage: calculator.RoundFloat(pct, 2),
		})
	}
	sort.Slice(weighted, func(i, j int) bool {
		if weighted[i].Percentage != weighted[j].Percentage {
			return weighted[i].Percentage > weighted[j].Percentage
		}
		return weighted[i].Location < weighted[j].Location
	})

	return domain.LocationResult{
		UniqueIdentifier:  portfolioID,
		Timestamp:         now,
		WeightedLocations: weighted,
		SkippedHoldings:   agg.Skipped,
	}, nil
}

// ComputeSize buckets holdings by market-cap tier. Tiers are weighted by
// holding count, not by portfolio percentage.
func ComputeSize(portfolioID string, holdings []domain.Holding, benchmarks domain.Benchmarks, now time.Time) domain.SizeResult {
	agg := calculator.Aggregate(holdings, calculator.CapTierKey, calculator.CountWeight)

	tiers := domain.Distribution{}
	for _, tier := range domain.CapTiers {
		tiers[string(tier)] = 0
		if len(holdings) > 0 {
			tiers[string(tier)] = calculator.RoundFloat(agg.Weights[string(tier)]/float64(len(holdings))*100, 2)
		}
	}
	benchmark := benchmarks.Size()

	return domain.SizeResult{
		UniqueIdentifier:     portfolioID,
		Timestamp:            now,
		MarketCap:            tiers,
		Benchmark:            benchmark,
		SimilarityPercentage: calculator.CosineSimilarity(tiers, benchmark),
		TopHoldings:          topHoldings(holdings, topHoldingsCount),
	}
}

func topHoldings(holdings []domain.Holding, n int) []domain.TopHolding {
	sorted := make([]domain.Holding, len(holdings))
	copy(sorted, holdings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return domain.FloatOrZero(sorted[i].TotalGainPercent) > domain.FloatOrZero(sorted[j].TotalGainPercent)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := []domain.TopHolding{}
	for _, h := range sorted {
		out = append(out, domain.TopHolding{
			Symbol:           h.Symbol,
			Value:            h.Value,
			TotalGainPercent: h.TotalGainPercent,
		})
	}
	return out
}

func ComputeMomentum(portfolioID string, holdings []domain.Holding, benchmarks domain.Benchmarks, now time.Time) domain.MomentumResult {
	weighted := calculator.WeightedSum(holdings, calculator.TrailingReturn1m)

	return domain.MomentumResult{
		UniqueIdentifier:           portfolioID,
		Timestamp:                  now,
		PriceMomentumComparison:    calculator.MomentumComparison(weighted, benchmarks.MomentumReturn()),
		Sp500Momentum:              benchmarks.MomentumReturn(),
		CalculatedWeightedMomentum: weighted,
	}
}

func ComputeVolatility(portfolioID string, holdings []domain.Holding, now time.Time) domain.VolatilityResult {
	counts := calculator.Aggregate(holdings, calculator.AssetTypeKey, calculator.CountWeight)
	assetTypes := map[string]int{}
	for k, v := range counts.Weights {
		assetTypes[k] = int(v)
	}

	return domain.VolatilityResult{
		UniqueIdentifier: portfolioID,
		Timestamp:        now,
		WeightedBeta:     calculator.WeightedSum(holdings, calculator.Beta),
		WeightedSharpe:   calculator.WeightedSum(holdings, calculator.Sharpe),
		AssetTypes:       assetTypes,
	}
}

// SkippedHoldings returns the side list a result carries, if any.
func SkippedHoldings(r domain.Result) []domain.SkippedHolding {
	switch v := r.(type) {
	case domain.SectorResult:
		return v.SkippedHoldings
	case domain.LocationResult:
		return v.SkippedHoldings
	default:
		return nil
	}
}
