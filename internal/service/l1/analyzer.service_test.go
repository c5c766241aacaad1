package l1_service

import (
	"portfoliobias/internal/domain"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func pct(f float64) *float64 {
	return &f
}

func str(s string) *string {
	return &s
}

func TestValidateHoldings(t *testing.T) {
	holdings := []domain.Holding{{Symbol: "AAPL", PortfolioPercentage: pct(40)}}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, ValidateHoldings("abc", holdings))
	})

	t.Run("missing identifier", func(t *testing.T) {
		err := ValidateHoldings(" ", holdings)
		require.True(t, domain.IsValidationError(err))
	})

	t.Run("no holdings", func(t *testing.T) {
		err := ValidateHoldings("abc", nil)
		require.True(t, domain.IsValidationError(err))
	})

	t.Run("percentage out of range", func(t *testing.T) {
		err := ValidateHoldings("abc", []domain.Holding{{PortfolioPercentage: pct(-1)}})
		require.True(t, domain.IsValidationError(err))
		err = ValidateHoldings("abc", []domain.Holding{{PortfolioPercentage: pct(100.5)}})
		require.True(t, domain.IsValidationError(err))
	})

	t.Run("total above 100", func(t *testing.T) {
		err := ValidateHoldings("abc", []domain.Holding{
			{PortfolioPercentage: pct(60)},
			{PortfolioPercentage: pct(50)},
		})
		require.True(t, domain.IsValidationError(err))
		require.Contains(t, err.Error(), "110.00%")
	})
}

func TestComputeSector(t *testing.T) {
	t.Run("tech and health care", func(t *testing.T) {
		holdings := []domain.Holding{
			{Symbol: "AAPL", Sector: str("Tech"), PortfolioPercentage: pct(60)},
			{Symbol: "JNJ", Sector: str("Health Care"), PortfolioPercentage: pct(30)},
			{Symbol: "MSFT", Sector: str("Tech"), PortfolioPercentage: pct(10)},
		}
		result, err := Compute(ComputeInput{
			PortfolioID: "p1",
			Dimension:   domain.DimensionSector,
			Holdings:    holdings,
			Benchmarks:  domain.NewBenchmarks(domain.Distribution{"Tech": 70, "Health Care": 30}, nil, 3.5),
			Now:         testNow,
		})
		require.NoError(t, err)

		sector := result.(domain.SectorResult)
		require.Equal(t, "", cmp.Diff(domain.Distribution{"Tech": 70, "Health Care": 30}, sector.UserSectors))
		require.Equal(t, 100.0, sector.SimilarityPercentage)
		require.Equal(t, "p1", sector.UniqueIdentifier)
		require.Equal(t, testNow, sector.Timestamp)
		require.Empty(t, sector.SkippedHoldings)
	})

	t.Run("non-positive percentages leave the denominator", func(t *testing.T) {
		holdings := []domain.Holding{
			{Symbol: "AAPL", Sector: str("Tech"), PortfolioPercentage: pct(30)},
			{Symbol: "XOM", Sector: str("Energy"), PortfolioPercentage: pct(0)},
			{Symbol: "JNJ", Sector: str("Health Care"), PortfolioPercentage: pct(10)},
		}
		sector := ComputeSector("p1", holdings, domain.DefaultBenchmarks(), testNow)

		require.Equal(t, "", cmp.Diff(domain.Distribution{"Tech": 75, "Health Care": 25}, sector.UserSectors))
		require.Equal(t, "", cmp.Diff([]domain.SkippedHolding{
			{Index: 1, Symbol: "XOM", Reason: "percentage 0 <= 0"},
		}, sector.SkippedHoldings))
	})

	t.Run("missing sector is unknown", func(t *testing.T) {
		holdings := []domain.Holding{
			{Symbol: "AAPL", PortfolioPercentage: pct(50)},
			{Symbol: "JNJ", Sector: str("Health Care"), PortfolioPercentage: pct(50)},
		}
		sector := ComputeSector("p1", holdings, domain.DefaultBenchmarks(), testNow)
		require.Equal(t, "", cmp.Diff(domain.Distribution{"Unknown": 50, "Health Care": 50}, sector.UserSectors))
	})
}

func TestComputeLocation(t *testing.T) {
	t.Run("weighted and sorted", func(t *testing.T) {
		holdings := []domain.Holding{
			{PortfolioPercentage: pct(20), Country: str("United States"), City: str("Cupertino"), State: str("CA")},
			{PortfolioPercentage: pct(50), Country: str("United States"), City: str("Redmond"), State: str("WA")},
			{PortfolioPercentage: pct(20), City: str("Toronto")},
			{PortfolioPercentage: pct(10)},
		}
		result, err := ComputeLocation("p1", holdings, testNow)
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff([]domain.WeightedLocation{
			{Location: "WA, United States", Percentage: 55.56},
			{Location: "CA, United States", Percentage: 22.22},
			{Location: "Toronto, Unknown", Percentage: 22.22},
		}, result.WeightedLocations))
		require.Equal(t, "", cmp.Diff([]domain.SkippedHolding{
			{Index: 3, Reason: "no location data"},
		}, result.SkippedHoldings))
	})

	t.Run("no valid locations", func(t *testing.T) {
		_, err := ComputeLocation("p1", []domain.Holding{
			{PortfolioPercentage: pct(50)},
			{PortfolioPercentage: pct(0), Country: str("Japan")},
		}, testNow)
		require.True(t, domain.IsValidationError(err))
	})
}

func TestComputeSize(t *testing.T) {
	t.Run("counts per tier", func(t *testing.T) {
		holdings := []domain.Holding{
			{Symbol: "AAPL", MarketCap: str("3.4T"), TotalGainPercent: pct(120), Value: pct(5000)},
			{Symbol: "CRWD", MarketCap: str("150B"), TotalGainPercent: pct(40), Value: pct(2000)},
			{Symbol: "ETSY", MarketCap: str("6.1B"), TotalGainPercent: pct(-20), Value: pct(800)},
			{Symbol: "XYZ", MarketCap: str("garbage"), TotalGainPercent: pct(5), Value: pct(10)},
			{Symbol: "CASH"},
		}
		result := ComputeSize("p1", holdings, domain.DefaultBenchmarks(), testNow)

		require.Equal(t, "", cmp.Diff(domain.Distribution{
			"Mega-cap":  20,
			"Large-cap": 20,
			"Mid-cap":   20,
			"Small-cap": 0,
			"Micro-cap": 0,
			"Nano-cap":  40,
		}, result.MarketCap))
		require.Equal(t, "", cmp.Diff([]domain.TopHolding{
			{Symbol: "AAPL", Value: pct(5000), TotalGainPercent: pct(120)},
			{Symbol: "CRWD", Value: pct(2000), TotalGainPercent: pct(40)},
			{Symbol: "XYZ", Value: pct(10), TotalGainPercent: pct(5)},
			{Symbol: "CASH"},
		}, result.TopHoldings))
		require.Greater(t, result.SimilarityPercentage, 0.0)
		require.Less(t, result.SimilarityPercentage, 100.0)
	})

	t.Run("matches benchmark", func(t *testing.T) {
		holdings := []domain.Holding{}
		for _, mc := range []string{"1T", "1T", "1T", "1T", "1T", "1T", "1T", "50B", "50B", "50B", "50B", "50B", "50B", "50B", "5B", "5B", "5B", "5B", "1B", "100M"} {
			holdings = append(holdings, domain.Holding{MarketCap: str(mc)})
		}
		result := ComputeSize("p1", holdings, domain.DefaultBenchmarks(), testNow)
		require.Equal(t, 100.0, result.SimilarityPercentage)
	})
}

func TestComputeMomentum(t *testing.T) {
	t.Run("compares against benchmark", func(t *testing.T) {
		holdings := []domain.Holding{
			{PortfolioPercentage: pct(50), TrailingReturn1m: pct(10)},
			{PortfolioPercentage: pct(50), TrailingReturn1m: pct(4)},
		}
		result := ComputeMomentum("p1", holdings, domain.NewBenchmarks(nil, nil, 3.5), testNow)
		require.InDelta(t, 7.0, result.CalculatedWeightedMomentum, 1e-9)
		require.NotNil(t, result.PriceMomentumComparison)
		require.InDelta(t, 100.0, *result.PriceMomentumComparison, 1e-9)
		require.Equal(t, 3.5, result.Sp500Momentum)
	})

	t.Run("zero momentum has no comparison", func(t *testing.T) {
		holdings := []domain.Holding{
			{PortfolioPercentage: pct(50)},
			{PortfolioPercentage: pct(50), TrailingReturn1m: pct(0)},
		}
		result := ComputeMomentum("p1", holdings, domain.DefaultBenchmarks(), testNow)
		require.Nil(t, result.PriceMomentumComparison)
		require.Equal(t, 0.0, result.CalculatedWeightedMomentum)
	})
}

func TestComputeVolatility(t *testing.T) {
	holdings := []domain.Holding{
		{Symbol: "AAPL", PortfolioPercentage: pct(50), Beta: pct(1.2), Sharpe: pct(1), AssetType: domain.AssetTypePointer(domain.AssetTypeStock)},
		{Symbol: "BND", PortfolioPercentage: pct(50), Beta: pct(0.8), AssetType: domain.AssetTypePointer(domain.AssetTypeBond)},
		{Symbol: "???"},
	}
	result := ComputeVolatility("p1", holdings, testNow)

	require.InDelta(t, 1.0, result.WeightedBeta, 1e-9)
	require.InDelta(t, 0.5, result.WeightedSharpe, 1e-9)
	require.Equal(t, "", cmp.Diff(map[string]int{"STOCK": 1, "BOND": 1, "Unknown": 1}, result.AssetTypes))
	require.Equal(t, "", result.RiskAnalysis)
}

func TestCompute_unknownDimension(t *testing.T) {
	_, err := Compute(ComputeInput{
		PortfolioID: "p1",
		Dimension:   domain.Dimension("recency"),
		Holdings:    []domain.Holding{{Symbol: "AAPL"}},
	})
	require.True(t, domain.IsValidationError(err))
}
