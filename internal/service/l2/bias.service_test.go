package l2_service

import (
	"context"
	"encoding/json"
	"fmt"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/repository"
	mock_repository "portfoliobias/internal/repository/mocks"
	"portfoliobias/internal/util"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func pct(f float64) *float64 {
	return &f
}

func str(s string) *string {
	return &s
}

func noWaitPolicy() util.RetryPolicy {
	return util.RetryPolicy{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		Sleep: func(ctx context.Context, d time.Duration) error {
			return nil
		},
	}
}

func TestBiasService_AnalyzeDimension(t *testing.T) {
	ctx := context.Background()
	sectorHoldings := []domain.Holding{
		{Symbol: "AAPL", Sector: str("Tech"), PortfolioPercentage: pct(60)},
		{Symbol: "JNJ", Sector: str("Health Care"), PortfolioPercentage: pct(30)},
		{Symbol: "MSFT", Sector: str("Tech"), PortfolioPercentage: pct(10)},
	}

	t.Run("sector result gets commentary and is stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		commentary := mock_repository.NewMockCommentaryRepository(ctrl)
		store := repository.NewMemoryObjectRepository()
		service := NewBiasService(store, commentary, domain.DefaultBenchmarks(), util.FixedClock(testNow), noWaitPolicy())

		commentary.EXPECT().
			SectorBiasAnalysis(gomock.Any(), domain.DefaultBenchmarks().Sector(), domain.Distribution{"Tech": 70, "Health Care": 30}, gomock.Any()).
			Return("Concentrated in technology.", nil)

		result, err := service.AnalyzeDimension(ctx, "p1", domain.DimensionSector, sectorHoldings)
		require.NoError(t, err)
		require.Equal(t, "Concentrated in technology.", result.(domain.SectorResult).BiasAnalysis)

		body, err := store.Get(ctx, "results/p1/sector_results.json")
		require.NoError(t, err)
		stored := domain.SectorResult{}
		require.NoError(t, json.Unmarshal(body, &stored))
		require.Equal(t, "", cmp.Diff(result.(domain.SectorResult), stored, cmpopts.EquateEmpty()))
	})

	t.Run("momentum needs no commentary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		commentary := mock_repository.NewMockCommentaryRepository(ctrl)
		store := repository.NewMemoryObjectRepository()
		service := NewBiasService(store, commentary, domain.DefaultBenchmarks(), util.FixedClock(testNow), noWaitPolicy())

		_, err := service.AnalyzeDimension(ctx, "p1", domain.DimensionMomentum, []domain.Holding{
			{PortfolioPercentage: pct(100)},
		})
		require.NoError(t, err)

		body, err := store.Get(ctx, "results/p1/momentum_results.json")
		require.NoError(t, err)
		require.Contains(t, string(body), `"price_momentum_comparison":null`)
		require.Contains(t, string(body), `"s&p500_momentum":3.5`)
	})

	t.Run("commentary failure fails the dimension", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		commentary := mock_repository.NewMockCommentaryRepository(ctrl)
		store := repository.NewMemoryObjectRepository()
		service := NewBiasService(store, commentary, domain.DefaultBenchmarks(), util.FixedClock(testNow), noWaitPolicy())

		commentary.EXPECT().
			RiskAnalysis(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", fmt.Errorf("connection refused"))

		_, err := service.AnalyzeDimension(ctx, "p1", domain.DimensionVolatility, []domain.Holding{
			{Symbol: "AAPL", PortfolioPercentage: pct(100), Beta: pct(1.1)},
		})
		require.True(t, domain.IsDependencyUnavailable(err))

		keys, err := store.List(ctx, "results/p1/")
		require.NoError(t, err)
		require.Empty(t, keys)
	})

	t.Run("storage is retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		commentary := mock_repository.NewMockCommentaryRepository(ctrl)
		store := mock_repository.NewMockObjectRepository(ctrl)
		service := NewBiasService(store, commentary, domain.DefaultBenchmarks(), util.FixedClock(testNow), noWaitPolicy())

		gomock.InOrder(
			store.EXPECT().Put(gomock.Any(), "results/p1/size_results.json", gomock.Any()).Return(fmt.Errorf("i/o timeout")),
			store.EXPECT().Put(gomock.Any(), "results/p1/size_results.json", gomock.Any()).Return(nil),
		)

		_, err := service.AnalyzeDimension(ctx, "p1", domain.DimensionSize, []domain.Holding{
			{Symbol: "AAPL", MarketCap: str("3T")},
		})
		require.NoError(t, err)
	})

	t.Run("validation error stops before commentary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		commentary := mock_repository.NewMockCommentaryRepository(ctrl)
		store := repository.NewMemoryObjectRepository()
		service := NewBiasService(store, commentary, domain.DefaultBenchmarks(), util.FixedClock(testNow), noWaitPolicy())

		_, err := service.AnalyzeDimension(ctx, "", domain.DimensionSector, sectorHoldings)
		require.True(t, domain.IsValidationError(err))
	})

	t.Run("records a span", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		commentary := mock_repository.NewMockCommentaryRepository(ctrl)
		store := repository.NewMemoryObjectRepository()
		service := NewBiasService(store, commentary, domain.DefaultBenchmarks(), util.FixedClock(testNow), noWaitPolicy())

		profile, endProfile := domain.NewProfile()
		_, err := service.AnalyzeDimension(domain.NewCtxWithProfile(ctx, profile), "p1", domain.DimensionLocation, []domain.Holding{
			{PortfolioPercentage: pct(100), Country: str("Japan")},
		})
		endProfile()
		require.NoError(t, err)
		require.Len(t, profile.Spans, 1)
		require.Equal(t, "location analysis", profile.Spans[0].Name)
		require.False(t, profile.Spans[0].Failed)
		require.NotNil(t, profile.Spans[0].Elapsed)
	})
}
