package l1_service

import (
	"portfoliobias/internal/domain"
)

// PrepareViews reduces an enriched portfolio to the fields each dimension
// reads. ETFs are dropped from the sector, location and momentum views.
func PrepareViews(portfolio domain.EnrichedPortfolio) map[domain.Dimension][]domain.Holding {
	views := map[domain.Dimension][]domain.Holding{}
	for _, d := range domain.AllDimensions {
		views[d] = []domain.Holding{}
	}

	for _, h := range portfolio.Holdings {
		analysis := h.Analysis
		if analysis == nil {
			analysis = &domain.HoldingAnalysis{}
		}

		views[domain.DimensionSize] = append(views[domain.DimensionSize], domain.Holding{
			Symbol:           h.Symbol,
			MarketCap:        h.MarketCap,
			TotalGainPercent: h.TotalGainPercent,
			Value:            h.Value,
		})
		views[domain.DimensionVolatility] = append(views[domain.DimensionVolatility], domain.Holding{
			Symbol:              h.Symbol,
			PortfolioPercentage: h.PortfolioPercentage,
			Beta:                h.Beta,
			Sharpe:              analysis.SharpeRatio,
			AssetType:           analysis.AssetType,
		})

		if h.IsETF() {
			continue
		}

		views[domain.DimensionSector] = append(views[domain.DimensionSector], domain.Holding{
			Symbol:              h.Symbol,
			PortfolioPercentage: h.PortfolioPercentage,
			Sector:              analysis.Sector,
		})

		location := domain.Holding{
			Symbol:              h.Symbol,
			PortfolioPercentage: h.PortfolioPercentage,
		}
		if analysis.HqLocation != nil {
			location.Country = analysis.HqLocation.Country
			location.City = analysis.HqLocation.City
			location.State = analysis.HqLocation.State
		}
		views[domain.DimensionLocation] = append(views[domain.DimensionLocation], location)

		views[domain.DimensionMomentum] = append(views[domain.DimensionMomentum], domain.Holding{
			Symbol:              h.Symbol,
			PortfolioPercentage: h.PortfolioPercentage,
			TrailingReturn1m:    trailingReturn(analysis),
		})
	}

	return views
}

// trailingReturn prefers the explicit trailing return and falls back to the
// momentum computed during enrichment.
func trailingReturn(a *domain.HoldingAnalysis) *float64 {
	if a.TrailingReturn1m != nil {
		return a.TrailingReturn1m
	}
	if a.PriceMomentum != nil {
		return domain.FloatPointer(a.PriceMomentum.StockReturn1m)
	}
	return nil
}
