package domain

import "time"

// RawPortfolio is a brokerage export converted to JSON, before enrichment.
type RawPortfolio struct {
	Metadata       PortfolioMetadata `json:"metadata"`
	AccountSummary map[string]any    `json:"account_summary"`
	Holdings       []EnrichedHolding `json:"holdings"`
}

type PortfolioMetadata struct {
	ProcessedAt   time.Time `json:"processed_at"`
	SourceFile    string    `json:"source_file,omitempty"`
	TotalHoldings int       `json:"total_holdings"`
	AccountValue  float64   `json:"account_value"`
}

// EnrichedPortfolio is the document the dispatcher receives.
type EnrichedPortfolio struct {
	Metadata           PortfolioMetadata   `json:"metadata"`
	AccountSummary     map[string]any      `json:"account_summary,omitempty"`
	Holdings           []EnrichedHolding   `json:"holdings"`
	EnrichmentMetadata *EnrichmentMetadata `json:"enrichment_metadata,omitempty"`
}

type EnrichmentMetadata struct {
	ProcessedAt   time.Time `json:"processed_at"`
	TotalHoldings int       `json:"total_holdings"`
}

type EnrichedHolding struct {
	Symbol              string   `json:"symbol"`
	DaysGainDollar      float64  `json:"days_gain_dollar"`
	DaysGainPercent     float64  `json:"days_gain_percent"`
	Quantity            float64  `json:"quantity"`
	TotalGainDollar     float64  `json:"total_gain_dollar"`
	TotalGainPercent    *float64 `json:"total_gain_percent,omitempty"`
	LastPrice           float64  `json:"last_price"`
	Value               *float64 `json:"value,omitempty"`
	PortfolioPercentage *float64 `json:"portfolio_percentage,omitempty"`
	DividendYield       float64  `json:"dividend_yield"`
	PeRatio             float64  `json:"pe_ratio"`
	Eps                 float64  `json:"eps"`
	MarketCap           *string  `json:"market_cap,omitempty"`
	Beta                *float64 `json:"beta,omitempty"`

	Analysis *HoldingAnalysis `json:"analysis,omitempty"`
}

type HoldingAnalysis struct {
	Timestamp        time.Time      `json:"timestamp"`
	Error            string         `json:"error,omitempty"`
	AssetType        *AssetType     `json:"asset_type,omitempty"`
	Sector           *string        `json:"sector,omitempty"`
	Industry         *string        `json:"industry,omitempty"`
	Category         *string        `json:"category,omitempty"`
	HqLocation       *HqLocation    `json:"hq_location,omitempty"`
	PriceMomentum    *PriceMomentum `json:"price_momentum,omitempty"`
	TrailingReturn1m *float64       `json:"trailing_return_1m,omitempty"`
	SharpeRatio      *float64       `json:"sharpe_ratio,omitempty"`
}

type HqLocation struct {
	Country *string `json:"country,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
}

type PriceMomentum struct {
	StockReturn1m float64 `json:"stock_return_1m"`
}

func (h EnrichedHolding) AssetType() *AssetType {
	if h.Analysis == nil {
		return nil
	}
	return h.Analysis.AssetType
}

func (h EnrichedHolding) IsETF() bool {
	t := h.AssetType()
	return t != nil && *t == AssetTypeETF
}
