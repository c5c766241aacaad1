package domain

import (
	"encoding/json"
	"time"
)

// Result is the document one dimension computation produces.
type Result interface {
	Dimension() Dimension
	PortfolioID() string
}

// SkippedHolding records a holding left out of an aggregation, and why.
type SkippedHolding struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol,omitempty"`
	Reason string `json:"reason"`
}

type SectorResult struct {
	UniqueIdentifier     string           `json:"unique_identifier"`
	Timestamp            time.Time        `json:"timestamp"`
	Sp500Sectors         Distribution     `json:"sp500_sectors"`
	UserSectors          Distribution     `json:"user_sectors"`
	SimilarityPercentage float64          `json:"similarity_percentage"`
	BiasAnalysis         string           `json:"bias_analysis"`
	SkippedHoldings      []SkippedHolding `json:"skipped_holdings,omitempty"`
}

func (r SectorResult) Dimension() Dimension { return DimensionSector }
func (r SectorResult) PortfolioID() string  { return r.UniqueIdentifier }

type WeightedLocation struct {
	Location   string  `json:"location"`
	Percentage float64 `json:"percentage"`
}

type LocationResult struct {
	UniqueIdentifier  string             `json:"unique_identifier"`
	Timestamp         time.Time          `json:"timestamp"`
	WeightedLocations []WeightedLocation `json:"weighted_locations"`
	SkippedHoldings   []SkippedHolding   `json:"skipped_holdings,omitempty"`
}

func (r LocationResult) Dimension() Dimension { return DimensionLocation }
func (r LocationResult) PortfolioID() string  { return r.UniqueIdentifier }

type TopHolding struct {
	Symbol           string   `json:"symbol"`
	Value            *float64 `json:"value"`
	TotalGainPercent *float64 `json:"total_gain_percent"`
}

type SizeResult struct {
	UniqueIdentifier     string       `json:"unique_identifier"`
	Timestamp            time.Time    `json:"timestamp"`
	MarketCap            Distribution `json:"market-cap"`
	Benchmark            Distribution `json:"sp500"`
	SimilarityPercentage float64      `json:"similarity_percentage"`
	TopHoldings          []TopHolding `json:"top_holdings"`
}

func (r SizeResult) Dimension() Dimension { return DimensionSize }
func (r SizeResult) PortfolioID() string  { return r.UniqueIdentifier }

type MomentumResult struct {
	UniqueIdentifier string    `json:"unique_identifier"`
	Timestamp        time.Time `json:"timestamp"`

	// nil when the weighted momentum is exactly zero
	PriceMomentumComparison    *float64 `json:"price_momentum_comparison"`
	Sp500Momentum              float64  `json:"s&p500_momentum"`
	CalculatedWeightedMomentum float64  `json:"calculated_weighted_momentum"`
}

func (r MomentumResult) Dimension() Dimension { return DimensionMomentum }
func (r MomentumResult) PortfolioID() string  { return r.UniqueIdentifier }

type VolatilityResult struct {
	UniqueIdentifier string         `json:"unique_identifier"`
	Timestamp        time.Time      `json:"timestamp"`
	WeightedBeta     float64        `json:"weighted_beta"`
	WeightedSharpe   float64        `json:"weighted_sharpe"`
	AssetTypes       map[string]int `json:"asset_types"`
	RiskAnalysis     string         `json:"risk_analysis"`
}

func (r VolatilityResult) Dimension() Dimension { return DimensionVolatility }
func (r VolatilityResult) PortfolioID() string  { return r.UniqueIdentifier }

// CombinedResult is every dimension document keyed by dimension name.
type CombinedResult map[string]json.RawMessage
