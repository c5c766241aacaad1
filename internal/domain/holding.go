package domain

type AssetType string

const (
	AssetTypeStock AssetType = "STOCK"
	AssetTypeETF   AssetType = "ETF"
	AssetTypeBond  AssetType = "BOND"
	AssetTypeCash  AssetType = "CASH"
)

// Holding is one line of a reduced per-dimension view. Only Symbol is
// guaranteed; every enrichment field may be nil and is read as zero or
// "Unknown" depending on the dimension.
type Holding struct {
	Symbol              string     `json:"symbol,omitempty"`
	PortfolioPercentage *float64   `json:"portfolio_percentage,omitempty"`
	Sector              *string    `json:"sector,omitempty"`
	Country             *string    `json:"country,omitempty"`
	City                *string    `json:"city,omitempty"`
	State               *string    `json:"state,omitempty"`
	MarketCap           *string    `json:"market_cap,omitempty"`
	Beta                *float64   `json:"beta,omitempty"`
	Sharpe              *float64   `json:"sharpe,omitempty"`
	TrailingReturn1m    *float64   `json:"trailing_return_1m,omitempty"`
	AssetType           *AssetType `json:"asset_type,omitempty"`
	TotalGainPercent    *float64   `json:"total_gain_percent,omitempty"`
	Value               *float64   `json:"value,omitempty"`
}

func (h Holding) Percentage() float64 {
	return FloatOrZero(h.PortfolioPercentage)
}

func FloatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func FloatPointer(f float64) *float64 {
	return &f
}

func StringPointer(s string) *string {
	return &s
}

func AssetTypePointer(a AssetType) *AssetType {
	return &a
}
