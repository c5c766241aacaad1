package domain

import "fmt"

type Dimension string

const (
	DimensionSector     Dimension = "sector"
	DimensionLocation   Dimension = "location"
	DimensionSize       Dimension = "size"
	DimensionMomentum   Dimension = "momentum"
	DimensionVolatility Dimension = "volatility"
)

// AllDimensions is ordered the way result files are listed in a combined
// report.
var AllDimensions = []Dimension{
	DimensionLocation,
	DimensionMomentum,
	DimensionSector,
	DimensionSize,
	DimensionVolatility,
}

func ParseDimension(s string) (Dimension, error) {
	for _, d := range AllDimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// ResultFileName is the object name a dimension writes under its portfolio
// prefix, e.g. "sector_results.json".
func (d Dimension) ResultFileName() string {
	return string(d) + "_results.json"
}

func ResultPrefix(portfolioID string) string {
	return fmt.Sprintf("results/%s/", portfolioID)
}

func ResultKey(portfolioID string, d Dimension) string {
	return ResultPrefix(portfolioID) + d.ResultFileName()
}

func CombinedResultKey(portfolioID string) string {
	return fmt.Sprintf("%s_combined_results.json", portfolioID)
}
