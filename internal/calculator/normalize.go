package calculator

import (
	"portfoliobias/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Normalize rescales a distribution so its weights sum to 100. A
// distribution whose weights sum to zero (this includes the empty one)
// is returned as-is; callers read that as "no data".
func Normalize(d domain.Distribution) domain.Distribution {
	total, err := stats.Sum(d.Values())
	if err != nil || total == 0 {
		return d
	}

	out := make(domain.Distribution, len(d))
	for k, v := range d {
		out[k] = (v / total) * 100
	}
	return out
}

// Round is for display only, comparisons should use the full precision
// values.
func Round(d domain.Distribution, places int32) domain.Distribution {
	out := make(domain.Distribution, len(d))
	for k, v := range d {
		out[k] = RoundFloat(v, places)
	}
	return out
}

func RoundFloat(f float64, places int32) float64 {
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}
