package domain

// CapTier is one of the six market-capitalization buckets.
type CapTier string

const (
	CapTierMega  CapTier = "Mega-cap"
	CapTierLarge CapTier = "Large-cap"
	CapTierMid   CapTier = "Mid-cap"
	CapTierSmall CapTier = "Small-cap"
	CapTierMicro CapTier = "Micro-cap"
	CapTierNano  CapTier = "Nano-cap"
)

// CapTiers is ordered from largest to smallest.
var CapTiers = []CapTier{
	CapTierMega,
	CapTierLarge,
	CapTierMid,
	CapTierSmall,
	CapTierMicro,
	CapTierNano,
}

// Benchmarks holds the market reference values every dimension compares
// against. It is built once at startup and passed into each computation;
// accessors hand out copies so callers cannot mutate the shared value.
type Benchmarks struct {
	sector         Distribution
	size           Distribution
	momentumReturn float64
}

func NewBenchmarks(sector, size Distribution, momentumReturn float64) Benchmarks {
	return Benchmarks{
		sector:         sector.Copy(),
		size:           size.Copy(),
		momentumReturn: momentumReturn,
	}
}

// DefaultBenchmarks are S&P 500 sector weights, a global size-tier mix and
// the S&P 500 one month return.
func DefaultBenchmarks() Benchmarks {
	return NewBenchmarks(
		Distribution{
			"Information Technology": 27.5,
			"Health Care":            13.5,
			"Financials":             11.0,
			"Consumer Discretionary": 10.0,
			"Communication Services": 9.0,
			"Industrials":            8.5,
			"Consumer Staples":       7.0,
			"Energy":                 4.0,
			"Utilities":              3.5,
			"Real Estate":            3.5,
			"Materials":              2.5,
		},
		Distribution{
			string(CapTierMega):  35,
			string(CapTierLarge): 35,
			string(CapTierMid):   20,
			string(CapTierSmall): 5,
			string(CapTierMicro): 5,
			string(CapTierNano):  0,
		},
		3.5,
	)
}

func (b Benchmarks) Sector() Distribution {
	return b.sector.Copy()
}

func (b Benchmarks) Size() Distribution {
	return b.size.Copy()
}

func (b Benchmarks) MomentumReturn() float64 {
	return b.momentumReturn
}
