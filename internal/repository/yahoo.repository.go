package repository

import (
	"context"
	"fmt"
	"portfoliobias/internal/util"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
)

// SymbolQuote is what enrichment knows about a symbol. The profile fields
// (sector through state) are empty when the source has no company profile.
type SymbolQuote struct {
	Symbol    string
	QuoteType string
	Name      string

	Sector   string
	Industry string
	Category string
	Country  string
	City     string
	State    string
}

// EnrichmentRepository looks up per-symbol market data used to enrich an
// uploaded portfolio.
type EnrichmentRepository interface {
	GetQuote(ctx context.Context, symbol string) (*SymbolQuote, error)
	// GetDailyCloses returns closing prices in chronological order.
	GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]float64, error)
}

type yahooRepositoryHandler struct {
	Retry util.RetryPolicy
}

func NewYahooEnrichmentRepository(retry util.RetryPolicy) EnrichmentRepository {
	return yahooRepositoryHandler{
		Retry: retry,
	}
}

func (h yahooRepositoryHandler) GetQuote(ctx context.Context, symbol string) (*SymbolQuote, error) {
	var out *SymbolQuote
	err := util.Retry(ctx, h.Retry, "quote "+symbol, func(ctx context.Context) error {
		q, err := quote.Get(symbol)
		if err != nil {
			return err
		}
		if q == nil {
			return fmt.Errorf("symbol %s not found", symbol)
		}
		// the v7 quote endpoint has no asset profile, so sector and HQ stay
		// empty and enrichment falls back to Unknown
		out = &SymbolQuote{
			Symbol:    symbol,
			QuoteType: string(q.QuoteType),
			Name:      q.ShortName,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (h yahooRepositoryHandler) GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]float64, error) {
	var closes []float64
	err := util.Retry(ctx, h.Retry, "chart "+symbol, func(ctx context.Context) error {
		params := &chart.Params{
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Symbol:   symbol,
			Interval: datetime.OneDay,
		}
		iter := chart.Get(params)

		closes = []float64{}
		for iter.Next() {
			closes = append(closes, iter.Bar().Close.InexactFloat64())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get prices for %s: %w", symbol, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closes, nil
}
