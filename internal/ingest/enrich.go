package ingest

import (
	"context"
	"fmt"
	"portfoliobias/internal/calculator"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/logger"
	"portfoliobias/internal/repository"
	"portfoliobias/internal/util"
	"strings"
	"time"
)

const (
	historyWindow     = 60 * 24 * time.Hour
	minHistoryBars    = 20
	monthTradingDays  = 21
	enrichFailureText = "Failed to retrieve data"
)

type Enricher struct {
	EnrichmentRepository repository.EnrichmentRepository
	Clock                util.Clock
	// Pause is slept between symbols to stay under the quote API's rate
	// limit.
	Pause time.Duration
}

// Enrich looks every holding up one at a time. A failed lookup is written to
// analysis.error and the holding is kept.
func (e Enricher) Enrich(ctx context.Context, raw domain.RawPortfolio) domain.EnrichedPortfolio {
	log := logger.FromContext(ctx)
	clock := e.Clock
	if clock == nil {
		clock = util.SystemClock
	}

	holdings := []domain.EnrichedHolding{}
	for i, h := range raw.Holdings {
		if strings.TrimSpace(h.Symbol) == "" {
			log.Warnf("skipping holding %d with no symbol", i)
			continue
		}
		log.Infof("enriching %s (%d/%d)", h.Symbol, i+1, len(raw.Holdings))

		h.Analysis = e.analyze(ctx, h.Symbol, clock())
		holdings = append(holdings, h)

		if e.Pause > 0 && i < len(raw.Holdings)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(e.Pause):
			}
		}
	}

	return domain.EnrichedPortfolio{
		Metadata:       raw.Metadata,
		AccountSummary: raw.AccountSummary,
		Holdings:       holdings,
		EnrichmentMetadata: &domain.EnrichmentMetadata{
			ProcessedAt:   clock(),
			TotalHoldings: len(holdings),
		},
	}
}

func (e Enricher) analyze(ctx context.Context, symbol string, now time.Time) *domain.HoldingAnalysis {
	log := logger.FromContext(ctx).With("symbol", symbol)
	analysis := &domain.HoldingAnalysis{Timestamp: now}

	q, err := e.EnrichmentRepository.GetQuote(ctx, symbol)
	if err != nil {
		log.Errorf("quote lookup failed: %v", err)
		analysis.Error = enrichFailureText
		return analysis
	}

	assetType := ClassifyAssetType(symbol, q.QuoteType, q.Name)
	analysis.AssetType = &assetType
	switch assetType {
	case domain.AssetTypeStock:
		applyProfile(analysis, q)
	case domain.AssetTypeETF:
		analysis.Category = domain.StringPointer(orUnknown(q.Category))
		return analysis
	default:
		return analysis
	}

	closes, err := e.EnrichmentRepository.GetDailyCloses(ctx, symbol, now.Add(-historyWindow), now)
	if err != nil {
		log.Warnf("failed to calculate momentum: %v", err)
		return analysis
	}
	if r := TrailingReturn1m(closes); r != nil {
		analysis.PriceMomentum = &domain.PriceMomentum{StockReturn1m: *r}
	}

	return analysis
}

// applyProfile sets sector, industry and HQ for a stock. Missing values read
// "Unknown" so the holding still counts in the sector and location views.
func applyProfile(analysis *domain.HoldingAnalysis, q *repository.SymbolQuote) {
	analysis.Sector = domain.StringPointer(orUnknown(q.Sector))
	analysis.Industry = domain.StringPointer(orUnknown(q.Industry))
	analysis.HqLocation = &domain.HqLocation{
		Country: domain.StringPointer(orUnknown(q.Country)),
		City:    domain.StringPointer(orUnknown(q.City)),
	}
	if state := strings.TrimSpace(q.State); state != "" {
		analysis.HqLocation.State = &state
	}
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return calculator.UnknownCategory
	}
	return s
}

// ClassifyAssetType applies name and quote type heuristics, checking cash
// first, then bonds, then ETFs.
func ClassifyAssetType(symbol, quoteType, name string) domain.AssetType {
	quoteType = strings.ToLower(quoteType)
	name = strings.ToLower(name)

	if strings.EqualFold(symbol, "cash") {
		return domain.AssetTypeCash
	}
	for _, word := range []string{"cash", "money market", "treasury bill"} {
		if strings.Contains(name, word) {
			return domain.AssetTypeCash
		}
	}
	if strings.Contains(quoteType, "bond") || strings.Contains(name, "bond") || strings.Contains(name, "fixed income") {
		return domain.AssetTypeBond
	}
	if quoteType == "etf" || strings.Contains(name, "etf") {
		return domain.AssetTypeETF
	}
	return domain.AssetTypeStock
}

// TrailingReturn1m is the percent change from the close 21 bars back (or
// the first bar) to the last close, rounded to 2 places. Fewer than 20 bars
// is not enough history.
func TrailingReturn1m(closes []float64) *float64 {
	if len(closes) < minHistoryBars {
		return nil
	}
	start := closes[0]
	if len(closes) >= monthTradingDays {
		start = closes[len(closes)-monthTradingDays]
	}
	if start == 0 {
		return nil
	}
	current := closes[len(closes)-1]
	r := calculator.RoundFloat((current-start)/start*100, 2)
	return &r
}

// EnrichObject reads a raw portfolio from the uploads area, enriches it and
// writes it under processed/, which is what triggers the dispatcher.
func (e Enricher) EnrichObject(ctx context.Context, store repository.ObjectRepository, sourceKey string) (string, error) {
	portfolioID, baseName, err := SplitObjectKey(sourceKey)
	if err != nil {
		return "", err
	}

	body, err := store.Get(ctx, sourceKey)
	if err != nil {
		return "", err
	}
	raw, err := DecodeRawPortfolio(body)
	if err != nil {
		return "", err
	}

	enriched := e.Enrich(ctx, *raw)
	out, err := util.EncodeJson(enriched, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode enriched portfolio: %w", err)
	}

	key := ProcessedKey(portfolioID, baseName)
	if err := store.Put(ctx, key, out); err != nil {
		return "", err
	}
	return key, nil
}
