package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"portfoliobias/internal/app"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/ingest"
	"portfoliobias/internal/logger"
	"portfoliobias/internal/repository"
	"portfoliobias/internal/util"
	"strings"
)

// Pipeline moves one uploaded object a stage forward. Objects live in the
// uploads store; analysis output goes to the results store.
type Pipeline struct {
	Uploads    repository.ObjectRepository
	Enricher   ingest.Enricher
	Dispatcher app.DispatcherHandler
	Clock      util.Clock
}

// HandleObject routes by key: a csv upload is parsed into csv-uploads/, a
// csv-uploads/ document is enriched into processed/, and a processed/
// document is analyzed. It returns the key it wrote, if any.
func (p Pipeline) HandleObject(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx).With("key", key)

	switch {
	case strings.HasPrefix(key, "processed/"):
		portfolioID, _, err := ingest.SplitObjectKey(key)
		if err != nil {
			return "", err
		}
		body, err := p.Uploads.Get(ctx, key)
		if err != nil {
			return "", err
		}
		portfolio, err := ingest.DecodeEnrichedPortfolio(body)
		if err != nil {
			return "", err
		}
		result, err := p.Dispatcher.Analyze(ctx, portfolioID, *portfolio)
		if err != nil {
			return "", err
		}
		log.Infow("analysis complete", "portfolioID", portfolioID, "dimensions", len(result.Results))
		return domain.CombinedResultKey(portfolioID), nil

	case strings.HasPrefix(key, "csv-uploads/"):
		return p.Enricher.EnrichObject(ctx, p.Uploads, key)

	case strings.EqualFold(path.Ext(key), ".csv"):
		destination, err := ingest.UploadDestinationKey(key)
		if err != nil {
			return "", err
		}
		body, err := p.Uploads.Get(ctx, key)
		if err != nil {
			return "", err
		}
		parsed, err := ingest.ParsePortfolioCsv(bytes.NewReader(body))
		if err != nil {
			return "", err
		}
		clock := p.Clock
		if clock == nil {
			clock = util.SystemClock
		}
		out, err := util.EncodeJson(ingest.BuildRawPortfolio(parsed, path.Base(key), clock()), "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode portfolio: %w", err)
		}
		if err := p.Uploads.Put(ctx, destination, out); err != nil {
			return "", err
		}
		log.Infow("csv ingested", "destination", destination, "holdings", len(parsed.Holdings))
		return destination, nil
	}

	log.Warnw("ignoring object")
	return "", nil
}
