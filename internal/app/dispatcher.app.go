package app

import (
	"context"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/logger"
	l1_service "portfoliobias/internal/service/l1"
	l2_service "portfoliobias/internal/service/l2"
	"sync"

	"golang.org/x/sync/errgroup"
)

type DispatcherHandler struct {
	BiasService     l2_service.BiasService
	CombinerService l2_service.CombinerService
}

type AnalyzeResult struct {
	PortfolioID string
	Results     map[domain.Dimension]domain.Result
	// Failures holds the dimensions that did not produce a document.
	Failures map[domain.Dimension]error
	Combined domain.CombinedResult
}

// Analyze fans the five dimension computations out concurrently, waits for
// them to finish and then asks the combiner to merge what was written. A
// failing dimension does not stop the others; it shows up in Failures and
// the run ends with a CombineError naming its file, without combining.
func (h DispatcherHandler) Analyze(ctx context.Context, portfolioID string, portfolio domain.EnrichedPortfolio) (*AnalyzeResult, error) {
	log := logger.FromContext(ctx).With("portfolioID", portfolioID)

	views := l1_service.PrepareViews(portfolio)
	// every holding is in the volatility view, with its percentage
	if err := l1_service.ValidateHoldings(portfolioID, views[domain.DimensionVolatility]); err != nil {
		return nil, err
	}

	if domain.GetProfile(ctx) == nil {
		profile, endProfile := domain.NewProfile()
		defer endProfile()
		ctx = domain.NewCtxWithProfile(ctx, profile)
	}

	out := &AnalyzeResult{
		PortfolioID: portfolioID,
		Results:     map[domain.Dimension]domain.Result{},
		Failures:    map[domain.Dimension]error{},
	}
	mu := sync.Mutex{}

	g := errgroup.Group{}
	for _, d := range domain.AllDimensions {
		d := d
		holdings := views[d]
		g.Go(func() error {
			taskCtx := logger.WithLogger(ctx, log.With("dimension", d))
			result, err := h.BiasService.AnalyzeDimension(taskCtx, portfolioID, d, holdings)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Errorf("%s analysis failed: %v", d, err)
				out.Failures[d] = err
				return nil
			}
			out.Results[d] = result
			return nil
		})
	}
	// tasks record their own failures, Wait only joins them
	_ = g.Wait()

	// a document left in the store by an earlier run must not stand in for a
	// dimension that failed this run
	if missing := failedFiles(out.Failures); len(missing) > 0 {
		err := domain.CombineError{PortfolioID: portfolioID, Missing: missing}
		log.Warnf("not combining: %v", err)
		return out, err
	}

	combined, err := h.CombinerService.CombineStored(ctx, portfolioID)
	if err != nil {
		return out, err
	}
	out.Combined = combined

	return out, nil
}

func failedFiles(failures map[domain.Dimension]error) []string {
	missing := []string{}
	for _, d := range domain.AllDimensions {
		if _, ok := failures[d]; ok {
			missing = append(missing, d.ResultFileName())
		}
	}
	return missing
}
