package l2_service

import (
	"context"
	"fmt"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/logger"
	"portfoliobias/internal/repository"
	l1_service "portfoliobias/internal/service/l1"
	"portfoliobias/internal/util"
)

// BiasService computes one dimension for one portfolio and writes its
// result document.
type BiasService interface {
	AnalyzeDimension(ctx context.Context, portfolioID string, dimension domain.Dimension, holdings []domain.Holding) (domain.Result, error)
}

type biasServiceHandler struct {
	ObjectRepository     repository.ObjectRepository
	CommentaryRepository repository.CommentaryRepository
	Benchmarks           domain.Benchmarks
	Clock                util.Clock
	Retry                util.RetryPolicy
}

func NewBiasService(
	objectRepository repository.ObjectRepository,
	commentaryRepository repository.CommentaryRepository,
	benchmarks domain.Benchmarks,
	clock util.Clock,
	retry util.RetryPolicy,
) BiasService {
	if clock == nil {
		clock = util.SystemClock
	}
	return biasServiceHandler{
		ObjectRepository:     objectRepository,
		CommentaryRepository: commentaryRepository,
		Benchmarks:           benchmarks,
		Clock:                clock,
		Retry:                retry,
	}
}

func (h biasServiceHandler) AnalyzeDimension(ctx context.Context, portfolioID string, dimension domain.Dimension, holdings []domain.Holding) (result domain.Result, err error) {
	log := logger.FromContext(ctx).With("portfolioID", portfolioID, "dimension", dimension)

	if profile := domain.GetProfile(ctx); profile != nil {
		span, endSpan := profile.StartSpan(fmt.Sprintf("%s analysis", dimension))
		defer func() {
			span.Failed = err != nil
			endSpan()
		}()
	}

	result, err = l1_service.Compute(l1_service.ComputeInput{
		PortfolioID: portfolioID,
		Dimension:   dimension,
		Holdings:    holdings,
		Benchmarks:  h.Benchmarks,
		Now:         h.Clock(),
	})
	if err != nil {
		return nil, err
	}

	for _, s := range l1_service.SkippedHoldings(result) {
		log.Warnw("skipped holding", "index", s.Index, "symbol", s.Symbol, "reason", s.Reason)
	}

	result, err = h.addCommentary(ctx, result)
	if err != nil {
		return nil, err
	}

	body, err := util.EncodeJson(result, "")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s result: %w", dimension, err)
	}

	key := domain.ResultKey(portfolioID, dimension)
	err = util.Retry(ctx, h.Retry, "results store", func(ctx context.Context) error {
		return h.ObjectRepository.Put(ctx, key, body)
	})
	if err != nil {
		return nil, err
	}
	log.Infof("wrote %s", key)

	return result, nil
}

// addCommentary fills the prose fields of the sector and volatility results.
// Other dimensions pass through unchanged.
func (h biasServiceHandler) addCommentary(ctx context.Context, result domain.Result) (domain.Result, error) {
	switch r := result.(type) {
	case domain.SectorResult:
		analysis, err := h.CommentaryRepository.SectorBiasAnalysis(ctx, r.Sp500Sectors, r.UserSectors, r.SimilarityPercentage)
		if err != nil {
			return nil, asUnavailable("commentary", err)
		}
		r.BiasAnalysis = analysis
		return r, nil
	case domain.VolatilityResult:
		analysis, err := h.CommentaryRepository.RiskAnalysis(ctx, r.WeightedBeta, r.WeightedSharpe)
		if err != nil {
			return nil, asUnavailable("commentary", err)
		}
		r.RiskAnalysis = analysis
		return r, nil
	default:
		return result, nil
	}
}

func asUnavailable(dependency string, err error) error {
	if domain.IsDependencyUnavailable(err) {
		return err
	}
	return domain.DependencyUnavailableError{Dependency: dependency, Err: err}
}
