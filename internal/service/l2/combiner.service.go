package l2_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/logger"
	"portfoliobias/internal/repository"
	"portfoliobias/internal/util"
	"strings"
)

// CombinerService merges the five dimension results of a portfolio once
// they all exist. It checks completion and never waits for it.
type CombinerService interface {
	CombineStored(ctx context.Context, portfolioID string) (domain.CombinedResult, error)
	GetCombined(ctx context.Context, portfolioID string) (domain.CombinedResult, error)
}

type combinerServiceHandler struct {
	ObjectRepository repository.ObjectRepository
	Retry            util.RetryPolicy
}

func NewCombinerService(objectRepository repository.ObjectRepository, retry util.RetryPolicy) CombinerService {
	return combinerServiceHandler{
		ObjectRepository: objectRepository,
		Retry:            retry,
	}
}

// Combine unions the per-dimension documents keyed by dimension name. Any
// dimension without a document fails the whole merge.
func Combine(portfolioID string, documents map[domain.Dimension]json.RawMessage) (domain.CombinedResult, error) {
	missing := []string{}
	for _, d := range domain.AllDimensions {
		if _, ok := documents[d]; !ok {
			missing = append(missing, d.ResultFileName())
		}
	}
	if len(missing) > 0 {
		return nil, domain.CombineError{
			PortfolioID: portfolioID,
			Missing:     missing,
		}
	}

	out := domain.CombinedResult{}
	for _, d := range domain.AllDimensions {
		doc := documents[d]
		if !json.Valid(doc) {
			return nil, fmt.Errorf("%s for %s is not valid json", d.ResultFileName(), portfolioID)
		}
		out[string(d)] = doc
	}

	return out, nil
}

func (h combinerServiceHandler) CombineStored(ctx context.Context, portfolioID string) (domain.CombinedResult, error) {
	log := logger.FromContext(ctx).With("portfolioID", portfolioID)
	if strings.TrimSpace(portfolioID) == "" {
		return nil, domain.NewValidationError("unique identifier is required")
	}

	var keys []string
	err := util.Retry(ctx, h.Retry, "results store", func(ctx context.Context) error {
		var err error
		keys, err = h.ObjectRepository.List(ctx, domain.ResultPrefix(portfolioID))
		return err
	})
	if err != nil {
		return nil, err
	}
	present := map[string]bool{}
	for _, k := range keys {
		present[k] = true
	}

	documents := map[domain.Dimension]json.RawMessage{}
	for _, d := range domain.AllDimensions {
		key := domain.ResultKey(portfolioID, d)
		if !present[key] {
			continue
		}
		body, err := h.get(ctx, key)
		if errors.Is(err, domain.ErrResultNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}
		documents[d] = body
	}

	combined, err := Combine(portfolioID, documents)
	if err != nil {
		log.Warnf("combine failed: %v", err)
		return nil, err
	}

	body, err := util.EncodeJson(combined, "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal combined result: %w", err)
	}
	key := domain.CombinedResultKey(portfolioID)
	err = util.Retry(ctx, h.Retry, "results store", func(ctx context.Context) error {
		return h.ObjectRepository.Put(ctx, key, body)
	})
	if err != nil {
		return nil, err
	}
	log.Infof("wrote %s", key)

	return combined, nil
}

func (h combinerServiceHandler) GetCombined(ctx context.Context, portfolioID string) (domain.CombinedResult, error) {
	body, err := h.get(ctx, domain.CombinedResultKey(portfolioID))
	if err != nil {
		return nil, err
	}
	out := domain.CombinedResult{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode combined result for %s: %w", portfolioID, err)
	}
	return out, nil
}

// get retries transient store failures. A missing key comes back as
// domain.ErrResultNotFound.
func (h combinerServiceHandler) get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := util.Retry(ctx, h.Retry, "results store", func(ctx context.Context) error {
		var err error
		body, err = h.ObjectRepository.Get(ctx, key)
		return err
	})
	var unavailable domain.DependencyUnavailableError
	if errors.As(err, &unavailable) && errors.Is(unavailable.Err, domain.ErrResultNotFound) {
		return nil, unavailable.Err
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}
