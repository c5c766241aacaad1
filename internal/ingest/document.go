package ingest

import (
	"encoding/json"
	"portfoliobias/internal/domain"
)

func DecodeRawPortfolio(body []byte) (*domain.RawPortfolio, error) {
	raw := &domain.RawPortfolio{}
	if err := json.Unmarshal(body, raw); err != nil {
		return nil, domain.NewValidationError("invalid portfolio json: %v", err)
	}
	if raw.Holdings == nil {
		return nil, domain.NewValidationError("portfolio has no holdings")
	}
	return raw, nil
}

func DecodeEnrichedPortfolio(body []byte) (*domain.EnrichedPortfolio, error) {
	p := &domain.EnrichedPortfolio{}
	if err := json.Unmarshal(body, p); err != nil {
		return nil, domain.NewValidationError("invalid portfolio json: %v", err)
	}
	return p, nil
}
