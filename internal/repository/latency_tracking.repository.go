package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/util"
	"time"
)

type latencyTrackingRepositoryHandler struct {
	Store ObjectRepository
	Clock util.Clock
}

// LatencyTrackingRecord is the document written for one profiled analysis.
type LatencyTrackingRecord struct {
	PortfolioID     string          `json:"portfolioId"`
	RequestID       string          `json:"requestId,omitempty"`
	RecordedAt      time.Time       `json:"recordedAt"`
	TotalMs         *int64          `json:"totalMs"`
	ProcessingTimes json.RawMessage `json:"processingTimes"`
}

type LatencyTrackingRepository interface {
	Add(ctx context.Context, portfolioID string, profile *domain.Profile, requestID string) (string, error)
}

func NewLatencyTrackingRepository(store ObjectRepository, clock util.Clock) LatencyTrackingRepository {
	if clock == nil {
		clock = util.SystemClock
	}
	return latencyTrackingRepositoryHandler{Store: store, Clock: clock}
}

func LatencyTrackingKey(portfolioID string, recordedAt time.Time) string {
	return fmt.Sprintf("latency/%s/%d.json", portfolioID, recordedAt.UnixMilli())
}

// Add stores the profile's spans and returns the key it wrote.
func (h latencyTrackingRepositoryHandler) Add(ctx context.Context, portfolioID string, profile *domain.Profile, requestID string) (string, error) {
	bytes, err := profile.ToJsonBytes()
	if err != nil {
		return "", err
	}

	now := h.Clock()
	record := LatencyTrackingRecord{
		PortfolioID:     portfolioID,
		RequestID:       requestID,
		RecordedAt:      now.UTC(),
		TotalMs:         profile.TotalMs,
		ProcessingTimes: bytes,
	}
	body, err := util.EncodeJson(record, "")
	if err != nil {
		return "", err
	}

	key := LatencyTrackingKey(portfolioID, now)
	if err := h.Store.Put(ctx, key, body); err != nil {
		return "", fmt.Errorf("failed to insert latency tracking: %w", err)
	}

	return key, nil
}
