package api

import (
	"portfoliobias/internal/domain"
	"portfoliobias/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyzeRequest struct {
	// UniqueIdentifier is generated when empty.
	UniqueIdentifier string                   `json:"uniqueIdentifier"`
	Portfolio        domain.EnrichedPortfolio `json:"portfolio"`
}

type AnalyzeResponse struct {
	UniqueIdentifier string                `json:"uniqueIdentifier"`
	Results          domain.CombinedResult `json:"results"`
}

func (m ApiHandler) analyze(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	ctx := domain.NewCtxWithProfile(c.Request.Context(), profile)
	log := logger.FromContext(ctx)

	var requestBody AnalyzeRequest
	defer func() {
		endProfile()
		if spans, err := profile.ToJsonBytes(); err == nil {
			log.Debugw("analyze profile", "totalMs", profile.TotalMs, "spans", string(spans))
		}
		if m.LatencyTrackingRepository != nil && requestBody.UniqueIdentifier != "" {
			requestID := c.Writer.Header().Get("X-Request-ID")
			if _, err := m.LatencyTrackingRepository.Add(ctx, requestBody.UniqueIdentifier, profile, requestID); err != nil {
				log.Warnf("failed to record latency: %v", err)
			}
		}
	}()

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.UniqueIdentifier == "" {
		requestBody.UniqueIdentifier = uuid.NewString()
	}

	result, err := m.DispatcherHandler.Analyze(ctx, requestBody.UniqueIdentifier, requestBody.Portfolio)
	if err != nil {
		if result != nil {
			for d, failure := range result.Failures {
				log.Warnf("%s failed: %v", d, failure)
			}
		}
		returnErrorJson(err, c)
		return
	}

	c.PureJSON(200, AnalyzeResponse{
		UniqueIdentifier: requestBody.UniqueIdentifier,
		Results:          result.Combined,
	})
}
