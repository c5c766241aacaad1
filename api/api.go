package api

import (
	"errors"
	"fmt"
	"portfoliobias/internal/app"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/logger"
	"portfoliobias/internal/repository"
	l2_service "portfoliobias/internal/service/l2"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	DispatcherHandler app.DispatcherHandler
	BiasService       l2_service.BiasService
	CombinerService   l2_service.CombinerService

	// LatencyTrackingRepository is optional; analyze profiles are only
	// logged when it is nil.
	LatencyTrackingRepository repository.LatencyTrackingRepository

	// Close releases whatever the handler's stores hold open.
	Close func() error
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to portfolio bias"})
	})
	router.POST("/analyze", m.analyze)
	router.POST("/compute/:dimension", m.compute)
	router.POST("/combine/:portfolioID", m.combine)
	router.GET("/results/:portfolioID", m.getResults)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

// errorStatus maps the error taxonomy onto HTTP codes.
func errorStatus(err error) int {
	switch {
	case domain.IsValidationError(err):
		return 400
	case domain.IsCombineError(err):
		return 409
	case errors.Is(err, domain.ErrResultNotFound):
		return 404
	case domain.IsDependencyUnavailable(err):
		return 503
	default:
		return 500
	}
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, errorStatus(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Errorw("request failed", "status", code, "error", err.Error())
	body := gin.H{
		"error": err.Error(),
	}
	var combineErr domain.CombineError
	if errors.As(err, &combineErr) {
		body["missing"] = combineErr.Missing
	}
	c.AbortWithStatusJSON(code, body)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.NewString()
	log := logger.FromContext(ctx.Request.Context()).With(
		"requestID", requestID,
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	ctx.Request = ctx.Request.WithContext(logger.WithLogger(ctx.Request.Context(), log))
	ctx.Header("X-Request-ID", requestID)

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("request complete",
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	)
}
