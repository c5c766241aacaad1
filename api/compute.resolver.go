package api

import (
	"portfoliobias/internal/domain"

	"github.com/gin-gonic/gin"
)

type ComputeRequest struct {
	UniqueIdentifier string           `json:"uniqueIdentifier"`
	Holdings         []domain.Holding `json:"holdings"`
}

// compute runs a single dimension over an already reduced view.
func (m ApiHandler) compute(c *gin.Context) {
	dimension, err := domain.ParseDimension(c.Param("dimension"))
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return
	}

	var requestBody ComputeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	result, err := m.BiasService.AnalyzeDimension(c.Request.Context(), requestBody.UniqueIdentifier, dimension, requestBody.Holdings)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.PureJSON(200, result)
}
