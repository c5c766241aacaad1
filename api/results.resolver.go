package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) combine(c *gin.Context) {
	combined, err := m.CombinerService.CombineStored(c.Request.Context(), c.Param("portfolioID"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.PureJSON(200, combined)
}

func (m ApiHandler) getResults(c *gin.Context) {
	combined, err := m.CombinerService.GetCombined(c.Request.Context(), c.Param("portfolioID"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.PureJSON(200, combined)
}
