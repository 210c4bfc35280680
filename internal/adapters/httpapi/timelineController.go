package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TimelineController struct {
	tc     TimelineUseCase
	logger *zap.Logger
}

func NewTimelineController(tc TimelineUseCase, logger *zap.Logger) *TimelineController {
	return &TimelineController{tc: tc, logger: logger}
}

func (ctrl *TimelineController) GetTimeline(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid number format"})
		return
	}

	posts, err := ctrl.tc.ListTimeline(c.Request.Context(), n)
	if err != nil {
		writeError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
