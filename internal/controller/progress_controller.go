package controller

import (
	"vidyamitra_backend/internal/service"
	"vidyamitra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Dashboard godoc
// @Summary Aggregated readiness report
// @Description Combines quiz, interview and saved-job data into the overall
// @Description readiness score and per-area averages.
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/progress/dashboard [get]
func (c *ProgressController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.ProgressService.Dashboard(ctx.Request.Context(), claims.UserID))
}
