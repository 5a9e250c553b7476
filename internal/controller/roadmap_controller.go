package controller

import (
	"vidyamitra_backend/internal/service"
	"vidyamitra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	RoadmapService *service.RoadmapService
}

func NewRoadmapController(roadmapService *service.RoadmapService) *RoadmapController {
	return &RoadmapController{RoadmapService: roadmapService}
}

// swagger:model GenerateRoadmapRequest
type GenerateRoadmapRequest struct {
	Goal           string `json:"goal"`
	TimelineMonths int    `json:"timeline_months"`
}

// Generate godoc
// @Summary Generate a career roadmap
// @Description An empty goal is inferred from the latest resume analysis.
// @Tags roadmaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateRoadmapRequest true "goal and timeline"
// @Success 201 {object} util.Response{data=model.Roadmap}
// @Failure 500 {object} util.Response "generation failed"
// @Router /api/roadmaps/generate [post]
func (c *RoadmapController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateRoadmapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roadmap, err := c.RoadmapService.Generate(ctx.Request.Context(), claims.UserID, req.Goal, req.TimelineMonths)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, roadmap)
}

// History godoc
// @Summary List the user's roadmaps
// @Tags roadmaps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Roadmap}
// @Router /api/roadmaps/history [get]
func (c *RoadmapController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.RoadmapService.History(ctx.Request.Context(), claims.UserID))
}
