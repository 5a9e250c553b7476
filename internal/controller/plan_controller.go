package controller

import (
	"vidyamitra_backend/internal/service"
	"vidyamitra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlanService *service.PlanService
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{PlanService: planService}
}

// swagger:model GeneratePlanRequest
type GeneratePlanRequest struct {
	TargetRole string   `json:"target_role"`
	SkillGaps  []string `json:"skill_gaps"`
}

// Generate godoc
// @Summary Generate a training plan
// @Description Role and skill gaps left empty are filled from the latest
// @Description resume analysis.
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GeneratePlanRequest true "target role and skill gaps"
// @Success 201 {object} util.Response{data=model.TrainingPlan}
// @Failure 500 {object} util.Response "generation failed"
// @Router /api/plans/generate [post]
func (c *PlanController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GeneratePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan, err := c.PlanService.Generate(ctx.Request.Context(), claims.UserID, req.TargetRole, req.SkillGaps)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, plan)
}

// History godoc
// @Summary List the user's training plans
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TrainingPlan}
// @Router /api/plans/history [get]
func (c *PlanController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plans, err := c.PlanService.History(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, plans)
}
