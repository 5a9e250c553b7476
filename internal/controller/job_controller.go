package controller

import (
	"vidyamitra_backend/internal/service"
	"vidyamitra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JobController struct {
	JobService *service.JobService
}

func NewJobController(jobService *service.JobService) *JobController {
	return &JobController{JobService: jobService}
}

// swagger:model SaveJobRequest
type SaveJobRequest struct {
	JobTitle    string `json:"job_title" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	JobURL      string `json:"job_url"`
	MatchScore  *int   `json:"match_score" binding:"omitempty,min=0,max=100"`
}

// Save godoc
// @Summary Bookmark a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveJobRequest true "job details"
// @Success 201 {object} util.Response{data=model.SavedJob}
// @Router /api/jobs/save [post]
func (c *JobController) Save(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	job, err := c.JobService.Save(ctx.Request.Context(), claims.UserID, req.JobTitle, req.CompanyName, req.JobURL, req.MatchScore)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, job)
}

// Saved godoc
// @Summary List bookmarked jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SavedJob}
// @Router /api/jobs/saved [get]
func (c *JobController) Saved(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	jobs, err := c.JobService.Saved(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, jobs)
}
