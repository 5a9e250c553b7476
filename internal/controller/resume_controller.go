package controller

import (
	"vidyamitra_backend/internal/service"
	"vidyamitra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResumeController struct {
	ResumeService *service.ResumeService
}

func NewResumeController(resumeService *service.ResumeService) *ResumeController {
	return &ResumeController{ResumeService: resumeService}
}

// swagger:model AnalyzeResumeRequest
type AnalyzeResumeRequest struct {
	ResumeText string `json:"resume_text" binding:"required"`
	TargetRole string `json:"target_role"`
}

// Analyze godoc
// @Summary Analyze resume text
// @Description Accepts JSON with resume text, or multipart form data with a
// @Description "file" part to archive next to the analysis and "resume_text"
// @Description and "target_role" fields.
// @Tags resumes
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.ResumeEvaluation}
// @Failure 500 {object} util.Response "analysis failed"
// @Router /api/resumes/analyze [post]
func (c *ResumeController) Analyze(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if fileHeader, err := ctx.FormFile("file"); err == nil {
		resumeText := ctx.PostForm("resume_text")
		if resumeText == "" {
			util.BadRequest(ctx, "resume_text is required")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			util.BadRequest(ctx, "cannot read uploaded file")
			return
		}
		defer file.Close()

		eval, err := c.ResumeService.Analyze(ctx.Request.Context(), claims.UserID,
			resumeText, ctx.PostForm("target_role"), fileHeader.Filename, file, fileHeader.Size)
		if err != nil {
			util.FromError(ctx, err)
			return
		}
		util.Created(ctx, eval)
		return
	}

	var req AnalyzeResumeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eval, err := c.ResumeService.Analyze(ctx.Request.Context(), claims.UserID,
		req.ResumeText, req.TargetRole, "", nil, 0)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, eval)
}

// History godoc
// @Summary List the user's resume evaluations
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ResumeEvaluation}
// @Router /api/resumes/history [get]
func (c *ResumeController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	evals, err := c.ResumeService.History(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, evals)
}
