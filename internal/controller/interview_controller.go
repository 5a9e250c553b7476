package controller

import (
	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/service"
	"vidyamitra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

// swagger:model StartInterviewRequest
type StartInterviewRequest struct {
	TargetRole string `json:"target_role"`
}

// swagger:model SubmitAnswersRequest
type SubmitAnswersRequest struct {
	Answers []model.InterviewAnswer `json:"answers" binding:"required,min=1,dive"`
}

// Start godoc
// @Summary Start a mock interview session
// @Description Generates interview questions for the target role. An empty
// @Description role is inferred from the latest resume analysis.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartInterviewRequest true "target role, may be empty"
// @Success 201 {object} util.Response{data=model.InterviewSession}
// @Failure 500 {object} util.Response "generation failed"
// @Router /api/interviews/start [post]
func (c *InterviewController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.InterviewService.Start(ctx.Request.Context(), claims.UserID, req.TargetRole)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// SubmitAnswers godoc
// @Summary Submit answers for an in-progress session
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Param body body SubmitAnswersRequest true "answers"
// @Success 200 {object} util.Response{data=model.InterviewSession}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "answers already submitted"
// @Router /api/interviews/{id}/submit-answers [post]
func (c *InterviewController) SubmitAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.InterviewService.SubmitAnswers(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Answers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// Evaluate godoc
// @Summary Evaluate a session awaiting evaluation
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=model.InterviewSession}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "session not awaiting evaluation"
// @Router /api/interviews/{id}/evaluate [post]
func (c *InterviewController) Evaluate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.InterviewService.Evaluate(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// History godoc
// @Summary List the user's interview sessions
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.InterviewSession}
// @Router /api/interviews/history [get]
func (c *InterviewController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.InterviewService.History(ctx.Request.Context(), claims.UserID))
}
