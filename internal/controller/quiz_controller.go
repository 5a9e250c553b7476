package controller

import (
	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/service"
	"vidyamitra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model GenerateQuizRequest
type GenerateQuizRequest struct {
	Topic        string `json:"topic" binding:"required"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	QuizID  string             `json:"quiz_id" binding:"required"`
	Answers []model.QuizAnswer `json:"answers"`
}

// Generate godoc
// @Summary Generate a quiz
// @Description Returns the quiz questions without correct answers or
// @Description explanations. Those are revealed on submission.
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateQuizRequest true "topic and difficulty"
// @Success 201 {object} util.Response{data=service.StartedQuiz}
// @Failure 500 {object} util.Response "generation failed"
// @Router /api/quizzes/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Generate(ctx.Request.Context(), claims.UserID, req.Topic, req.Difficulty, req.NumQuestions)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// Submit godoc
// @Summary Submit quiz answers for grading
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitQuizRequest true "quiz id and answers"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "quiz already completed"
// @Router /api/quizzes/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), claims.UserID, req.QuizID, req.Answers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// History godoc
// @Summary List the user's quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.QuizSummary}
// @Router /api/quizzes/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.QuizService.History(ctx.Request.Context(), claims.UserID))
}
