package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/pkg/logger"

	"go.uber.org/zap"
)

// ResumeService analyzes resume text against a target role and persists the
// result. The stored analysis feeds the role auto-fill used by interviews,
// roadmaps and training plans.
type ResumeService struct {
	ai         *AIService
	resumeRepo *repository.ResumeEvaluationRepository
	storage    *StorageService
}

func NewResumeService(ai *AIService, resumeRepo *repository.ResumeEvaluationRepository, storage *StorageService) *ResumeService {
	return &ResumeService{ai: ai, resumeRepo: resumeRepo, storage: storage}
}

type generatedResumeAnalysis struct {
	model.ResumeAnalysis
}

func (g *generatedResumeAnalysis) Validate() error {
	if len(g.Strengths) == 0 && len(g.SkillGaps) == 0 && len(g.SuggestedRoles) == 0 {
		return fmt.Errorf("analysis is empty")
	}
	return nil
}

// Analyze evaluates resume text, optionally archives the original file, and
// persists the analysis. A failed file upload is logged and skipped; the
// analysis itself must succeed.
func (s *ResumeService) Analyze(ctx context.Context, userID uint, resumeText, targetRole, filename string, file io.Reader, fileSize int64) (*model.ResumeEvaluation, error) {
	systemPrompt := "You are a resume reviewer for job seekers. Respond with JSON only, no prose."
	var prompt string
	if strings.TrimSpace(targetRole) != "" {
		prompt = fmt.Sprintf(
			`Evaluate the following resume against the role of %q. Set "target_role_evaluated" to that role.`, targetRole)
	} else {
		prompt = `Evaluate the following resume. Leave "target_role_evaluated" empty and suggest suitable roles instead.`
	}
	prompt += fmt.Sprintf(`
List the candidate's strengths, 2 to 5 suitable roles, and the skill gaps to close.
Return JSON of the form {"strengths": ["..."], "target_role_evaluated": "...", "suggested_roles": ["..."], "skill_gaps": ["..."]}.

Resume:
%s`, resumeText)

	var analysis generatedResumeAnalysis
	if err := s.ai.GenerateJSON(ctx, "resume_analysis", systemPrompt, prompt, &analysis); err != nil {
		return nil, err
	}

	eval := &model.ResumeEvaluation{
		UserID:   userID,
		Filename: filename,
		Analysis: analysis.ResumeAnalysis,
	}

	if file != nil && filename != "" {
		objectName := fmt.Sprintf("resumes/%d/%s-%s", userID, model.GenerateUUID(), filename)
		url, err := s.storage.Upload(ctx, objectName, file, fileSize, "application/octet-stream")
		if err != nil {
			logger.Log.Warn("resume file upload failed, keeping analysis without file",
				zap.Uint("userId", userID), zap.String("filename", filename), zap.Error(err))
		} else {
			eval.FileURL = url
		}
	}

	if err := s.resumeRepo.Create(ctx, eval); err != nil {
		return nil, err
	}

	return eval, nil
}

// History lists the user's past resume evaluations, newest first.
func (s *ResumeService) History(ctx context.Context, userID uint) ([]*model.ResumeEvaluation, error) {
	return s.resumeRepo.ListByUser(ctx, userID)
}
