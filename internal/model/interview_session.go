package model

import "time"

const (
	InterviewStatusInProgress        = "in_progress"
	InterviewStatusPendingEvaluation = "pending_evaluation"
	InterviewStatusCompleted         = "completed"
)

// InterviewQuestion is one generated question with its tracking id.
type InterviewQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// InterviewAnswer maps a question id to the candidate's answer text.
type InterviewAnswer struct {
	QuestionID string `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

type EvaluationScores struct {
	Tone       int `json:"tone"`
	Confidence int `json:"confidence"`
	Accuracy   int `json:"accuracy"`
}

// AnswerEvaluation is the per-answer result of the evaluation fan-out.
type AnswerEvaluation struct {
	QuestionID string           `json:"question_id"`
	Scores     EvaluationScores `json:"scores"`
	Feedback   string           `json:"feedback"`
}

// DashboardSummary is the whole-session verdict shown on the dashboard.
type DashboardSummary struct {
	OverallScoreOutOf10 float64  `json:"overall_score_out_of_10"`
	KeyStrengths        []string `json:"key_strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	FinalVerdict        string   `json:"final_verdict"`
}

type InterviewEvaluation struct {
	IndividualEvaluations []AnswerEvaluation `json:"individual_evaluations"`
	DashboardSummary      DashboardSummary   `json:"dashboard_summary"`
}

// swagger:model
type InterviewSession struct {
	UUIDBase
	UserID      uint                 `gorm:"index;not null" json:"userId"`
	TargetRole  string               `gorm:"type:varchar(191)" json:"targetRole"`
	Questions   []InterviewQuestion  `gorm:"serializer:json" json:"questions"`
	UserAnswers []InterviewAnswer    `gorm:"serializer:json" json:"userAnswers,omitempty"`
	Evaluation  *InterviewEvaluation `gorm:"serializer:json" json:"evaluationData,omitempty"`
	Status      string               `gorm:"type:varchar(32);index" json:"status"`
}

func (s *InterviewSession) RecordID() string           { return s.ID }
func (s *InterviewSession) SetRecordID(id string)      { s.ID = id }
func (s *InterviewSession) OwnerID() uint              { return s.UserID }
func (s *InterviewSession) CreatedTime() time.Time     { return s.CreatedAt }
func (s *InterviewSession) SetCreatedTime(t time.Time) { s.CreatedAt = t }
