package model

import "time"

const (
	QuizStatusPending   = "pending"
	QuizStatusCompleted = "completed"
)

// QuizQuestion carries the grading fields. They must never reach the caller
// before submission; SafeQuestion is the external projection.
type QuizQuestion struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// SafeQuestion is a QuizQuestion with the grading fields stripped.
type SafeQuestion struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

func (q QuizQuestion) Safe() SafeQuestion {
	return SafeQuestion{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Options:      q.Options,
	}
}

// QuizAnswer is one submitted answer.
type QuizAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// QuizItemResult is the graded outcome of a single question.
type QuizItemResult struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// swagger:model
type Quiz struct {
	UUIDBase
	UserID          uint             `gorm:"index;not null" json:"userId"`
	Topic           string           `gorm:"type:varchar(191)" json:"topic"`
	Difficulty      string           `gorm:"type:varchar(32)" json:"difficulty"`
	Questions       []QuizQuestion   `gorm:"serializer:json" json:"-"`
	UserAnswers     []QuizAnswer     `gorm:"serializer:json" json:"userAnswers,omitempty"`
	DetailedResults []QuizItemResult `gorm:"serializer:json" json:"detailedResults,omitempty"`
	ScorePercentage *float64         `json:"scorePercentage,omitempty"`
	Status          string           `gorm:"type:varchar(32);index" json:"status"`
}

func (q *Quiz) RecordID() string           { return q.ID }
func (q *Quiz) SetRecordID(id string)      { q.ID = id }
func (q *Quiz) OwnerID() uint              { return q.UserID }
func (q *Quiz) CreatedTime() time.Time     { return q.CreatedAt }
func (q *Quiz) SetCreatedTime(t time.Time) { q.CreatedAt = t }
