package model

import "time"

// RoadmapStatusReady is the single roadmap status: a roadmap is created fully
// populated and never transitions.
const RoadmapStatusReady = "ready"

const (
	MilestoneStatusCompleted = "completed"
	MilestoneStatusCurrent   = "current"
	MilestoneStatusUpcoming  = "upcoming"
)

// Milestone is one step of a generated career roadmap.
type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Status      string `json:"status"`
}

// RecommendedVideo is an external tutorial attached during enrichment.
type RecommendedVideo struct {
	Title   string `json:"title"`
	VideoID string `json:"video_id"`
	URL     string `json:"url"`
}

// swagger:model
type Roadmap struct {
	UUIDBase
	UserID            uint               `gorm:"index;not null" json:"userId"`
	Goal              string             `gorm:"type:varchar(191)" json:"goal"`
	TimelineMonths    int                `json:"timelineMonths"`
	Milestones        []Milestone        `gorm:"serializer:json" json:"milestones"`
	RecommendedVideos []RecommendedVideo `gorm:"serializer:json" json:"recommendedVideos"`
	DashboardImageURL string             `gorm:"type:varchar(512)" json:"dashboardImageUrl,omitempty"`
	Status            string             `gorm:"type:varchar(32)" json:"status"`
}

func (r *Roadmap) RecordID() string           { return r.ID }
func (r *Roadmap) SetRecordID(id string)      { r.ID = id }
func (r *Roadmap) OwnerID() uint              { return r.UserID }
func (r *Roadmap) CreatedTime() time.Time     { return r.CreatedAt }
func (r *Roadmap) SetCreatedTime(t time.Time) { r.CreatedAt = t }
