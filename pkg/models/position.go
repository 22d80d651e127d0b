package models

import "time"

type Category string

const (
	CategoryEngineering Category = "Engineering"
	CategoryProduct     Category = "Product"
	CategoryDesign      Category = "Design"
	CategoryData        Category = "Data"
	CategoryMarketing   Category = "Marketing"
	CategorySales       Category = "Sales"
	CategoryOperations  Category = "Operations"
	CategoryFinance     Category = "Finance"
	CategoryHR          Category = "HR"
)

type WorkType string

const (
	WorkTypeOnSite WorkType = "On-site"
	WorkTypeRemote WorkType = "Remote"
	WorkTypeHybrid WorkType = "Hybrid"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type PositionStatus string

const (
	PositionActive PositionStatus = "active"
	PositionPaused PositionStatus = "paused"
	PositionClosed PositionStatus = "closed"
)

// Position is a job opening owned by one identity.
//
// CandidateCount is a display counter maintained on its own; it is not
// derived from the candidates linked to the position.
type Position struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Category       Category       `json:"category"`
	Description    string         `json:"description"`
	ExperienceMin  int            `json:"experienceMin"`
	ExperienceMax  int            `json:"experienceMax"`
	WorkType       WorkType       `json:"workType"`
	Locations      []string       `json:"locations"`
	Priority       Priority       `json:"priority"`
	CandidateCount int            `json:"candidateCount"`
	Status         PositionStatus `json:"status"`
	Requirements   []string       `json:"requirements"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// PositionInput holds the caller-supplied fields of a new position.
type PositionInput struct {
	Title         string   `json:"title"`
	Category      Category `json:"category"`
	Description   string   `json:"description"`
	ExperienceMin int      `json:"experienceMin"`
	ExperienceMax int      `json:"experienceMax"`
	WorkType      WorkType `json:"workType"`
	Locations     []string `json:"locations"`
	Priority      Priority `json:"priority"`
	Requirements  []string `json:"requirements"`
}

// PositionUpdate is a partial update; nil fields are left untouched.
type PositionUpdate struct {
	Title          *string         `json:"title,omitempty"`
	Category       *Category       `json:"category,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ExperienceMin  *int            `json:"experienceMin,omitempty"`
	ExperienceMax  *int            `json:"experienceMax,omitempty"`
	WorkType       *WorkType       `json:"workType,omitempty"`
	Locations      *[]string       `json:"locations,omitempty"`
	Priority       *Priority       `json:"priority,omitempty"`
	CandidateCount *int            `json:"candidateCount,omitempty"`
	Status         *PositionStatus `json:"status,omitempty"`
	Requirements   *[]string       `json:"requirements,omitempty"`
}

// Apply merges the non-nil fields of u into p.
func (u PositionUpdate) Apply(p *Position) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.ExperienceMin != nil {
		p.ExperienceMin = *u.ExperienceMin
	}
	if u.ExperienceMax != nil {
		p.ExperienceMax = *u.ExperienceMax
	}
	if u.WorkType != nil {
		p.WorkType = *u.WorkType
	}
	if u.Locations != nil {
		p.Locations = append([]string{}, (*u.Locations)...)
	}
	if u.Priority != nil {
		p.Priority = *u.Priority
	}
	if u.CandidateCount != nil {
		p.CandidateCount = *u.CandidateCount
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Requirements != nil {
		p.Requirements = append([]string{}, (*u.Requirements)...)
	}
}

// PositionStats summarizes a position collection for the dashboard.
type PositionStats struct {
	Total           int `json:"total"`
	Active          int `json:"active"`
	TotalCandidates int `json:"totalCandidates"`
	HighPriority    int `json:"highPriority"`
}
