package models

import "time"

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCompleted  ProjectStatus = "Completed"
)

type ProjectPriority string

const (
	ProjectPriorityLow      ProjectPriority = "Low"
	ProjectPriorityMedium   ProjectPriority = "Medium"
	ProjectPriorityHigh     ProjectPriority = "High"
	ProjectPriorityCritical ProjectPriority = "Critical"
)

type Project struct {
	ID          int64           `json:"id" bson:"_id"`
	Title       string          `json:"title" bson:"title"`
	Description string          `json:"description" bson:"description"`
	Client      string          `json:"client" bson:"client"`
	Status      ProjectStatus   `json:"status" bson:"status"`
	Priority    ProjectPriority `json:"priority" bson:"priority"`
	StartDate   string          `json:"startDate" bson:"startDate"`
	EndDate     string          `json:"endDate" bson:"endDate"`
	CreatedBy   int64           `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

func (p ProjectPriority) Valid() bool {
	switch p {
	case ProjectPriorityLow, ProjectPriorityMedium, ProjectPriorityHigh, ProjectPriorityCritical:
		return true
	}
	return false
}

type ProjectPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Client      *string          `json:"client"`
	Status      *ProjectStatus   `json:"status"`
	Priority    *ProjectPriority `json:"priority"`
	StartDate   *string          `json:"startDate"`
	EndDate     *string          `json:"endDate"`
}

func (p ProjectPatch) Apply(pr *Project) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Client != nil {
		pr.Client = *p.Client
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
	if p.Priority != nil {
		pr.Priority = *p.Priority
	}
	if p.StartDate != nil {
		pr.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		pr.EndDate = *p.EndDate
	}
}
