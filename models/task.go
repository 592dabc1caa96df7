package models

import "time"

type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "Low"
	TaskPriorityNormal   TaskPriority = "Normal"
	TaskPriorityHigh     TaskPriority = "High"
	TaskPriorityCritical TaskPriority = "Critical"
)

// Task belongs to exactly one project and is reachable only through it.
// ParentID points at another task in the same project for subtasks; the
// reference is a plain id, so deleting the parent leaves it dangling.
type Task struct {
	ID          int64        `json:"id" bson:"_id"`
	ProjectID   int64        `json:"projectId" bson:"projectId"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Status      TaskStatus   `json:"status" bson:"status"`
	Progress    int          `json:"progress" bson:"progress"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	DueDate     string       `json:"dueDate" bson:"dueDate"`
	AssigneeID  *int64       `json:"assigneeId,omitempty" bson:"assigneeId,omitempty"`
	ParentID    *int64       `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CreatedBy   int64        `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

type TaskPatch struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *TaskStatus   `json:"status"`
	Progress    *int          `json:"progress"`
	Priority    *TaskPriority `json:"priority"`
	DueDate     *string       `json:"dueDate"`
	AssigneeID  *int64        `json:"assigneeId"`
}

func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.AssigneeID != nil {
		t.AssigneeID = p.AssigneeID
	}
}
