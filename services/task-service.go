package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
)

type TaskService struct {
	Store    repositories.Store
	Activity *ActivityService
	Projects *ProjectService
}

func NewTaskService(store repositories.Store, activity *ActivityService, projects *ProjectService) *TaskService {
	return &TaskService{Store: store, Activity: activity, Projects: projects}
}

// GetTaskFor loads the task by id, then requires its owning project to
// resolve for the principal. Tasks carry no ownership of their own; the
// project is the only gate.
func (s *TaskService) GetTaskFor(ctx context.Context, principal models.User, id int64) (models.Task, error) {
	task, err := s.Store.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if _, err := s.Projects.GetProjectFor(ctx, principal, task.ProjectID); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

type TaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Progress    int                 `json:"progress"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     string              `json:"dueDate"`
	AssigneeID  *int64              `json:"assigneeId"`
	ParentID    *int64              `json:"parentId"`
}

func (s *TaskService) Create(ctx context.Context, principal models.User, projectID int64, input TaskInput) (models.Task, error) {
	project, err := s.Projects.GetProjectFor(ctx, principal, projectID)
	if err != nil {
		return models.Task{}, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return models.Task{}, fmt.Errorf("%w: task title is required", apperrors.ErrValidation)
	}
	if input.Status == "" {
		input.Status = models.StatusTodo
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityNormal
	}
	if !input.Status.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown task status %q", apperrors.ErrValidation, input.Status)
	}
	if !input.Priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown task priority %q", apperrors.ErrValidation, input.Priority)
	}
	if input.Progress < 0 || input.Progress > 100 {
		return models.Task{}, fmt.Errorf("%w: progress must be between 0 and 100", apperrors.ErrValidation)
	}
	if input.ParentID != nil {
		parent, err := s.Store.GetTask(ctx, *input.ParentID)
		if err != nil || parent.ProjectID != project.ID {
			return models.Task{}, fmt.Errorf("%w: parent task must belong to the same project", apperrors.ErrValidation)
		}
	}

	var created models.Task
	err = s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Store.CreateTask(ctx, models.Task{
			ProjectID:   project.ID,
			Title:       input.Title,
			Description: input.Description,
			Status:      input.Status,
			Progress:    input.Progress,
			Priority:    input.Priority,
			DueDate:     input.DueDate,
			AssigneeID:  input.AssigneeID,
			ParentID:    input.ParentID,
			CreatedBy:   principal.ID,
		})
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "created", models.ObjectTask, created.ID, &project.ID)
	})
	if err != nil {
		return models.Task{}, err
	}
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, principal models.User, id int64) (models.Task, error) {
	return s.GetTaskFor(ctx, principal, id)
}

func (s *TaskService) ListByProject(ctx context.Context, principal models.User, projectID int64) ([]models.Task, error) {
	if _, err := s.Projects.GetProjectFor(ctx, principal, projectID); err != nil {
		return nil, err
	}
	return s.Store.ListTasksByProject(ctx, projectID)
}

func (s *TaskService) Update(ctx context.Context, principal models.User, id int64, patch models.TaskPatch) (models.Task, error) {
	task, err := s.GetTaskFor(ctx, principal, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Task{}, fmt.Errorf("%w: task title cannot be empty", apperrors.ErrValidation)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown task status %q", apperrors.ErrValidation, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown task priority %q", apperrors.ErrValidation, *patch.Priority)
	}
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		return models.Task{}, fmt.Errorf("%w: progress must be between 0 and 100", apperrors.ErrValidation)
	}
	patch.Apply(&task)

	var updated models.Task
	err = s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Store.UpdateTask(ctx, task)
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "updated", models.ObjectTask, task.ID, &task.ProjectID)
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// Delete removes the task and its comments in one transaction. Child
// subtasks are left alone: their ParentID keeps pointing at the deleted
// id. That is the contract, not an oversight.
func (s *TaskService) Delete(ctx context.Context, principal models.User, id int64) error {
	task, err := s.GetTaskFor(ctx, principal, id)
	if err != nil {
		return err
	}

	return s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.Store.DeleteCommentsByTask(ctx, task.ID); err != nil {
			return err
		}
		if err := s.Store.DeleteTask(ctx, task.ID); err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "deleted", models.ObjectTask, task.ID, &task.ProjectID)
	})
}
