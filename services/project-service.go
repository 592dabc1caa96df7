package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
)

type ProjectService struct {
	Store    repositories.Store
	Activity *ActivityService
}

func NewProjectService(store repositories.Store, activity *ActivityService) *ProjectService {
	return &ProjectService{Store: store, Activity: activity}
}

// GetProjectFor resolves a project for the given principal. Absent and
// not-owned both come back as ErrNotFound so ids cannot be enumerated.
// Task, comment, member and file access all funnel through here.
func (s *ProjectService) GetProjectFor(ctx context.Context, principal models.User, id int64) (models.Project, error) {
	project, err := s.Store.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	if project.CreatedBy != principal.ID {
		return models.Project{}, apperrors.ErrNotFound
	}
	return project, nil
}

type ProjectInput struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Client      string                 `json:"client"`
	Status      models.ProjectStatus   `json:"status"`
	Priority    models.ProjectPriority `json:"priority"`
	StartDate   string                 `json:"startDate"`
	EndDate     string                 `json:"endDate"`
}

func (s *ProjectService) Create(ctx context.Context, principal models.User, input ProjectInput) (models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Project{}, fmt.Errorf("%w: project title is required", apperrors.ErrValidation)
	}
	if input.Status == "" {
		input.Status = models.ProjectPlanning
	}
	if input.Priority == "" {
		input.Priority = models.ProjectPriorityMedium
	}
	if !input.Status.Valid() {
		return models.Project{}, fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, input.Status)
	}
	if !input.Priority.Valid() {
		return models.Project{}, fmt.Errorf("%w: unknown project priority %q", apperrors.ErrValidation, input.Priority)
	}

	var created models.Project
	err := s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Store.CreateProject(ctx, models.Project{
			Title:       input.Title,
			Description: input.Description,
			Client:      input.Client,
			Status:      input.Status,
			Priority:    input.Priority,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
			CreatedBy:   principal.ID,
		})
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "created", models.ObjectProject, created.ID, &created.ID)
	})
	if err != nil {
		return models.Project{}, err
	}
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, principal models.User, id int64) (models.Project, error) {
	return s.GetProjectFor(ctx, principal, id)
}

func (s *ProjectService) List(ctx context.Context, principal models.User) ([]models.Project, error) {
	return s.Store.ListProjectsByOwner(ctx, principal.ID)
}

func (s *ProjectService) Update(ctx context.Context, principal models.User, id int64, patch models.ProjectPatch) (models.Project, error) {
	project, err := s.GetProjectFor(ctx, principal, id)
	if err != nil {
		return models.Project{}, err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Project{}, fmt.Errorf("%w: project title cannot be empty", apperrors.ErrValidation)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Project{}, fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return models.Project{}, fmt.Errorf("%w: unknown project priority %q", apperrors.ErrValidation, *patch.Priority)
	}
	patch.Apply(&project)

	var updated models.Project
	err = s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Store.UpdateProject(ctx, project)
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "updated", models.ObjectProject, project.ID, &project.ID)
	})
	if err != nil {
		return models.Project{}, err
	}
	return updated, nil
}

// Delete cascades over the whole project subtree in one transaction:
// comments of the project's tasks first, then tasks, files, memberships,
// and finally the project row itself. The order mirrors the foreign-key
// dependencies.
func (s *ProjectService) Delete(ctx context.Context, principal models.User, id int64) error {
	project, err := s.GetProjectFor(ctx, principal, id)
	if err != nil {
		return err
	}

	return s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		tasks, err := s.Store.ListTasksByProject(ctx, project.ID)
		if err != nil {
			return err
		}
		taskIDs := make([]int64, 0, len(tasks))
		for _, task := range tasks {
			taskIDs = append(taskIDs, task.ID)
		}

		if err := s.Store.DeleteCommentsByTasks(ctx, taskIDs); err != nil {
			return err
		}
		if err := s.Store.DeleteTasksByProject(ctx, project.ID); err != nil {
			return err
		}
		if err := s.Store.DeleteFilesByProject(ctx, project.ID); err != nil {
			return err
		}
		if err := s.Store.DeleteMembersByProject(ctx, project.ID); err != nil {
			return err
		}
		if err := s.Store.DeleteProject(ctx, project.ID); err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "deleted", models.ObjectProject, project.ID, &project.ID)
	})
}
