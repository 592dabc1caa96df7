package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
)

type CommentService struct {
	Store    repositories.Store
	Activity *ActivityService
	Tasks    *TaskService
}

func NewCommentService(store repositories.Store, activity *ActivityService, tasks *TaskService) *CommentService {
	return &CommentService{Store: store, Activity: activity, Tasks: tasks}
}

func (s *CommentService) Create(ctx context.Context, principal models.User, taskID int64, body string) (models.Comment, error) {
	task, err := s.Tasks.GetTaskFor(ctx, principal, taskID)
	if err != nil {
		return models.Comment{}, err
	}
	if strings.TrimSpace(body) == "" {
		return models.Comment{}, fmt.Errorf("%w: comment body is required", apperrors.ErrValidation)
	}

	var created models.Comment
	err = s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Store.CreateComment(ctx, models.Comment{
			TaskID:    task.ID,
			Body:      body,
			CreatedBy: principal.ID,
		})
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "commented", models.ObjectComment, created.ID, &task.ProjectID)
	})
	if err != nil {
		return models.Comment{}, err
	}
	return created, nil
}

// ListByTask reads oldest-first, the one ordering exception in the system.
func (s *CommentService) ListByTask(ctx context.Context, principal models.User, taskID int64) ([]models.Comment, error) {
	if _, err := s.Tasks.GetTaskFor(ctx, principal, taskID); err != nil {
		return nil, err
	}
	return s.Store.ListCommentsByTask(ctx, taskID)
}

func (s *CommentService) Delete(ctx context.Context, principal models.User, id int64) error {
	comment, err := s.Store.GetComment(ctx, id)
	if err != nil {
		return err
	}
	task, err := s.Tasks.GetTaskFor(ctx, principal, comment.TaskID)
	if err != nil {
		return err
	}

	return s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.Store.DeleteComment(ctx, comment.ID); err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "deleted", models.ObjectComment, comment.ID, &task.ProjectID)
	})
}
