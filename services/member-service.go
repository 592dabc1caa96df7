package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
)

// MemberService manages team memberships. Only the project owner can add,
// list, or remove members, and a membership grants the member no access of
// their own in this version.
type MemberService struct {
	Store    repositories.Store
	Activity *ActivityService
	Projects *ProjectService
}

func NewMemberService(store repositories.Store, activity *ActivityService, projects *ProjectService) *MemberService {
	return &MemberService{Store: store, Activity: activity, Projects: projects}
}

func (s *MemberService) Add(ctx context.Context, principal models.User, projectID, userID int64, role models.MemberRole) (models.Member, error) {
	project, err := s.Projects.GetProjectFor(ctx, principal, projectID)
	if err != nil {
		return models.Member{}, err
	}

	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return models.Member{}, fmt.Errorf("%w: unknown member role %q", apperrors.ErrValidation, role)
	}
	if _, err := s.Store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.Member{}, fmt.Errorf("%w: no such user", apperrors.ErrValidation)
		}
		return models.Member{}, err
	}

	var created models.Member
	err = s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Store.CreateMember(ctx, models.Member{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      role,
		})
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "added member", models.ObjectProject, project.ID, &project.ID)
	})
	if err != nil {
		return models.Member{}, err
	}
	return created, nil
}

func (s *MemberService) ListByProject(ctx context.Context, principal models.User, projectID int64) ([]models.Member, error) {
	if _, err := s.Projects.GetProjectFor(ctx, principal, projectID); err != nil {
		return nil, err
	}
	return s.Store.ListMembersByProject(ctx, projectID)
}

func (s *MemberService) Remove(ctx context.Context, principal models.User, id int64) error {
	member, err := s.Store.GetMember(ctx, id)
	if err != nil {
		return err
	}
	project, err := s.Projects.GetProjectFor(ctx, principal, member.ProjectID)
	if err != nil {
		return err
	}

	return s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.Store.DeleteMember(ctx, member.ID); err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "removed member", models.ObjectProject, project.ID, &project.ID)
	})
}
