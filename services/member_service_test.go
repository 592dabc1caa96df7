package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
)

func TestMemberAddListRemove(t *testing.T) {
	t.Parallel()

	e := newEnv()
	owner := mustRegister(t, e, "owner@example.com")
	teammate := mustRegister(t, e, "teammate@example.com")
	project := mustCreateProject(t, e, owner, "P")

	member, err := e.members.Add(context.Background(), owner, project.ID, teammate.ID, "")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if member.Role != models.RoleMember {
		t.Fatalf("expected default role Member, got %s", member.Role)
	}

	members, err := e.members.ListByProject(context.Background(), owner, project.ID)
	if err != nil {
		t.Fatalf("ListByProject returned error: %v", err)
	}
	if len(members) != 1 || members[0].UserID != teammate.ID {
		t.Fatalf("unexpected member list: %+v", members)
	}

	if err := e.members.Remove(context.Background(), owner, member.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := e.store.GetMember(context.Background(), member.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("membership survived remove: %v", err)
	}
}

// Membership gives the member no access: the project stays invisible to
// them even after they are added.
func TestMembershipGrantsNoAccess(t *testing.T) {
	t.Parallel()

	e := newEnv()
	owner := mustRegister(t, e, "owner@example.com")
	teammate := mustRegister(t, e, "teammate@example.com")
	project := mustCreateProject(t, e, owner, "P")

	if _, err := e.members.Add(context.Background(), owner, project.ID, teammate.ID, models.RoleAdmin); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if _, err := e.projects.Get(context.Background(), teammate, project.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for member project get, got %v", err)
	}
	if _, err := e.members.ListByProject(context.Background(), teammate, project.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for member listing members, got %v", err)
	}
}

func TestMemberAddValidation(t *testing.T) {
	t.Parallel()

	e := newEnv()
	owner := mustRegister(t, e, "owner@example.com")
	project := mustCreateProject(t, e, owner, "P")

	if _, err := e.members.Add(context.Background(), owner, project.ID, 424242, models.RoleMember); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown user, got %v", err)
	}

	teammate := mustRegister(t, e, "teammate@example.com")
	if _, err := e.members.Add(context.Background(), owner, project.ID, teammate.ID, "Overlord"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}
