package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/services"
)

func TestProjectDefaultsAndList(t *testing.T) {
	t.Parallel()

	e := newEnv()
	owner := mustRegister(t, e, "owner@example.com")

	first := mustCreateProject(t, e, owner, "First")
	if first.Status != models.ProjectPlanning {
		t.Fatalf("expected default status Planning, got %s", first.Status)
	}
	if first.Priority != models.ProjectPriorityMedium {
		t.Fatalf("expected default priority Medium, got %s", first.Priority)
	}
	second := mustCreateProject(t, e, owner, "Second")

	projects, err := e.projects.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	// Newest first.
	if projects[0].ID != second.ID || projects[1].ID != first.ID {
		t.Fatalf("expected [%d %d], got [%d %d]", second.ID, first.ID, projects[0].ID, projects[1].ID)
	}
}

func TestProjectCrossPrincipalIsNotFound(t *testing.T) {
	t.Parallel()

	e := newEnv()
	alice := mustRegister(t, e, "alice@example.com")
	mallory := mustRegister(t, e, "mallory@example.com")

	project := mustCreateProject(t, e, alice, "Private")

	if _, err := e.projects.Get(context.Background(), mallory, project.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign get, got %v", err)
	}

	title := "Stolen"
	_, err := e.projects.Update(context.Background(), mallory, project.ID, models.ProjectPatch{Title: &title})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign update, got %v", err)
	}

	if err := e.projects.Delete(context.Background(), mallory, project.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign delete, got %v", err)
	}

	// The owner still sees it untouched.
	got, err := e.projects.Get(context.Background(), alice, project.ID)
	if err != nil {
		t.Fatalf("owner Get returned error: %v", err)
	}
	if got.Title != "Private" {
		t.Fatalf("expected title Private, got %s", got.Title)
	}
}

func TestProjectPatchKeepsOmittedFields(t *testing.T) {
	t.Parallel()

	e := newEnv()
	owner := mustRegister(t, e, "owner@example.com")

	project, err := e.projects.Create(context.Background(), owner, services.ProjectInput{
		Title:       "Rollout",
		Description: "Phase one",
		Client:      "Acme",
		Status:      models.ProjectInProgress,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	status := models.ProjectCompleted
	updated, err := e.projects.Update(context.Background(), owner, project.ID, models.ProjectPatch{Status: &status})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Status != models.ProjectCompleted {
		t.Fatalf("expected status Completed, got %s", updated.Status)
	}
	if updated.Title != "Rollout" || updated.Description != "Phase one" || updated.Client != "Acme" {
		t.Fatalf("patch clobbered omitted fields: %+v", updated)
	}
}

func TestProjectDeleteCascades(t *testing.T) {
	t.Parallel()

	e := newEnv()
	owner := mustRegister(t, e, "owner@example.com")
	teammate := mustRegister(t, e, "teammate@example.com")

	project := mustCreateProject(t, e, owner, "Doomed")
	task := mustCreateTask(t, e, owner, project.ID, "Doomed task")
	comment := mustCreateComment(t, e, owner, task.ID, "Doomed comment")

	member, err := e.members.Add(context.Background(), owner, project.ID, teammate.ID, models.RoleViewer)
	if err != nil {
		t.Fatalf("Add member returned error: %v", err)
	}
	file, err := e.files.Upload(context.Background(), owner, project.ID, "report.pdf", bytesReader("doomed bytes"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if err := e.projects.Delete(context.Background(), owner, project.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	ctx := context.Background()
	if _, err := e.store.GetProject(ctx, project.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("project survived cascade: %v", err)
	}
	if _, err := e.store.GetTask(ctx, task.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("task survived cascade: %v", err)
	}
	if _, err := e.store.GetComment(ctx, comment.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("comment survived cascade: %v", err)
	}
	if _, err := e.store.GetMember(ctx, member.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("membership survived cascade: %v", err)
	}
	if _, err := e.store.GetFile(ctx, file.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("file metadata survived cascade: %v", err)
	}
}

func TestProjectCreateRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	e := newEnv()
	owner := mustRegister(t, e, "owner@example.com")

	_, err := e.projects.Create(context.Background(), owner, services.ProjectInput{Title: "X", Status: "Cancelled"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
