package services_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
	"github.com/flalji123/commodify-backend/services"
)

// env bundles one store with every service wired the way main does it.
type env struct {
	store    *repositories.MemoryStore
	tokens   *services.TokenService
	auth     *services.AuthService
	activity *services.ActivityService
	company  *services.CompanyService
	projects *services.ProjectService
	tasks    *services.TaskService
	comments *services.CommentService
	members  *services.MemberService
	files    *services.FileService
}

func newEnv() *env {
	store := repositories.NewMemoryStore()
	tokens := services.NewTokenService("test-secret")
	activity := services.NewActivityService(store)
	projects := services.NewProjectService(store, activity)
	tasks := services.NewTaskService(store, activity, projects)
	files := services.NewFileService(store, activity, projects, discardStorage{})
	return &env{
		store:    store,
		tokens:   tokens,
		auth:     services.NewAuthService(store, tokens),
		activity: activity,
		company:  services.NewCompanyService(store, activity),
		projects: projects,
		tasks:    tasks,
		comments: services.NewCommentService(store, activity, tasks),
		members:  services.NewMemberService(store, activity, projects),
		files:    files,
	}
}

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}

// discardStorage counts the bytes and throws them away.
type discardStorage struct{}

func (discardStorage) Save(filename string, r io.Reader) (string, int64, error) {
	n, err := io.Copy(io.Discard, r)
	return "mem://" + filename, n, err
}

func mustRegister(t *testing.T, e *env, email string) models.User {
	t.Helper()

	if _, err := e.auth.Register(context.Background(), email, "password123"); err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	user, err := e.store.GetUserByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("failed to load registered user: %v", err)
	}
	return user
}

func mustCreateProject(t *testing.T, e *env, owner models.User, title string) models.Project {
	t.Helper()

	project, err := e.projects.Create(context.Background(), owner, services.ProjectInput{Title: title})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

func mustCreateTask(t *testing.T, e *env, owner models.User, projectID int64, title string) models.Task {
	t.Helper()

	task, err := e.tasks.Create(context.Background(), owner, projectID, services.TaskInput{Title: title})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func mustCreateComment(t *testing.T, e *env, author models.User, taskID int64, body string) models.Comment {
	t.Helper()

	comment, err := e.comments.Create(context.Background(), author, taskID, body)
	if err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}
