package repositories

import (
	"context"

	"github.com/flalji123/commodify-backend/models"
)

// Store is the persistence boundary for all entities. Ids are assigned by
// the store, monotonically increasing, and immutable. Lists come back
// newest-first by id, except comments which read oldest-first so a thread
// renders in conversation order.
//
// RunInTransaction groups a mutation with its activity append (and a whole
// cascade) into a single atomic unit: either everything inside fn commits
// or nothing does.
type Store interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	CreateCompany(ctx context.Context, company models.Company) (models.Company, error)
	GetCompany(ctx context.Context, id int64) (models.Company, error)
	ListCompaniesByOwner(ctx context.Context, ownerID int64) ([]models.Company, error)
	UpdateCompany(ctx context.Context, company models.Company) (models.Company, error)
	DeleteCompany(ctx context.Context, id int64) error

	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	GetProject(ctx context.Context, id int64) (models.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID int64) ([]models.Project, error)
	UpdateProject(ctx context.Context, project models.Project) (models.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	ListTasksByProject(ctx context.Context, projectID int64) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	DeleteTasksByProject(ctx context.Context, projectID int64) error

	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, id int64) (models.Comment, error)
	ListCommentsByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	DeleteCommentsByTask(ctx context.Context, taskID int64) error
	DeleteCommentsByTasks(ctx context.Context, taskIDs []int64) error

	CreateMember(ctx context.Context, member models.Member) (models.Member, error)
	GetMember(ctx context.Context, id int64) (models.Member, error)
	ListMembersByProject(ctx context.Context, projectID int64) ([]models.Member, error)
	DeleteMember(ctx context.Context, id int64) error
	DeleteMembersByProject(ctx context.Context, projectID int64) error

	CreateFile(ctx context.Context, file models.FileAsset) (models.FileAsset, error)
	GetFile(ctx context.Context, id int64) (models.FileAsset, error)
	ListFilesByProject(ctx context.Context, projectID int64) ([]models.FileAsset, error)
	DeleteFile(ctx context.Context, id int64) error
	DeleteFilesByProject(ctx context.Context, projectID int64) error

	AppendActivity(ctx context.Context, activity models.Activity) (models.Activity, error)
	ListRecentActivities(ctx context.Context, limit int64) ([]models.Activity, error)
}

var (
	_ Store = (*MongoStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
