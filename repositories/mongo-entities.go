package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
)

// Users

func (s *MongoStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	id, err := s.nextID(ctx, "users")
	if err != nil {
		return models.User{}, err
	}
	user.ID = id
	user.CreatedAt = time.Now().UTC()
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// Companies

func (s *MongoStore) CreateCompany(ctx context.Context, company models.Company) (models.Company, error) {
	id, err := s.nextID(ctx, "companies")
	if err != nil {
		return models.Company{}, err
	}
	company.ID = id
	company.CreatedAt = time.Now().UTC()
	if _, err := s.companies.InsertOne(ctx, company); err != nil {
		return models.Company{}, translate(err)
	}
	return company, nil
}

func (s *MongoStore) GetCompany(ctx context.Context, id int64) (models.Company, error) {
	var company models.Company
	err := s.companies.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		return models.Company{}, translate(err)
	}
	return company, nil
}

func (s *MongoStore) ListCompaniesByOwner(ctx context.Context, ownerID int64) ([]models.Company, error) {
	return findAll[models.Company](ctx, s.companies, bson.M{"createdBy": ownerID}, newestFirst)
}

func (s *MongoStore) UpdateCompany(ctx context.Context, company models.Company) (models.Company, error) {
	return replaceByID(ctx, s.companies, company.ID, company)
}

func (s *MongoStore) DeleteCompany(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.companies, id)
}

// Projects

func (s *MongoStore) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	id, err := s.nextID(ctx, "projects")
	if err != nil {
		return models.Project{}, err
	}
	project.ID = id
	project.CreatedAt = time.Now().UTC()
	if _, err := s.projects.InsertOne(ctx, project); err != nil {
		return models.Project{}, translate(err)
	}
	return project, nil
}

func (s *MongoStore) GetProject(ctx context.Context, id int64) (models.Project, error) {
	var project models.Project
	err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		return models.Project{}, translate(err)
	}
	return project, nil
}

func (s *MongoStore) ListProjectsByOwner(ctx context.Context, ownerID int64) ([]models.Project, error) {
	return findAll[models.Project](ctx, s.projects, bson.M{"createdBy": ownerID}, newestFirst)
}

func (s *MongoStore) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	return replaceByID(ctx, s.projects, project.ID, project)
}

func (s *MongoStore) DeleteProject(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.projects, id)
}

// Tasks

func (s *MongoStore) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	id, err := s.nextID(ctx, "tasks")
	if err != nil {
		return models.Task{}, err
	}
	task.ID = id
	task.CreatedAt = time.Now().UTC()
	if _, err := s.tasks.InsertOne(ctx, task); err != nil {
		return models.Task{}, translate(err)
	}
	return task, nil
}

func (s *MongoStore) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var task models.Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		return models.Task{}, translate(err)
	}
	return task, nil
}

func (s *MongoStore) ListTasksByProject(ctx context.Context, projectID int64) ([]models.Task, error) {
	return findAll[models.Task](ctx, s.tasks, bson.M{"projectId": projectID}, newestFirst)
}

func (s *MongoStore) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	return replaceByID(ctx, s.tasks, task.ID, task)
}

func (s *MongoStore) DeleteTask(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.tasks, id)
}

func (s *MongoStore) DeleteTasksByProject(ctx context.Context, projectID int64) error {
	_, err := s.tasks.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return fmt.Errorf("failed to delete tasks of project %d: %v", projectID, err)
	}
	return nil
}

// Comments

func (s *MongoStore) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	id, err := s.nextID(ctx, "comments")
	if err != nil {
		return models.Comment{}, err
	}
	comment.ID = id
	comment.CreatedAt = time.Now().UTC()
	if _, err := s.comments.InsertOne(ctx, comment); err != nil {
		return models.Comment{}, translate(err)
	}
	return comment, nil
}

func (s *MongoStore) GetComment(ctx context.Context, id int64) (models.Comment, error) {
	var comment models.Comment
	err := s.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		return models.Comment{}, translate(err)
	}
	return comment, nil
}

// ListCommentsByTask reads oldest-first so a thread renders top-down.
func (s *MongoStore) ListCommentsByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	return findAll[models.Comment](ctx, s.comments, bson.M{"taskId": taskID}, oldestFirst)
}

func (s *MongoStore) DeleteComment(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.comments, id)
}

func (s *MongoStore) DeleteCommentsByTask(ctx context.Context, taskID int64) error {
	_, err := s.comments.DeleteMany(ctx, bson.M{"taskId": taskID})
	if err != nil {
		return fmt.Errorf("failed to delete comments of task %d: %v", taskID, err)
	}
	return nil
}

func (s *MongoStore) DeleteCommentsByTasks(ctx context.Context, taskIDs []int64) error {
	if len(taskIDs) == 0 {
		return nil
	}
	_, err := s.comments.DeleteMany(ctx, bson.M{"taskId": bson.M{"$in": taskIDs}})
	if err != nil {
		return fmt.Errorf("failed to delete comments of tasks: %v", err)
	}
	return nil
}

// Members

func (s *MongoStore) CreateMember(ctx context.Context, member models.Member) (models.Member, error) {
	id, err := s.nextID(ctx, "members")
	if err != nil {
		return models.Member{}, err
	}
	member.ID = id
	member.CreatedAt = time.Now().UTC()
	if _, err := s.members.InsertOne(ctx, member); err != nil {
		return models.Member{}, translate(err)
	}
	return member, nil
}

func (s *MongoStore) GetMember(ctx context.Context, id int64) (models.Member, error) {
	var member models.Member
	err := s.members.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		return models.Member{}, translate(err)
	}
	return member, nil
}

func (s *MongoStore) ListMembersByProject(ctx context.Context, projectID int64) ([]models.Member, error) {
	return findAll[models.Member](ctx, s.members, bson.M{"projectId": projectID}, newestFirst)
}

func (s *MongoStore) DeleteMember(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.members, id)
}

func (s *MongoStore) DeleteMembersByProject(ctx context.Context, projectID int64) error {
	_, err := s.members.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return fmt.Errorf("failed to delete members of project %d: %v", projectID, err)
	}
	return nil
}

// Files

func (s *MongoStore) CreateFile(ctx context.Context, file models.FileAsset) (models.FileAsset, error) {
	id, err := s.nextID(ctx, "files")
	if err != nil {
		return models.FileAsset{}, err
	}
	file.ID = id
	file.CreatedAt = time.Now().UTC()
	if _, err := s.files.InsertOne(ctx, file); err != nil {
		return models.FileAsset{}, translate(err)
	}
	return file, nil
}

func (s *MongoStore) GetFile(ctx context.Context, id int64) (models.FileAsset, error) {
	var file models.FileAsset
	err := s.files.FindOne(ctx, bson.M{"_id": id}).Decode(&file)
	if err != nil {
		return models.FileAsset{}, translate(err)
	}
	return file, nil
}

func (s *MongoStore) ListFilesByProject(ctx context.Context, projectID int64) ([]models.FileAsset, error) {
	return findAll[models.FileAsset](ctx, s.files, bson.M{"projectId": projectID}, newestFirst)
}

func (s *MongoStore) DeleteFile(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.files, id)
}

func (s *MongoStore) DeleteFilesByProject(ctx context.Context, projectID int64) error {
	_, err := s.files.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return fmt.Errorf("failed to delete files of project %d: %v", projectID, err)
	}
	return nil
}

// Activities

func (s *MongoStore) AppendActivity(ctx context.Context, activity models.Activity) (models.Activity, error) {
	id, err := s.nextID(ctx, "activities")
	if err != nil {
		return models.Activity{}, err
	}
	activity.ID = id
	activity.CreatedAt = time.Now().UTC()
	if _, err := s.activities.InsertOne(ctx, activity); err != nil {
		return models.Activity{}, translate(err)
	}
	return activity, nil
}

func (s *MongoStore) ListRecentActivities(ctx context.Context, limit int64) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(limit)
	return findAll[models.Activity](ctx, s.activities, bson.M{}, opts)
}

// Shared query helpers

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %v", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", coll.Name(), err)
	}
	return out, nil
}

func replaceByID[T any](ctx context.Context, coll *mongo.Collection, id int64, doc T) (T, error) {
	var zero T
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return zero, translate(err)
	}
	if result.MatchedCount == 0 {
		return zero, apperrors.ErrNotFound
	}
	return doc, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id int64) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
