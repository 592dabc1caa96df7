package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
)

// MemoryStore is a map-backed Store used by the test suites and for local
// runs without a database. Transactions are serialized and rolled back by
// snapshot, which gives the same all-or-nothing behavior the mongo store
// gets from sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	seq map[string]int64

	users      map[int64]models.User
	companies  map[int64]models.Company
	projects   map[int64]models.Project
	tasks      map[int64]models.Task
	comments   map[int64]models.Comment
	members    map[int64]models.Member
	files      map[int64]models.FileAsset
	activities map[int64]models.Activity
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seq:        make(map[string]int64),
		users:      make(map[int64]models.User),
		companies:  make(map[int64]models.Company),
		projects:   make(map[int64]models.Project),
		tasks:      make(map[int64]models.Task),
		comments:   make(map[int64]models.Comment),
		members:    make(map[int64]models.Member),
		files:      make(map[int64]models.FileAsset),
		activities: make(map[int64]models.Activity),
	}
}

type memorySnapshot struct {
	seq        map[string]int64
	users      map[int64]models.User
	companies  map[int64]models.Company
	projects   map[int64]models.Project
	tasks      map[int64]models.Task
	comments   map[int64]models.Comment
	members    map[int64]models.Member
	files      map[int64]models.FileAsset
	activities map[int64]models.Activity
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *MemoryStore) snapshot() memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memorySnapshot{
		seq:        copyMap(s.seq),
		users:      copyMap(s.users),
		companies:  copyMap(s.companies),
		projects:   copyMap(s.projects),
		tasks:      copyMap(s.tasks),
		comments:   copyMap(s.comments),
		members:    copyMap(s.members),
		files:      copyMap(s.files),
		activities: copyMap(s.activities),
	}
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snap.seq
	s.users = snap.users
	s.companies = snap.companies
	s.projects = snap.projects
	s.tasks = snap.tasks
	s.comments = snap.comments
	s.members = snap.members
	s.files = snap.files
	s.activities = snap.activities
}

func (s *MemoryStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *MemoryStore) nextID(sequence string) int64 {
	s.seq[sequence]++
	return s.seq[sequence]
}

// cloneTask copies pointer fields so callers never alias stored state.
func cloneTask(t models.Task) models.Task {
	out := t
	if t.AssigneeID != nil {
		v := *t.AssigneeID
		out.AssigneeID = &v
	}
	if t.ParentID != nil {
		v := *t.ParentID
		out.ParentID = &v
	}
	return out
}

func cloneActivity(a models.Activity) models.Activity {
	out := a
	if a.ProjectID != nil {
		v := *a.ProjectID
		out.ProjectID = &v
	}
	return out
}

// Users

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, apperrors.ErrConflict
		}
	}
	user.ID = s.nextID("users")
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, apperrors.ErrNotFound
}

// Companies

func (s *MemoryStore) CreateCompany(_ context.Context, company models.Company) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company.ID = s.nextID("companies")
	company.CreatedAt = time.Now().UTC()
	s.companies[company.ID] = company
	return company, nil
}

func (s *MemoryStore) GetCompany(_ context.Context, id int64) (models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.companies[id]
	if !ok {
		return models.Company{}, apperrors.ErrNotFound
	}
	return company, nil
}

func (s *MemoryStore) ListCompaniesByOwner(_ context.Context, ownerID int64) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Company, 0)
	for _, company := range s.companies {
		if company.CreatedBy == ownerID {
			out = append(out, company)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpdateCompany(_ context.Context, company models.Company) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[company.ID]; !ok {
		return models.Company{}, apperrors.ErrNotFound
	}
	s.companies[company.ID] = company
	return company, nil
}

func (s *MemoryStore) DeleteCompany(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.companies, id)
	return nil
}

// Projects

func (s *MemoryStore) CreateProject(_ context.Context, project models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project.ID = s.nextID("projects")
	project.CreatedAt = time.Now().UTC()
	s.projects[project.ID] = project
	return project, nil
}

func (s *MemoryStore) GetProject(_ context.Context, id int64) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return models.Project{}, apperrors.ErrNotFound
	}
	return project, nil
}

func (s *MemoryStore) ListProjectsByOwner(_ context.Context, ownerID int64) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0)
	for _, project := range s.projects {
		if project.CreatedBy == ownerID {
			out = append(out, project)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpdateProject(_ context.Context, project models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[project.ID]; !ok {
		return models.Project{}, apperrors.ErrNotFound
	}
	s.projects[project.ID] = project
	return project, nil
}

func (s *MemoryStore) DeleteProject(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

// Tasks

func (s *MemoryStore) CreateTask(_ context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID("tasks")
	task.CreatedAt = time.Now().UTC()
	s.tasks[task.ID] = cloneTask(task)
	return task, nil
}

func (s *MemoryStore) GetTask(_ context.Context, id int64) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, apperrors.ErrNotFound
	}
	return cloneTask(task), nil
}

func (s *MemoryStore) ListTasksByProject(_ context.Context, projectID int64) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0)
	for _, task := range s.tasks {
		if task.ProjectID == projectID {
			out = append(out, cloneTask(task))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpdateTask(_ context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return models.Task{}, apperrors.ErrNotFound
	}
	s.tasks[task.ID] = cloneTask(task)
	return task, nil
}

func (s *MemoryStore) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) DeleteTasksByProject(_ context.Context, projectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, task := range s.tasks {
		if task.ProjectID == projectID {
			delete(s.tasks, id)
		}
	}
	return nil
}

// Comments

func (s *MemoryStore) CreateComment(_ context.Context, comment models.Comment) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.nextID("comments")
	comment.CreatedAt = time.Now().UTC()
	s.comments[comment.ID] = comment
	return comment, nil
}

func (s *MemoryStore) GetComment(_ context.Context, id int64) (models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return models.Comment{}, apperrors.ErrNotFound
	}
	return comment, nil
}

func (s *MemoryStore) ListCommentsByTask(_ context.Context, taskID int64) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, 0)
	for _, comment := range s.comments {
		if comment.TaskID == taskID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) DeleteComment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *MemoryStore) DeleteCommentsByTask(_ context.Context, taskID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, comment := range s.comments {
		if comment.TaskID == taskID {
			delete(s.comments, id)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteCommentsByTasks(_ context.Context, taskIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make(map[int64]bool, len(taskIDs))
	for _, id := range taskIDs {
		ids[id] = true
	}
	for id, comment := range s.comments {
		if ids[comment.TaskID] {
			delete(s.comments, id)
		}
	}
	return nil
}

// Members

func (s *MemoryStore) CreateMember(_ context.Context, member models.Member) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member.ID = s.nextID("members")
	member.CreatedAt = time.Now().UTC()
	s.members[member.ID] = member
	return member, nil
}

func (s *MemoryStore) GetMember(_ context.Context, id int64) (models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.members[id]
	if !ok {
		return models.Member{}, apperrors.ErrNotFound
	}
	return member, nil
}

func (s *MemoryStore) ListMembersByProject(_ context.Context, projectID int64) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Member, 0)
	for _, member := range s.members {
		if member.ProjectID == projectID {
			out = append(out, member)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryStore) DeleteMember(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.members, id)
	return nil
}

func (s *MemoryStore) DeleteMembersByProject(_ context.Context, projectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, member := range s.members {
		if member.ProjectID == projectID {
			delete(s.members, id)
		}
	}
	return nil
}

// Files

func (s *MemoryStore) CreateFile(_ context.Context, file models.FileAsset) (models.FileAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file.ID = s.nextID("files")
	file.CreatedAt = time.Now().UTC()
	s.files[file.ID] = file
	return file, nil
}

func (s *MemoryStore) GetFile(_ context.Context, id int64) (models.FileAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, ok := s.files[id]
	if !ok {
		return models.FileAsset{}, apperrors.ErrNotFound
	}
	return file, nil
}

func (s *MemoryStore) ListFilesByProject(_ context.Context, projectID int64) ([]models.FileAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FileAsset, 0)
	for _, file := range s.files {
		if file.ProjectID == projectID {
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryStore) DeleteFile(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.files, id)
	return nil
}

func (s *MemoryStore) DeleteFilesByProject(_ context.Context, projectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, file := range s.files {
		if file.ProjectID == projectID {
			delete(s.files, id)
		}
	}
	return nil
}

// Activities

func (s *MemoryStore) AppendActivity(_ context.Context, activity models.Activity) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity.ID = s.nextID("activities")
	activity.CreatedAt = time.Now().UTC()
	s.activities[activity.ID] = cloneActivity(activity)
	return activity, nil
}

func (s *MemoryStore) ListRecentActivities(_ context.Context, limit int64) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Activity, 0, len(s.activities))
	for _, activity := range s.activities {
		out = append(out, cloneActivity(activity))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
