package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
)

// ByteStorage is the byte-sink collaborator. Save streams the upload and
// reports where it landed and how big it was; durability is its problem,
// not ours.
type ByteStorage interface {
	Save(filename string, r io.Reader) (path string, size int64, err error)
}

type FileService struct {
	Store    repositories.Store
	Activity *ActivityService
	Projects *ProjectService
	Storage  ByteStorage
}

func NewFileService(store repositories.Store, activity *ActivityService, projects *ProjectService, storage ByteStorage) *FileService {
	return &FileService{Store: store, Activity: activity, Projects: projects, Storage: storage}
}

// Upload streams the bytes to storage first and commits the metadata row
// afterwards. A crash in between leaves orphaned bytes; there is no
// reconciliation.
func (s *FileService) Upload(ctx context.Context, principal models.User, projectID int64, filename string, r io.Reader) (models.FileAsset, error) {
	project, err := s.Projects.GetProjectFor(ctx, principal, projectID)
	if err != nil {
		return models.FileAsset{}, err
	}
	if strings.TrimSpace(filename) == "" {
		return models.FileAsset{}, fmt.Errorf("%w: filename is required", apperrors.ErrValidation)
	}

	path, size, err := s.Storage.Save(filename, r)
	if err != nil {
		return models.FileAsset{}, fmt.Errorf("failed to store upload: %v", err)
	}

	var created models.FileAsset
	err = s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Store.CreateFile(ctx, models.FileAsset{
			ProjectID:  project.ID,
			Filename:   filename,
			Size:       size,
			Path:       path,
			UploadedBy: principal.ID,
		})
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "uploaded", models.ObjectFile, created.ID, &project.ID)
	})
	if err != nil {
		return models.FileAsset{}, err
	}
	return created, nil
}

func (s *FileService) ListByProject(ctx context.Context, principal models.User, projectID int64) ([]models.FileAsset, error) {
	if _, err := s.Projects.GetProjectFor(ctx, principal, projectID); err != nil {
		return nil, err
	}
	return s.Store.ListFilesByProject(ctx, projectID)
}

// Delete removes the metadata row only; the stored bytes stay with the
// storage collaborator.
func (s *FileService) Delete(ctx context.Context, principal models.User, id int64) error {
	file, err := s.Store.GetFile(ctx, id)
	if err != nil {
		return err
	}
	project, err := s.Projects.GetProjectFor(ctx, principal, file.ProjectID)
	if err != nil {
		return err
	}

	return s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.Store.DeleteFile(ctx, file.ID); err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "deleted", models.ObjectFile, file.ID, &project.ID)
	})
}
