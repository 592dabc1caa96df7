package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flalji123/commodify-backend/apperrors"
)

func TestFileUploadRecordsMetadata(t *testing.T) {
	t.Parallel()

	e := newEnv()
	owner := mustRegister(t, e, "owner@example.com")
	project := mustCreateProject(t, e, owner, "P")

	file, err := e.files.Upload(context.Background(), owner, project.ID, "notes.txt", bytesReader("hello world"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if file.Size != int64(len("hello world")) {
		t.Fatalf("expected size %d, got %d", len("hello world"), file.Size)
	}
	if file.Filename != "notes.txt" {
		t.Fatalf("expected filename notes.txt, got %s", file.Filename)
	}
	if file.UploadedBy != owner.ID {
		t.Fatalf("expected uploader %d, got %d", owner.ID, file.UploadedBy)
	}

	files, err := e.files.ListByProject(context.Background(), owner, project.ID)
	if err != nil {
		t.Fatalf("ListByProject returned error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
}

func TestFileScopedThroughProject(t *testing.T) {
	t.Parallel()

	e := newEnv()
	alice := mustRegister(t, e, "alice@example.com")
	mallory := mustRegister(t, e, "mallory@example.com")
	project := mustCreateProject(t, e, alice, "P")

	file, err := e.files.Upload(context.Background(), alice, project.ID, "secret.txt", bytesReader("secret"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if _, err := e.files.Upload(context.Background(), mallory, project.ID, "x.txt", bytesReader("x")); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign upload, got %v", err)
	}
	if _, err := e.files.ListByProject(context.Background(), mallory, project.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign list, got %v", err)
	}
	if err := e.files.Delete(context.Background(), mallory, file.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}

	if err := e.files.Delete(context.Background(), alice, file.ID); err != nil {
		t.Fatalf("owner Delete returned error: %v", err)
	}
	if _, err := e.store.GetFile(context.Background(), file.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("file metadata survived delete: %v", err)
	}
}
