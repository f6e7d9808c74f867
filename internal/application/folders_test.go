package application

import (
	"context"
	"testing"

	"curator/internal/domain"
)

func TestEnsureFolder_ReturnsExistingFolder(t *testing.T) {
	creates := 0
	storage := &stubStorage{
		findFolder: func(_ context.Context, name, parentID string) (*domain.FolderRef, error) {
			return &domain.FolderRef{ID: "existing-id", Name: name, ParentID: parentID}, nil
		},
		createFolder: func(context.Context, string, string) (*domain.FolderRef, error) {
			creates++
			return nil, nil
		},
	}

	id, err := NewFolderPathResolver(storage).EnsureFolder(context.Background(), "2021", "root-id")
	if err != nil {
		t.Fatalf("EnsureFolder failed: %v", err)
	}
	if id != "existing-id" {
		t.Errorf("expected existing-id, got %s", id)
	}
	if creates != 0 {
		t.Errorf("existing folder must not be recreated, got %d creates", creates)
	}
}

func TestEnsureFolder_CreatesMissingFolder(t *testing.T) {
	storage := &stubStorage{
		findFolder: func(context.Context, string, string) (*domain.FolderRef, error) {
			return nil, nil
		},
		createFolder: func(_ context.Context, name, parentID string) (*domain.FolderRef, error) {
			return &domain.FolderRef{ID: "created-id", Name: name, ParentID: parentID}, nil
		},
	}

	id, err := NewFolderPathResolver(storage).EnsureFolder(context.Background(), "July", "year-id")
	if err != nil {
		t.Fatalf("EnsureFolder failed: %v", err)
	}
	if id != "created-id" {
		t.Errorf("expected created-id, got %s", id)
	}
}

func TestEnsureFolder_MemoizesResolvedSegments(t *testing.T) {
	finds := 0
	storage := &stubStorage{
		findFolder: func(_ context.Context, name, parentID string) (*domain.FolderRef, error) {
			finds++
			return &domain.FolderRef{ID: "id-" + name, Name: name, ParentID: parentID}, nil
		},
	}

	resolver := NewFolderPathResolver(storage)
	ctx := context.Background()

	for range 3 {
		if _, err := resolver.EnsureFolder(ctx, "2021", "root-id"); err != nil {
			t.Fatalf("EnsureFolder failed: %v", err)
		}
	}
	if finds != 1 {
		t.Errorf("expected a single lookup for a repeated segment, got %d", finds)
	}

	// Same name under a different parent is a different folder.
	if _, err := resolver.EnsureFolder(ctx, "2021", "other-root"); err != nil {
		t.Fatalf("EnsureFolder failed: %v", err)
	}
	if finds != 2 {
		t.Errorf("expected a fresh lookup under a new parent, got %d", finds)
	}
}

func TestEnsureFolder_RejectsEmptyName(t *testing.T) {
	resolver := NewFolderPathResolver(&stubStorage{})
	if _, err := resolver.EnsureFolder(context.Background(), "", "root-id"); err == nil {
		t.Fatal("expected error for empty folder name")
	}
}
