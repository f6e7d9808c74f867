package application

import (
	"context"
	"testing"

	"curator/internal/domain"
	"curator/internal/ports"
)

// stubStorage implements ports.Storage with overridable behavior per test.
type stubStorage struct {
	ports.Storage // panics on anything a test does not stub

	fileTags        func(ctx context.Context, fileID string) (map[string]string, error)
	replaceFileTags func(ctx context.Context, fileID string, tags map[string]string) error
	findFolder      func(ctx context.Context, name, parentID string) (*domain.FolderRef, error)
	createFolder    func(ctx context.Context, name, parentID string) (*domain.FolderRef, error)
}

func (s *stubStorage) FileTags(ctx context.Context, fileID string) (map[string]string, error) {
	return s.fileTags(ctx, fileID)
}

func (s *stubStorage) ReplaceFileTags(ctx context.Context, fileID string, tags map[string]string) error {
	return s.replaceFileTags(ctx, fileID, tags)
}

func (s *stubStorage) FindFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error) {
	return s.findFolder(ctx, name, parentID)
}

func (s *stubStorage) CreateFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error) {
	return s.createFolder(ctx, name, parentID)
}

func TestHasTag(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want bool
	}{
		{"tag present", map[string]string{domain.TagPropertyKey: "Philosophy"}, true},
		{"uncategorized counts as tagged", map[string]string{domain.TagPropertyKey: domain.Uncategorized}, true},
		{"unrelated keys only", map[string]string{"origin": "scan"}, false},
		{"no tags", map[string]string{}, false},
		{"nil tags", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &stubStorage{
				fileTags: func(context.Context, string) (map[string]string, error) {
					return tt.tags, nil
				},
			}

			got, err := NewTagStore(storage).HasTag(context.Background(), "file-1")
			if err != nil {
				t.Fatalf("HasTag failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasTag = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetTag_PreservesUnrelatedProperties(t *testing.T) {
	var written map[string]string
	storage := &stubStorage{
		fileTags: func(context.Context, string) (map[string]string, error) {
			return map[string]string{"origin": "scan"}, nil
		},
		replaceFileTags: func(_ context.Context, _ string, tags map[string]string) error {
			written = tags
			return nil
		},
	}

	if err := NewTagStore(storage).SetTag(context.Background(), "file-1", "Philosophy"); err != nil {
		t.Fatalf("SetTag failed: %v", err)
	}

	if written[domain.TagPropertyKey] != "Philosophy" {
		t.Errorf("tag key not written: %v", written)
	}
	if written["origin"] != "scan" {
		t.Errorf("unrelated property lost: %v", written)
	}
}

func TestSetTag_WorksWithoutExistingProperties(t *testing.T) {
	var written map[string]string
	storage := &stubStorage{
		fileTags: func(context.Context, string) (map[string]string, error) {
			return nil, nil
		},
		replaceFileTags: func(_ context.Context, _ string, tags map[string]string) error {
			written = tags
			return nil
		},
	}

	if err := NewTagStore(storage).SetTag(context.Background(), "file-1", domain.Uncategorized); err != nil {
		t.Fatalf("SetTag failed: %v", err)
	}
	if written[domain.TagPropertyKey] != domain.Uncategorized {
		t.Errorf("tag key not written: %v", written)
	}
}
