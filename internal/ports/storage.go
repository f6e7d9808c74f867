package ports

import (
	"context"

	"curator/internal/domain"
)

// Storage is the remote file-storage service: a paged file listing plus the
// folder, tag and placement operations the pipeline needs. Implementations
// translate their wire payloads into the typed records in internal/domain at
// this boundary.
type Storage interface {
	// ListFiles returns one page of file records. cursor is the opaque token
	// from the previous page, empty for the first page. When includeTags is
	// true each record's Tag field is populated from the remote tag property.
	ListFiles(ctx context.Context, cursor string, pageSize int, includeTags bool) (*domain.Page, error)

	// Download fetches the full content of a file.
	Download(ctx context.Context, fileID string) ([]byte, error)

	// FileTags returns the file's full tag property set.
	FileTags(ctx context.Context, fileID string) (map[string]string, error)

	// ReplaceFileTags replaces the file's full tag property set. Callers that
	// must preserve unrelated keys read, merge and write back.
	ReplaceFileTags(ctx context.Context, fileID string, tags map[string]string) error

	// FindFolder looks up a folder by exact name under the given parent
	// (empty parentID means the root). Returns nil with no error when absent.
	FindFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error)

	// CreateFolder creates a folder with the given name under the parent.
	CreateFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error)

	// ContainsName reports whether the folder already holds a file with the
	// given display name.
	ContainsName(ctx context.Context, folderID, name string) (bool, error)

	// IsDescendant reports whether the file lies under the folder at any
	// depth. Placement runs use it to leave already-organized files alone.
	IsDescendant(ctx context.Context, fileID, folderID string) (bool, error)

	// CopyFile duplicates the file into the destination folder, preserving
	// its name and tag property only, and returns the new file's id. The
	// original is untouched.
	CopyFile(ctx context.Context, fileID, folderID string) (string, error)

	// MoveFile re-parents the file into the destination folder, removing it
	// from its current location, and returns its id at the new location.
	MoveFile(ctx context.Context, fileID, folderID string) (string, error)
}
