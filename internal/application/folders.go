package application

import (
	"context"
	"fmt"

	"curator/internal/ports"
)

// FolderPathResolver materializes folders in the remote hierarchy, creating
// missing segments lazily. Repeated calls with the same arguments are safe:
// an existing folder is returned rather than duplicated (absent a concurrent
// creator between the lookup and the create, which the single-worker run
// model rules out).
type FolderPathResolver struct {
	storage ports.Storage
	memo    map[string]string // parentID+name -> folderID, per-run
}

// NewFolderPathResolver creates a resolver over the given storage service.
func NewFolderPathResolver(storage ports.Storage) *FolderPathResolver {
	return &FolderPathResolver{
		storage: storage,
		memo:    make(map[string]string),
	}
}

// EnsureFolder returns the id of the folder with the given name under the
// given parent (empty parentID means the root), creating it if it does not
// exist. Resolved ids are memoized for the lifetime of the resolver so a run
// does not re-query segments it already materialized.
func (r *FolderPathResolver) EnsureFolder(ctx context.Context, name, parentID string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("ensure folder: empty name")
	}

	key := parentID + "\x00" + name
	if id, ok := r.memo[key]; ok {
		return id, nil
	}

	folder, err := r.storage.FindFolder(ctx, name, parentID)
	if err != nil {
		return "", fmt.Errorf("find folder %q: %w", name, err)
	}
	if folder == nil {
		folder, err = r.storage.CreateFolder(ctx, name, parentID)
		if err != nil {
			return "", fmt.Errorf("create folder %q: %w", name, err)
		}
	}

	r.memo[key] = folder.ID
	return folder.ID, nil
}
