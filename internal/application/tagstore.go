package application

import (
	"context"
	"fmt"

	"curator/internal/domain"
	"curator/internal/ports"
)

// TagStore reads and writes the tag property on remote file records. Any
// present tag value, Uncategorized included, counts as tagged.
type TagStore struct {
	storage ports.Storage
}

// NewTagStore creates a TagStore over the given storage service.
func NewTagStore(storage ports.Storage) *TagStore {
	return &TagStore{storage: storage}
}

// HasTag reports whether the file's properties include a tag key.
func (t *TagStore) HasTag(ctx context.Context, fileID string) (bool, error) {
	tags, err := t.storage.FileTags(ctx, fileID)
	if err != nil {
		return false, fmt.Errorf("read tags of %s: %w", fileID, err)
	}
	_, ok := tags[domain.TagPropertyKey]
	return ok, nil
}

// SetTag persists the label as the file's tag property. The remote property
// set is read and merged first so only the tag key is touched; unrelated
// properties survive.
func (t *TagStore) SetTag(ctx context.Context, fileID, label string) error {
	tags, err := t.storage.FileTags(ctx, fileID)
	if err != nil {
		return fmt.Errorf("read tags of %s: %w", fileID, err)
	}
	if tags == nil {
		tags = make(map[string]string, 1)
	}
	tags[domain.TagPropertyKey] = label
	if err := t.storage.ReplaceFileTags(ctx, fileID, tags); err != nil {
		return fmt.Errorf("write tag of %s: %w", fileID, err)
	}
	return nil
}
