// Package miniostore implements ports.Storage on an S3-compatible bucket.
//
// Mapping of the files-as-records-and-folders abstraction onto S3: a file's
// id is its object key, its parent is the key's prefix, and a folder is a
// zero-byte marker object whose key ends with a slash. Folder identity is
// the name+parent pair baked into the key, so two same-named folders under
// one parent cannot exist. Tag properties are S3 object tags.
package miniostore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/tags"

	"curator/internal/config"
	"curator/internal/domain"
	"curator/internal/ports"
)

// FolderMimeType marks folder records.
const FolderMimeType = "application/x-directory"

// Store is the S3-backed storage service.
type Store struct {
	core   *minio.Core
	bucket string
}

// Store implements the storage port.
var _ ports.Storage = (*Store)(nil)

// New creates a Store from the storage configuration.
func New(cfg config.Storage) (*Store, error) {
	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connect storage: %w", err)
	}

	return &Store{core: core, bucket: cfg.Bucket}, nil
}

// ListFiles returns one page of file records in key order. The continuation
// token of the underlying bucket listing is the page cursor. Folder marker
// objects are not files and are filtered out.
func (s *Store) ListFiles(ctx context.Context, cursor string, pageSize int, includeTags bool) (*domain.Page, error) {
	res, err := s.core.ListObjectsV2(s.bucket, "", "", cursor, "", pageSize)
	if err != nil {
		return nil, fmt.Errorf("list bucket %s: %w", s.bucket, err)
	}

	page := &domain.Page{NextCursor: res.NextContinuationToken}
	if !res.IsTruncated {
		page.NextCursor = ""
	}

	for _, obj := range res.Contents {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		record := domain.FileRecord{
			ID:          obj.Key,
			Name:        path.Base(obj.Key),
			MimeType:    domain.MimeTypeForExtension(path.Ext(obj.Key)),
			CreatedTime: obj.LastModified.UTC().Format(time.RFC3339),
			Parents:     []string{parentOf(obj.Key)},
		}
		if includeTags {
			fileTags, err := s.FileTags(ctx, obj.Key)
			if err != nil {
				return nil, err
			}
			record.Tag = fileTags[domain.TagPropertyKey]
		}
		page.Files = append(page.Files, record)
	}

	return page, nil
}

// Download fetches the whole object into memory.
func (s *Store) Download(ctx context.Context, fileID string) ([]byte, error) {
	obj, err := s.core.Client.GetObject(ctx, s.bucket, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	return data, nil
}

// FileTags returns the object's tag set.
func (s *Store) FileTags(ctx context.Context, fileID string) (map[string]string, error) {
	t, err := s.core.Client.GetObjectTagging(ctx, s.bucket, fileID, minio.GetObjectTaggingOptions{})
	if err != nil {
		return nil, fmt.Errorf("read tags of %s: %w", fileID, err)
	}
	return t.ToMap(), nil
}

// ReplaceFileTags replaces the object's whole tag set.
func (s *Store) ReplaceFileTags(ctx context.Context, fileID string, set map[string]string) error {
	t, err := tags.NewTags(set, true)
	if err != nil {
		return fmt.Errorf("build tags for %s: %w", fileID, err)
	}
	if err := s.core.Client.PutObjectTagging(ctx, s.bucket, fileID, t, minio.PutObjectTaggingOptions{}); err != nil {
		return fmt.Errorf("write tags of %s: %w", fileID, err)
	}
	return nil
}

// FindFolder looks for the folder's marker object. A missing marker means
// the folder does not exist; no wider search is performed.
func (s *Store) FindFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error) {
	key := folderKey(name, parentID)
	_, err := s.core.Client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find folder %q: %w", name, err)
	}
	return &domain.FolderRef{ID: key, Name: name, ParentID: parentID}, nil
}

// CreateFolder writes the folder's marker object.
func (s *Store) CreateFolder(ctx context.Context, name, parentID string) (*domain.FolderRef, error) {
	key := folderKey(name, parentID)
	_, err := s.core.Client.PutObject(ctx, s.bucket, key, bytes.NewReader(nil), 0,
		minio.PutObjectOptions{ContentType: FolderMimeType})
	if err != nil {
		return nil, fmt.Errorf("create folder %q: %w", name, err)
	}
	return &domain.FolderRef{ID: key, Name: name, ParentID: parentID}, nil
}

// ContainsName reports whether the folder already holds an object with the
// given name.
func (s *Store) ContainsName(ctx context.Context, folderID, name string) (bool, error) {
	_, err := s.core.Client.StatObject(ctx, s.bucket, folderID+name, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s%s: %w", folderID, name, err)
	}
	return true, nil
}

// IsDescendant reports whether the object's key lies under the folder's key
// prefix. A folder contains exactly the keys it prefixes.
func (s *Store) IsDescendant(_ context.Context, fileID, folderID string) (bool, error) {
	return strings.HasPrefix(fileID, folderID), nil
}

// CopyFile server-side copies the object into the destination folder. Only
// the tag property travels with the copy; other object tags do not.
func (s *Store) CopyFile(ctx context.Context, fileID, folderID string) (string, error) {
	srcTags, err := s.FileTags(ctx, fileID)
	if err != nil {
		return "", err
	}
	kept := map[string]string{}
	if v, ok := srcTags[domain.TagPropertyKey]; ok {
		kept[domain.TagPropertyKey] = v
	}

	destKey := folderID + path.Base(fileID)
	_, err = s.core.Client.CopyObject(ctx,
		minio.CopyDestOptions{
			Bucket:      s.bucket,
			Object:      destKey,
			UserTags:    kept,
			ReplaceTags: true,
		},
		minio.CopySrcOptions{Bucket: s.bucket, Object: fileID},
	)
	if err != nil {
		return "", fmt.Errorf("copy %s to %s: %w", fileID, folderID, err)
	}
	return destKey, nil
}

// MoveFile re-parents the object: copy into the destination folder keeping
// all metadata, then remove the original. The file's id changes with its
// location.
func (s *Store) MoveFile(ctx context.Context, fileID, folderID string) (string, error) {
	destKey := folderID + path.Base(fileID)
	_, err := s.core.Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: destKey},
		minio.CopySrcOptions{Bucket: s.bucket, Object: fileID},
	)
	if err != nil {
		return "", fmt.Errorf("move %s to %s: %w", fileID, folderID, err)
	}
	if err := s.core.Client.RemoveObject(ctx, s.bucket, fileID, minio.RemoveObjectOptions{}); err != nil {
		return "", fmt.Errorf("remove original %s: %w", fileID, err)
	}
	return destKey, nil
}

// folderKey builds the marker key for a folder name under a parent folder
// id (empty parent means the bucket root).
func folderKey(name, parentID string) string {
	return parentID + name + "/"
}

func parentOf(key string) string {
	i := strings.LastIndexByte(key, '/')
	if i < 0 {
		return ""
	}
	return key[:i+1]
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
