package commands

import (
	"context"
	"strconv"
	"strings"

	"curator/internal/domain"
	"curator/internal/ports"
)

// fakeCopyTime is the creation time the fake stamps on placed files,
// mirroring a bucket's behavior of reporting the copy time, not the
// source's original time.
const fakeCopyTime = "2026-08-29T12:00:00Z"

// fakeStorage is an in-memory ports.Storage with bucket semantics: a folder
// id is its key prefix, a placed file appears in subsequent listings under
// its new id with fakeCopyTime as its creation time, and a moved file's old
// record disappears. Placements are recorded for assertions.
type fakeStorage struct {
	pages [][]domain.FileRecord
	added []domain.FileRecord // records created by placements, listed last
	tags  map[string]map[string]string
	data  map[string][]byte

	folders  map[string]string          // parentID+"/"+name -> folder id
	children map[string]map[string]bool // folder id -> contained file names
	names    map[string]string          // file id -> display name

	downloadErr map[string]error

	downloads []string
	creates   int
	copies    []placementCall
	moves     []placementCall
}

type placementCall struct {
	fileID   string
	folderID string
}

func newFakeStorage(pages ...[]domain.FileRecord) *fakeStorage {
	f := &fakeStorage{
		pages:       pages,
		tags:        make(map[string]map[string]string),
		data:        make(map[string][]byte),
		folders:     make(map[string]string),
		children:    make(map[string]map[string]bool),
		names:       make(map[string]string),
		downloadErr: make(map[string]error),
	}
	for _, page := range pages {
		for _, rec := range page {
			f.names[rec.ID] = rec.Name
		}
	}
	return f
}

func (f *fakeStorage) listPages() [][]domain.FileRecord {
	if len(f.added) == 0 {
		return f.pages
	}
	all := make([][]domain.FileRecord, 0, len(f.pages)+1)
	all = append(all, f.pages...)
	return append(all, f.added)
}

func (f *fakeStorage) ListFiles(_ context.Context, cursor string, _ int, includeTags bool) (*domain.Page, error) {
	pages := f.listPages()
	idx := 0
	if cursor != "" {
		idx, _ = strconv.Atoi(cursor)
	}
	if idx >= len(pages) {
		return &domain.Page{}, nil
	}

	page := &domain.Page{Files: make([]domain.FileRecord, len(pages[idx]))}
	copy(page.Files, pages[idx])
	if includeTags {
		for i := range page.Files {
			page.Files[i].Tag = f.tags[page.Files[i].ID][domain.TagPropertyKey]
		}
	}
	if idx+1 < len(pages) {
		page.NextCursor = strconv.Itoa(idx + 1)
	}
	return page, nil
}

func (f *fakeStorage) Download(_ context.Context, fileID string) ([]byte, error) {
	if err := f.downloadErr[fileID]; err != nil {
		return nil, err
	}
	f.downloads = append(f.downloads, fileID)
	if b, ok := f.data[fileID]; ok {
		return b, nil
	}
	return []byte("content of " + fileID), nil
}

func (f *fakeStorage) FileTags(_ context.Context, fileID string) (map[string]string, error) {
	out := make(map[string]string, len(f.tags[fileID]))
	for k, v := range f.tags[fileID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStorage) ReplaceFileTags(_ context.Context, fileID string, tags map[string]string) error {
	kept := make(map[string]string, len(tags))
	for k, v := range tags {
		kept[k] = v
	}
	f.tags[fileID] = kept
	return nil
}

func (f *fakeStorage) FindFolder(_ context.Context, name, parentID string) (*domain.FolderRef, error) {
	id, ok := f.folders[parentID+"/"+name]
	if !ok {
		return nil, nil
	}
	return &domain.FolderRef{ID: id, Name: name, ParentID: parentID}, nil
}

func (f *fakeStorage) CreateFolder(_ context.Context, name, parentID string) (*domain.FolderRef, error) {
	f.creates++
	id := parentID + name + "/"
	f.folders[parentID+"/"+name] = id
	f.children[id] = make(map[string]bool)
	return &domain.FolderRef{ID: id, Name: name, ParentID: parentID}, nil
}

func (f *fakeStorage) ContainsName(_ context.Context, folderID, name string) (bool, error) {
	return f.children[folderID][name], nil
}

func (f *fakeStorage) IsDescendant(_ context.Context, fileID, folderID string) (bool, error) {
	return strings.HasPrefix(fileID, folderID), nil
}

func (f *fakeStorage) CopyFile(_ context.Context, fileID, folderID string) (string, error) {
	f.copies = append(f.copies, placementCall{fileID: fileID, folderID: folderID})
	destID := f.markPlaced(fileID, folderID)
	f.added = append(f.added, domain.FileRecord{
		ID:          destID,
		Name:        f.names[fileID],
		CreatedTime: fakeCopyTime,
	})
	if v, ok := f.tags[fileID][domain.TagPropertyKey]; ok {
		f.tags[destID] = map[string]string{domain.TagPropertyKey: v}
	}
	return destID, nil
}

func (f *fakeStorage) MoveFile(_ context.Context, fileID, folderID string) (string, error) {
	f.moves = append(f.moves, placementCall{fileID: fileID, folderID: folderID})
	destID := f.markPlaced(fileID, folderID)
	f.tags[destID] = f.tags[fileID]
	f.rewriteRecord(fileID, destID)
	return destID, nil
}

func (f *fakeStorage) markPlaced(fileID, folderID string) string {
	if f.children[folderID] == nil {
		f.children[folderID] = make(map[string]bool)
	}
	name := f.names[fileID]
	f.children[folderID][name] = true
	destID := folderID + name
	f.names[destID] = name
	return destID
}

// rewriteRecord relocates a listed record to its post-move id and stamps the
// move time as its creation time, the way a copy-then-delete move surfaces
// in later listings.
func (f *fakeStorage) rewriteRecord(fileID, destID string) {
	rewrite := func(page []domain.FileRecord) {
		for i := range page {
			if page[i].ID == fileID {
				page[i].ID = destID
				page[i].CreatedTime = fakeCopyTime
			}
		}
	}
	for _, page := range f.pages {
		rewrite(page)
	}
	rewrite(f.added)
}

func (f *fakeStorage) tagOf(fileID string) string {
	return f.tags[fileID][domain.TagPropertyKey]
}

// fakeClassifier returns scripted labels keyed by extension and counts
// calls. When errOn is set, that call number (1-based) returns err instead.
type fakeClassifier struct {
	byExt map[string]string
	err   error
	errOn int
	calls int
}

func (c *fakeClassifier) Classify(_ context.Context, _ []byte, ext string) (string, error) {
	c.calls++
	if c.err != nil && (c.errOn == 0 || c.calls == c.errOn) {
		return "", c.err
	}
	if label, ok := c.byExt[ext]; ok {
		return label, nil
	}
	return domain.Uncategorized, nil
}

func (c *fakeClassifier) Verify(context.Context) error { return nil }

var (
	_ ports.Storage    = (*fakeStorage)(nil)
	_ ports.Classifier = (*fakeClassifier)(nil)
)
