package domain

// TagPropertyKey is the single property key this system reads and writes on
// remote file records.
const TagPropertyKey = "tag"

// FileRecord is the typed projection of a remote file entry. Only the fields
// a given listing requested are populated; Tag is empty when the file carries
// no tag property (an empty string is never a valid tag value).
type FileRecord struct {
	ID          string
	Name        string
	MimeType    string
	CreatedTime string // RFC 3339, as reported by the storage service
	Tag         string
	Parents     []string
}

// FolderRef identifies a folder in the remote hierarchy.
type FolderRef struct {
	ID       string
	Name     string
	ParentID string // empty for the storage root
}

// Page is one page of a file listing. An empty NextCursor means the listing
// is exhausted.
type Page struct {
	Files      []FileRecord
	NextCursor string
}
