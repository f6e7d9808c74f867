package domain

import (
	"mime"
	"strings"
)

// canonicalExtensions pins one extension per MIME type for the types the
// classification backend accepts. Go's mime table returns several candidates
// for some types (".jpe", ".jpeg", ".jpg"), so the pinned table is consulted
// first to keep resolution deterministic.
var canonicalExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/heif": ".heif",
	"image/heic": ".heic",

	"application/pdf": ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/rtf":           ".rtf",
	"text/plain":                ".txt",
	"text/markdown":             ".md",
	"text/csv":                  ".csv",
	"text/tab-separated-values": ".tsv",
	"application/vnd.ms-excel":  ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         ".xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",

	"text/html":          ".html",
	"text/css":           ".css",
	"text/javascript":    ".js",
	"text/x-c":           ".c",
	"text/x-c++src":      ".cpp",
	"text/x-python":      ".py",
	"text/x-java-source": ".java",
	"application/x-php":  ".php",
	"application/sql":    ".sql",

	"video/mp4":       ".mp4",
	"video/mpeg":      ".mpeg",
	"video/quicktime": ".mov",
	"video/x-msvideo": ".avi",
	"video/x-flv":     ".flv",
	"video/webm":      ".webm",
	"video/x-ms-wmv":  ".wmv",
	"video/3gpp":      ".3gp",
}

// compatibleExtensions is the allow-list of file types the classification
// backend accepts. Anything else is tagged Uncategorized without download.
// mimeByExtension is the reverse of the pinned table; every extension in it
// maps to exactly one type.
var (
	compatibleExtensions = make(map[string]struct{}, len(canonicalExtensions))
	mimeByExtension      = make(map[string]string, len(canonicalExtensions))
)

func init() {
	for mimeType, ext := range canonicalExtensions {
		compatibleExtensions[ext] = struct{}{}
		mimeByExtension[ext] = mimeType
	}
}

// imageExtensions selects the image analysis prompt.
var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".webp": {},
	".heif": {},
	".heic": {},
}

// documentExtensions selects the document analysis prompt.
var documentExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".rtf":  {},
	".txt":  {},
	".md":   {},
}

// ResolveExtension maps a declared MIME type to its canonical lowercase
// extension. ok is false when the type maps to no extension or to one outside
// the compatibility allow-list.
func ResolveExtension(mimeType string) (ext string, ok bool) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "" {
		return "", false
	}

	ext, ok = canonicalExtensions[mimeType]
	if !ok {
		// Fall back to the stdlib table for aliases such as text/x-sql.
		candidates, err := mime.ExtensionsByType(mimeType)
		if err != nil || len(candidates) == 0 {
			return "", false
		}
		for _, c := range candidates {
			if _, allowed := compatibleExtensions[c]; allowed {
				ext = c
				break
			}
		}
		if ext == "" {
			return "", false
		}
	}

	if _, allowed := compatibleExtensions[ext]; !allowed {
		return "", false
	}
	return ext, true
}

// MimeTypeForExtension returns the declared content type for a file
// extension (with leading dot), falling back to the stdlib table and then to
// application/octet-stream.
func MimeTypeForExtension(ext string) string {
	ext = strings.ToLower(ext)
	if m, ok := mimeByExtension[ext]; ok {
		return m
	}
	if m := mime.TypeByExtension(ext); m != "" {
		return m
	}
	return "application/octet-stream"
}

// IsImageExtension reports whether ext is one of the image types.
func IsImageExtension(ext string) bool {
	_, ok := imageExtensions[strings.ToLower(ext)]
	return ok
}

// IsDocumentExtension reports whether ext is one of the document types.
func IsDocumentExtension(ext string) bool {
	_, ok := documentExtensions[strings.ToLower(ext)]
	return ok
}
