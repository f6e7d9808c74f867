package domain

import (
	"testing"
)

func TestResolveExtension(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		wantExt  string
		wantOK   bool
	}{
		{"pinned image type", "image/jpeg", ".jpg", true},
		{"pinned document type", "application/pdf", ".pdf", true},
		{"uppercase input", "IMAGE/PNG", ".png", true},
		{"charset parameter stripped", "text/plain; charset=utf-8", ".txt", true},
		{"video type", "video/mp4", ".mp4", true},
		{"folder marker", "application/x-directory", "", false},
		{"archive type outside allow-list", "application/zip", "", false},
		{"unknown type", "application/x-blorb", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, ok := ResolveExtension(tt.mimeType)
			if ok != tt.wantOK {
				t.Fatalf("ResolveExtension(%q) ok = %v, want %v", tt.mimeType, ok, tt.wantOK)
			}
			if ext != tt.wantExt {
				t.Errorf("ResolveExtension(%q) = %q, want %q", tt.mimeType, ext, tt.wantExt)
			}
		})
	}
}

func TestResolveExtension_DeterministicForJpeg(t *testing.T) {
	// The stdlib table offers .jpe, .jpeg and .jpg for image/jpeg; the
	// pinned table must win so repeated runs stage the same filename.
	for range 10 {
		ext, ok := ResolveExtension("image/jpeg")
		if !ok || ext != ".jpg" {
			t.Fatalf("ResolveExtension(image/jpeg) = %q, %v", ext, ok)
		}
	}
}

func TestMimeTypeForExtension_RoundTripsPinnedTable(t *testing.T) {
	for mimeType, ext := range canonicalExtensions {
		if got := MimeTypeForExtension(ext); got != mimeType {
			t.Errorf("MimeTypeForExtension(%q) = %q, want %q", ext, got, mimeType)
		}
	}
}

func TestMimeTypeForExtension_UnknownFallsBackToOctetStream(t *testing.T) {
	if got := MimeTypeForExtension(".blorb"); got != "application/octet-stream" {
		t.Errorf("expected application/octet-stream, got %q", got)
	}
}

func TestExtensionClasses(t *testing.T) {
	if !IsImageExtension(".jpg") || !IsImageExtension(".PNG") {
		t.Error("expected .jpg and .PNG to be image extensions")
	}
	if IsImageExtension(".pdf") {
		t.Error(".pdf must not be an image extension")
	}
	if !IsDocumentExtension(".pdf") || !IsDocumentExtension(".md") {
		t.Error("expected .pdf and .md to be document extensions")
	}
	if IsDocumentExtension(".mp4") {
		t.Error(".mp4 must not be a document extension")
	}
}
