package domain

import (
	"fmt"
	"strings"
)

const imagePromptTemplate = `You are classifying a photograph for a document archive.
Decide which single category fits best: %s.
Judge by image quality (grain, fading, sepia or black-and-white tones, film
imperfections versus sharp digital detail), contextual cues (clothing,
vehicles, architecture) and photographic technique.
Respond with ONLY the category name, exactly as written above, and nothing else.`

const documentPromptTemplate = `You are classifying a document for an archive.
Decide which single category fits best: %s.
Judge by the document's core terminology, its subject matter, and its style
and structure.
Respond with ONLY the category name, exactly as written above, and nothing else.`

const genericPromptTemplate = `You are classifying a file for an archive.
Decide which single category from this list fits the file best: %s.
Respond with ONLY the category name, exactly as written above, and nothing else.`

// PromptFor selects the classification prompt for a file extension: images
// and documents get their specialised prompts, every other compatible type
// gets the generic pick-one prompt.
func PromptFor(ext string, labels LabelSet) string {
	categories := strings.Join(labels.Categories(), ", ")
	switch {
	case IsImageExtension(ext):
		return fmt.Sprintf(imagePromptTemplate, categories)
	case IsDocumentExtension(ext):
		return fmt.Sprintf(documentPromptTemplate, categories)
	default:
		return fmt.Sprintf(genericPromptTemplate, categories)
	}
}
