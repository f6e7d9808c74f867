package commands

import (
	"context"
	"errors"
	"fmt"

	"curator/internal/application"
	"curator/internal/domain"
	"curator/internal/ports"
)

// TagFilesResult contains the outcome of a tagging run.
type TagFilesResult struct {
	Tagged  int // files that received a tag this run
	Skipped int // files that already carried a tag
	Failed  int // files abandoned after a per-file error
	Aborted bool
	Message string
}

// TagFilesCommand crawls the whole file listing and tags every untagged
// file: compatible files are downloaded and classified, incompatible ones
// are tagged Uncategorized directly. Already-tagged files are skipped, which
// makes the crawl idempotent and resumable after a crash or quota
// exhaustion.
type TagFilesCommand struct {
	storage    ports.Storage
	classifier ports.Classifier
	tags       *application.TagStore
	sink       ports.ProgressSink

	PageSize int
}

// NewTagFilesCommand creates a new TagFilesCommand.
func NewTagFilesCommand(storage ports.Storage, classifier ports.Classifier, sink ports.ProgressSink, pageSize int) *TagFilesCommand {
	return &TagFilesCommand{
		storage:    storage,
		classifier: classifier,
		tags:       application.NewTagStore(storage),
		sink:       sink,
		PageSize:   pageSize,
	}
}

// Validate checks that the run may start.
func (c *TagFilesCommand) Validate() error {
	if c.storage == nil {
		return &application.ValidationError{Field: "storage", Message: "storage service is required"}
	}
	if c.classifier == nil {
		return &application.ValidationError{Field: "classifier", Message: "classifier is required"}
	}
	if c.PageSize <= 0 {
		return &application.ValidationError{Field: "pageSize", Message: "page size must be positive"}
	}
	return nil
}

// Execute runs the tagging crawl. A daily-limit signal from the classifier
// aborts the run at the file where it struck; remaining files stay untagged
// for a future resumed run. Every other per-file failure is reported to the
// sink and the crawl moves on.
func (c *TagFilesCommand) Execute(ctx context.Context) (*TagFilesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &TagFilesResult{}
	cursor := ""

	for {
		page, err := c.storage.ListFiles(ctx, cursor, c.PageSize, false)
		if err != nil {
			c.progress("listing failed: %v", err)
			return result, fmt.Errorf("list files: %w", err)
		}

		for _, file := range page.Files {
			tagged, err := c.tags.HasTag(ctx, file.ID)
			if err != nil {
				result.Failed++
				c.progress("skipping %s: %v", file.Name, err)
				continue
			}
			if tagged {
				result.Skipped++
				continue
			}

			label, err := c.labelFor(ctx, file)
			if errors.Is(err, ports.ErrDailyLimitExceeded) {
				result.Aborted = true
				result.Message = "daily classification limit reached, run again tomorrow to resume"
				c.progress("%s", result.Message)
				return result, nil
			}
			if err != nil {
				result.Failed++
				c.progress("skipping %s: %v", file.Name, err)
				continue
			}

			if err := c.tags.SetTag(ctx, file.ID, label); err != nil {
				result.Failed++
				c.progress("tagging %s failed: %v", file.Name, err)
				continue
			}
			result.Tagged++
			c.progress("tagged %s as %q", file.Name, label)
		}

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	result.Message = fmt.Sprintf("tagging done: %d tagged, %d already tagged, %d failed",
		result.Tagged, result.Skipped, result.Failed)
	c.progress("%s", result.Message)
	return result, nil
}

// labelFor produces the label for an untagged file. Incompatible file types
// short-circuit to Uncategorized without downloading anything.
func (c *TagFilesCommand) labelFor(ctx context.Context, file domain.FileRecord) (string, error) {
	ext, compatible := domain.ResolveExtension(file.MimeType)
	if !compatible {
		c.progress("%s is not classifiable, tagging as %s", file.Name, domain.Uncategorized)
		return domain.Uncategorized, nil
	}

	content, err := c.storage.Download(ctx, file.ID)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	c.progress("classifying %s", file.Name)
	return c.classifier.Classify(ctx, content, ext)
}

func (c *TagFilesCommand) progress(format string, args ...any) {
	if c.sink != nil {
		c.sink.Progress(fmt.Sprintf(format, args...))
	}
}
