package commands

import (
	"context"
	"errors"
	"fmt"

	"curator/internal/application"
	"curator/internal/domain"
	"curator/internal/ports"
)

// PlacementMode selects how a file reaches its destination folder.
type PlacementMode int

const (
	// ModeCopy duplicates files into the destination hierarchy and leaves
	// the originals untouched. The safe default.
	ModeCopy PlacementMode = iota
	// ModeMove re-parents files into the destination hierarchy.
	ModeMove
)

func (m PlacementMode) String() string {
	if m == ModeMove {
		return "move"
	}
	return "copy"
}

// OrganizeFilesResult contains the outcome of an organizing run.
type OrganizeFilesResult struct {
	Placed  int // files copied or moved this run
	Skipped int // files already present at their destination
	Failed  int // files abandoned after a per-file error
	Message string
}

// OrganizeFilesCommand walks the whole file listing and places each file
// under RootFolder/Year/Month/Category, deriving year and month from the
// file's creation time and the category from its tag (Uncategorized when
// untagged). A same-named file already at the destination means the file was
// organized in a prior run and is skipped, which makes the run idempotent.
type OrganizeFilesCommand struct {
	storage  ports.Storage
	resolver *application.FolderPathResolver
	sink     ports.ProgressSink

	RootFolder string
	Mode       PlacementMode
	PageSize   int
}

// NewOrganizeFilesCommand creates a new OrganizeFilesCommand.
func NewOrganizeFilesCommand(storage ports.Storage, sink ports.ProgressSink, rootFolder string, mode PlacementMode, pageSize int) *OrganizeFilesCommand {
	return &OrganizeFilesCommand{
		storage:    storage,
		resolver:   application.NewFolderPathResolver(storage),
		sink:       sink,
		RootFolder: rootFolder,
		Mode:       mode,
		PageSize:   pageSize,
	}
}

// Validate checks that the run may start.
func (c *OrganizeFilesCommand) Validate() error {
	if c.storage == nil {
		return &application.ValidationError{Field: "storage", Message: "storage service is required"}
	}
	if c.RootFolder == "" {
		return &application.ValidationError{Field: "rootFolder", Message: "organization root folder name is required"}
	}
	if c.PageSize <= 0 {
		return &application.ValidationError{Field: "pageSize", Message: "page size must be positive"}
	}
	return nil
}

// errAlreadyPlaced marks the duplicate-placement guard, not a failure.
var errAlreadyPlaced = errors.New("already placed")

// Execute runs the organizing pass. Failure on any single file is reported
// to the sink and the loop continues; only a listing failure ends the run.
func (c *OrganizeFilesCommand) Execute(ctx context.Context) (*OrganizeFilesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &OrganizeFilesResult{}

	rootID, err := c.resolver.EnsureFolder(ctx, c.RootFolder, "")
	if err != nil {
		return result, fmt.Errorf("ensure root folder: %w", err)
	}

	cursor := ""
	for {
		page, err := c.storage.ListFiles(ctx, cursor, c.PageSize, true)
		if err != nil {
			c.progress("listing failed: %v", err)
			return result, fmt.Errorf("list files: %w", err)
		}

		for _, file := range page.Files {
			switch err := c.place(ctx, file, rootID); {
			case err == nil:
				result.Placed++
			case errors.Is(err, errAlreadyPlaced):
				result.Skipped++
			default:
				result.Failed++
				c.progress("%v", err)
			}
		}

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	result.Message = fmt.Sprintf("organizing done (%s mode): %d placed, %d already organized, %d failed",
		c.Mode, result.Placed, result.Skipped, result.Failed)
	c.progress("%s", result.Message)
	return result, nil
}

func (c *OrganizeFilesCommand) place(ctx context.Context, file domain.FileRecord, rootID string) error {
	// Files already inside the organized tree stay where they are. A copy's
	// reported creation time is its copy time, so re-placing it by date
	// would shuffle the tree on every run.
	organized, err := c.storage.IsDescendant(ctx, file.ID, rootID)
	if err != nil {
		return &application.PlacementError{FileID: file.ID, Reason: err.Error()}
	}
	if organized {
		return errAlreadyPlaced
	}

	created, err := domain.ParseCreatedTime(file.CreatedTime)
	if err != nil {
		return &application.PlacementError{FileID: file.ID, Reason: err.Error()}
	}

	category := file.Tag
	if category == "" {
		category = domain.Uncategorized
	}

	destination, err := c.ensurePath(ctx, rootID, created, category)
	if err != nil {
		return &application.PlacementError{FileID: file.ID, Reason: err.Error()}
	}

	present, err := c.storage.ContainsName(ctx, destination, file.Name)
	if err != nil {
		return &application.PlacementError{FileID: file.ID, Reason: err.Error()}
	}
	if present {
		return errAlreadyPlaced
	}

	if c.Mode == ModeMove {
		_, err = c.storage.MoveFile(ctx, file.ID, destination)
	} else {
		_, err = c.storage.CopyFile(ctx, file.ID, destination)
	}
	if err != nil {
		return &application.PlacementError{FileID: file.ID, Reason: err.Error()}
	}

	c.progress("placed %s under %s/%s/%s", file.Name,
		created.YearFolder(), created.MonthFolder(), category)
	return nil
}

// ensurePath materializes Year/Month/Category under the root and returns the
// id of the category folder.
func (c *OrganizeFilesCommand) ensurePath(ctx context.Context, rootID string, created domain.CreatedDate, category string) (string, error) {
	yearID, err := c.resolver.EnsureFolder(ctx, created.YearFolder(), rootID)
	if err != nil {
		return "", err
	}
	monthID, err := c.resolver.EnsureFolder(ctx, created.MonthFolder(), yearID)
	if err != nil {
		return "", err
	}
	return c.resolver.EnsureFolder(ctx, category, monthID)
}

func (c *OrganizeFilesCommand) progress(format string, args ...any) {
	if c.sink != nil {
		c.sink.Progress(fmt.Sprintf(format, args...))
	}
}
