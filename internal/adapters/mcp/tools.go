// Package mcp exposes the tagging and organizing pipeline as MCP tools so an
// agent can drive curation runs over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"curator/internal/application"
	"curator/internal/application/commands"
	"curator/internal/config"
	"curator/internal/ports"
)

// RegisterPipelineTools adds all curation tools to the MCP server. The
// server dispatches tool calls on a worker pool, so the handlers share one
// runner: tagging and organizing must never interleave against the same
// account, and a call arriving during a run is refused.
func RegisterPipelineTools(s *server.MCPServer, storage ports.Storage, classifier ports.Classifier, cfg *config.Config) {
	runner := &application.Runner{}
	s.AddTool(tagFilesTool(), tagFilesHandler(storage, classifier, cfg, runner))
	s.AddTool(organizeFilesTool(), organizeFilesHandler(storage, cfg, runner))
	s.AddTool(verifyClassifierTool(), verifyClassifierHandler(classifier, runner))
}

// --- tag_files ---

func tagFilesTool() mcp.Tool {
	return mcp.NewTool("tag_files",
		mcp.WithDescription("Crawl the archive and tag every untagged file with a category label. Already-tagged files are skipped, so the tool is safe to run repeatedly and resumes after quota exhaustion."),
	)
}

func tagFilesHandler(storage ports.Storage, classifier ports.Classifier, cfg *config.Config, runner *application.Runner) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var log progressLog
		var result *commands.TagFilesResult

		err := runGated(runner, func() error {
			cmd := commands.NewTagFilesCommand(storage, classifier, &log, cfg.PageSize)
			var err error
			result, err = cmd.Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(log.render(result.Message)), nil
	}
}

// --- organize_files ---

func organizeFilesTool() mcp.Tool {
	return mcp.NewTool("organize_files",
		mcp.WithDescription("Place every file into Root/Year/Month/Category folders derived from its creation time and tag. Files already at their destination are skipped."),
		mcp.WithBoolean("move",
			mcp.Description("Move files instead of copying them. Defaults to copying."),
		),
	)
}

func organizeFilesHandler(storage ports.Storage, cfg *config.Config, runner *application.Runner) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode := commands.ModeCopy
		if req.GetBool("move", false) {
			mode = commands.ModeMove
		}

		var log progressLog
		var result *commands.OrganizeFilesResult

		err := runGated(runner, func() error {
			cmd := commands.NewOrganizeFilesCommand(storage, &log, cfg.Organize.RootFolder, mode, cfg.PageSize)
			var err error
			result, err = cmd.Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(log.render(result.Message)), nil
	}
}

// --- verify_classifier ---

func verifyClassifierTool() mcp.Tool {
	return mcp.NewTool("verify_classifier",
		mcp.WithDescription("Check that the classifier backend accepts the configured API key."),
	)
}

func verifyClassifierHandler(classifier ports.Classifier, runner *application.Runner) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		err := runGated(runner, func() error {
			return classifier.Verify(ctx)
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("classifier credential accepted"), nil
	}
}

// --- helpers ---

// runGated executes fn through the shared runner and waits for it to finish.
// A call that arrives while another run is active is refused instead of
// queued, matching the single-run rule the dashboard enforces.
func runGated(runner *application.Runner, fn func() error) error {
	done := make(chan struct{})
	var runErr error
	err := runner.Start(func() {
		defer close(done)
		runErr = fn()
	})
	if err != nil {
		if errors.Is(err, application.ErrRunActive) {
			return errors.New("a run is already in progress, wait for it to finish")
		}
		return err
	}
	<-done
	return runErr
}

// progressLog collects run progress so the whole trace can be returned as the
// tool result. Runs are synchronous over stdio, there is nowhere to stream to.
type progressLog struct {
	lines []string
}

func (l *progressLog) Progress(message string) {
	l.lines = append(l.lines, message)
}

func (l *progressLog) render(summary string) string {
	if len(l.lines) == 0 {
		return summary
	}
	var sb strings.Builder
	for _, line := range l.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf("%v", err)), nil
}
