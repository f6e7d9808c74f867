// Package tui is the interactive dashboard for driving tagging and
// organizing runs. Runs execute on a background goroutine and stream their
// progress into the view through a bounded channel; at most one run is in
// flight at a time.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"curator/internal/adapters/tui/styles"
	"curator/internal/application"
	"curator/internal/application/commands"
	"curator/internal/config"
	"curator/internal/ports"
)

const maxLogLines = 200

const lockedNotice = "classifier credential not verified yet, press v"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Tag      key.Binding
	Organize key.Binding
	Move     key.Binding
	Verify   key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

var Keys = KeyMap{
	Tag: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tag files"),
	),
	Organize: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "organize (copy)"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "organize (move)"),
	),
	Verify: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "verify credentials"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy summary"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type runOutcome struct {
	summary string
	err     error
}

// activeRun is the channel pair of an in-flight run. The worker writes the
// outcome before closing the sink, so by the time the message stream ends the
// outcome read cannot block.
type activeRun struct {
	name    string
	sink    *application.ChannelSink
	outcome chan runOutcome
}

type progressMsg string

type runFinishedMsg struct{ outcome runOutcome }

// App is the dashboard model.
type App struct {
	storage    ports.Storage
	classifier ports.Classifier
	cfg        *config.Config

	runner   application.Runner
	run      *activeRun
	spinner  spinner.Model
	verified bool

	log     []string
	summary string
	errText string
	notice  string

	width  int
	height int
}

// NewApp creates the dashboard over the configured storage and classifier.
func NewApp(storage ports.Storage, classifier ports.Classifier, cfg *config.Config) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &App{
		storage:    storage,
		classifier: classifier,
		cfg:        cfg,
		spinner:    s,
	}
}

// Init starts a credential check; tagging and organizing stay locked until
// it succeeds.
func (a *App) Init() tea.Cmd {
	return a.startRun("verifying", a.verifyRun)
}

// Update handles messages for the application.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.run == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case progressMsg:
		a.appendLog(string(msg))
		return a, a.listen()

	case runFinishedMsg:
		finished := a.run
		a.run = nil
		if msg.outcome.err != nil {
			a.errText = msg.outcome.err.Error()
		} else {
			a.summary = msg.outcome.summary
			if finished != nil && finished.name == "verifying" {
				a.verified = true
			}
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, Keys.Tag):
			if !a.verified {
				a.notice = lockedNotice
				return a, nil
			}
			return a, a.startRun("tagging", a.tagRun)
		case key.Matches(msg, Keys.Organize):
			if !a.verified {
				a.notice = lockedNotice
				return a, nil
			}
			return a, a.startRun("organizing", a.organizeRun(commands.ModeCopy))
		case key.Matches(msg, Keys.Move):
			if !a.verified {
				a.notice = lockedNotice
				return a, nil
			}
			return a, a.startRun("organizing", a.organizeRun(commands.ModeMove))
		case key.Matches(msg, Keys.Verify):
			return a, a.startRun("verifying", a.verifyRun)
		case key.Matches(msg, Keys.Copy):
			a.copySummary()
			return a, nil
		}
	}

	return a, nil
}

// startRun launches fn on the runner behind a fresh sink. A refusal while a
// run is active becomes a notice instead of an error.
func (a *App) startRun(name string, fn func(ctx context.Context, sink ports.ProgressSink) runOutcome) tea.Cmd {
	sink := application.NewChannelSink(0)
	run := &activeRun{
		name:    name,
		sink:    sink,
		outcome: make(chan runOutcome, 1),
	}

	err := a.runner.Start(func() {
		run.outcome <- fn(context.Background(), sink)
		sink.Close()
	})
	if err != nil {
		a.notice = "a run is already in progress"
		return nil
	}

	a.run = run
	a.log = nil
	a.summary = ""
	a.errText = ""
	a.notice = ""
	return tea.Batch(a.spinner.Tick, a.listen())
}

// listen waits for the next progress line; a closed sink means the run ended
// and its outcome is ready.
func (a *App) listen() tea.Cmd {
	run := a.run
	if run == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-run.sink.Messages()
		if !ok {
			return runFinishedMsg{outcome: <-run.outcome}
		}
		return progressMsg(line)
	}
}

func (a *App) tagRun(ctx context.Context, sink ports.ProgressSink) runOutcome {
	cmd := commands.NewTagFilesCommand(a.storage, a.classifier, sink, a.cfg.PageSize)
	result, err := cmd.Execute(ctx)
	if err != nil {
		return runOutcome{err: err}
	}
	return runOutcome{summary: result.Message}
}

func (a *App) organizeRun(mode commands.PlacementMode) func(ctx context.Context, sink ports.ProgressSink) runOutcome {
	return func(ctx context.Context, sink ports.ProgressSink) runOutcome {
		cmd := commands.NewOrganizeFilesCommand(a.storage, sink, a.cfg.Organize.RootFolder, mode, a.cfg.PageSize)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return runOutcome{err: err}
		}
		return runOutcome{summary: result.Message}
	}
}

func (a *App) verifyRun(ctx context.Context, sink ports.ProgressSink) runOutcome {
	sink.Progress("checking classifier credential")
	if err := a.classifier.Verify(ctx); err != nil {
		return runOutcome{err: err}
	}
	return runOutcome{summary: "classifier credential accepted"}
}

func (a *App) copySummary() {
	if a.summary == "" {
		a.notice = "nothing to copy yet"
		return
	}
	if err := clipboard.WriteAll(a.summary); err != nil {
		a.notice = "clipboard unavailable"
		return
	}
	a.notice = "summary copied to clipboard"
}

func (a *App) appendLog(line string) {
	a.log = append(a.log, line)
	if len(a.log) > maxLogLines {
		a.log = a.log[len(a.log)-maxLogLines:]
	}
}

// visibleLog returns the tail of the log that fits the window.
func (a *App) visibleLog() []string {
	limit := a.height - 10
	if limit < 5 {
		limit = 5
	}
	if len(a.log) <= limit {
		return a.log
	}
	return a.log[len(a.log)-limit:]
}

// View renders the dashboard.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Curator"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("bucket %s, organizing under %s",
		a.cfg.Storage.Bucket, a.cfg.Organize.RootFolder)))
	b.WriteString("\n\n")

	if a.run != nil {
		fmt.Fprintf(&b, "%s %s...\n\n", a.spinner.View(), a.run.name)
	}

	for _, line := range a.visibleLog() {
		b.WriteString(styles.LogLine.Render(line))
		b.WriteString("\n")
	}

	if a.summary != "" {
		b.WriteString("\n")
		b.WriteString(styles.Summary.Render(a.summary))
		b.WriteString("\n")
	}
	if a.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render("Error: "))
		b.WriteString(a.errText)
		b.WriteString("\n")
	}
	if a.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(a.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := []struct{ k, d string }{
		{"t", "tag"},
		{"o", "organize"},
		{"m", "move"},
		{"v", "verify"},
		{"c", "copy summary"},
		{"q", "quit"},
	}
	for i, h := range help {
		if i > 0 {
			b.WriteString(styles.HelpDesc.Render(", "))
		}
		b.WriteString(styles.HelpKey.Render(h.k))
		b.WriteString(styles.HelpDesc.Render(" " + h.d))
	}

	return styles.App.Render(b.String())
}
