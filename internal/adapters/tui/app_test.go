package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"curator/internal/config"
)

var errTest = errors.New("credential rejected")

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testConfig() *config.Config {
	return &config.Config{
		Storage:  config.Storage{Bucket: "archive"},
		Organize: config.Organize{RootFolder: "Organized-Files"},
		PageSize: 10,
	}
}

func TestApp_LocksActionsUntilVerified(t *testing.T) {
	app := NewApp(nil, nil, testConfig())

	for _, r := range []rune{'t', 'o', 'm'} {
		app.Update(keyPress(r))
		if app.run != nil {
			t.Fatalf("key %q started a run before verification", r)
		}
		if app.notice != lockedNotice {
			t.Errorf("key %q: notice = %q, want the locked notice", r, app.notice)
		}
	}
}

func TestApp_UnlocksAfterSuccessfulVerification(t *testing.T) {
	app := NewApp(nil, nil, testConfig())

	app.run = &activeRun{name: "verifying"}
	app.Update(runFinishedMsg{outcome: runOutcome{summary: "classifier credential accepted"}})

	if !app.verified {
		t.Fatal("expected the app to unlock after a successful verification")
	}
	if app.summary == "" {
		t.Error("expected the verification summary to be shown")
	}
}

func TestApp_FailedVerificationKeepsLock(t *testing.T) {
	app := NewApp(nil, nil, testConfig())

	app.run = &activeRun{name: "verifying"}
	app.Update(runFinishedMsg{outcome: runOutcome{err: errTest}})

	if app.verified {
		t.Fatal("a failed verification must not unlock the actions")
	}
	if app.errText == "" {
		t.Error("expected the verification error to be shown")
	}
}
