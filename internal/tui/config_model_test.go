package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rashisahu/folio/internal/config"
	"github.com/rashisahu/folio/internal/render"
)

type saveRecorder struct {
	saved []config.Config
	err   error
}

func (s *saveRecorder) save(cfg config.Config) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, cfg)
	return nil
}

func newTestConfigModel(t *testing.T) (ConfigModel, *saveRecorder) {
	t.Helper()
	t.Cleanup(func() { ApplyPalette(render.FolioPalette) })

	rec := &saveRecorder{}
	m := NewConfigModel(config.DefaultConfig(), "/home/test/.folio/config.json", rec.save)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(ConfigModel), rec
}

func pressKey(t *testing.T, m ConfigModel, key string) (ConfigModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(ConfigModel), cmd
}

func TestNewConfigModel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Markdown.Style = render.StyleDracula
	cfg.Theme = "catppuccin"

	m := NewConfigModel(cfg, "path", func(config.Config) error { return nil })

	if m.view != viewMain || m.cursor != 0 {
		t.Errorf("view = %v, cursor = %d", m.view, m.cursor)
	}
	if render.StyleNames()[m.styleCursor] != render.StyleDracula {
		t.Errorf("styleCursor = %d", m.styleCursor)
	}
	if themeNames()[m.themeCursor] != "catppuccin" {
		t.Errorf("themeCursor = %d", m.themeCursor)
	}
	if m.feedbackTimeout != 2*time.Second {
		t.Errorf("feedbackTimeout = %v", m.feedbackTimeout)
	}
	if m.Init() != nil {
		t.Error("Init should return nil command")
	}
}

func TestConfigModel_CursorWraps(t *testing.T) {
	m, _ := newTestConfigModel(t)

	m, _ = pressKey(t, m, "up")
	if m.cursor != menuItemCount-1 {
		t.Errorf("cursor after up = %d, want %d", m.cursor, menuItemCount-1)
	}
	m, _ = pressKey(t, m, "down")
	if m.cursor != 0 {
		t.Errorf("cursor after down = %d, want 0", m.cursor)
	}
	m, _ = pressKey(t, m, "j")
	if m.cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.cursor)
	}
}

func TestConfigModel_ToggleSaves(t *testing.T) {
	m, rec := newTestConfigModel(t)

	m, cmd := pressKey(t, m, "enter")
	if !m.config.CopyToClipboard {
		t.Error("CopyToClipboard not toggled")
	}
	if cmd == nil {
		t.Error("expected feedback clear command")
	}
	if len(rec.saved) != 1 || !rec.saved[0].CopyToClipboard {
		t.Errorf("saved = %+v", rec.saved)
	}
	if !strings.Contains(m.feedback, "enabled") {
		t.Errorf("feedback = %q", m.feedback)
	}

	updated, _ := m.Update(feedbackClearMsg{})
	if updated.(ConfigModel).feedback != "" {
		t.Error("feedback not cleared")
	}
}

func TestConfigModel_SaveError(t *testing.T) {
	m, rec := newTestConfigModel(t)
	rec.err = errors.New("disk full")

	m, _ = pressKey(t, m, "down")
	m, _ = pressKey(t, m, "enter")

	if !m.feedbackIsError || !strings.Contains(m.feedback, "disk full") {
		t.Errorf("feedback = %q, isError = %v", m.feedback, m.feedbackIsError)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Error("error not shown in view")
	}
}

func TestConfigModel_SelectStyle(t *testing.T) {
	m, rec := newTestConfigModel(t)

	m.cursor = menuMarkdownStyle
	m, _ = pressKey(t, m, "enter")
	if m.view != viewStyleSelect {
		t.Fatalf("view = %v, want style select", m.view)
	}

	m, _ = pressKey(t, m, "down")
	want := render.StyleNames()[m.styleCursor]
	m, _ = pressKey(t, m, "enter")

	if m.view != viewMain {
		t.Error("selecting a style should return to the main menu")
	}
	if m.config.Markdown.Style != want {
		t.Errorf("Style = %q, want %q", m.config.Markdown.Style, want)
	}
	if len(rec.saved) != 1 {
		t.Errorf("saves = %d, want 1", len(rec.saved))
	}
}

func TestConfigModel_SelectTheme(t *testing.T) {
	m, _ := newTestConfigModel(t)

	m.cursor = menuTheme
	m, _ = pressKey(t, m, "enter")
	m.themeCursor = indexOf(themeNames(), "tokyonight")
	m, _ = pressKey(t, m, "enter")

	if m.Config().Theme != "tokyonight" {
		t.Errorf("Theme = %q", m.Config().Theme)
	}
	if colorPrimary != render.TokyoNightPalette.Primary {
		t.Error("palette not applied")
	}
}

func TestConfigModel_EscBehaviour(t *testing.T) {
	m, _ := newTestConfigModel(t)

	m.cursor = menuTheme
	m, _ = pressKey(t, m, "enter")
	m, cmd := pressKey(t, m, "esc")
	if m.view != viewMain || cmd != nil {
		t.Errorf("esc in a submenu should go back, view = %v", m.view)
	}

	_, cmd = pressKey(t, m, "esc")
	if cmd == nil {
		t.Fatal("esc in the main menu should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestConfigModel_View(t *testing.T) {
	m := NewConfigModel(config.DefaultConfig(), "/tmp/config.json", func(config.Config) error { return nil })
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("view before size should show the loading text")
	}

	m, _ = newTestConfigModel(t)
	view := m.View()
	for _, want := range []string{"Settings", "Copy to Clipboard", "Markdown Style", "Theme", "config.json"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
