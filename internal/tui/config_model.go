package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rashisahu/folio/internal/config"
	"github.com/rashisahu/folio/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewStyleSelect
	viewThemeSelect
)

// Menu item indices for main view
const (
	menuCopyToClipboard = iota
	menuVerbose
	menuMarkdownStyle
	menuTheme
	menuExit
	menuItemCount
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel is the interactive settings editor
type ConfigModel struct {
	config     config.Config
	configPath string
	save       func(config.Config) error

	view        configView
	cursor      int
	styleCursor int
	themeCursor int

	feedback        string
	feedbackIsError bool
	feedbackTimeout time.Duration

	width int
	ready bool
}

// NewConfigModel creates the editor around cfg. save persists every change.
func NewConfigModel(cfg config.Config, configPath string, save func(config.Config) error) ConfigModel {
	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		save:            save,
		styleCursor:     indexOf(render.StyleNames(), cfg.Markdown.Style),
		themeCursor:     indexOf(themeNames(), cfg.Theme),
		feedbackTimeout: 2 * time.Second,
	}
}

// Config returns the settings as last edited
func (m ConfigModel) Config() config.Config {
	return m.config
}

func themeNames() []string {
	palettes := render.Palettes()
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

func indexOf(items []string, v string) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.view != viewMain {
				m.view = viewMain
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// moveCursor moves the cursor of the active view, wrapping at both ends
func (m *ConfigModel) moveCursor(delta int) {
	wrap := func(i, n int) int {
		return (i + delta + n) % n
	}
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor, menuItemCount)
	case viewStyleSelect:
		m.styleCursor = wrap(m.styleCursor, len(render.StyleNames()))
	case viewThemeSelect:
		m.themeCursor = wrap(m.themeCursor, len(themeNames()))
	}
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			return m.persist(fmt.Sprintf("Copy to clipboard %s", onOff(m.config.CopyToClipboard)))
		case menuVerbose:
			m.config.Verbose = !m.config.Verbose
			return m.persist(fmt.Sprintf("Verbose logging %s", onOff(m.config.Verbose)))
		case menuMarkdownStyle:
			m.view = viewStyleSelect
		case menuTheme:
			m.view = viewThemeSelect
		case menuExit:
			return m, tea.Quit
		}
		return m, nil

	case viewStyleSelect:
		m.config.Markdown.Style = render.StyleNames()[m.styleCursor]
		m.view = viewMain
		return m.persist("Markdown style set to " + m.config.Markdown.Style)

	case viewThemeSelect:
		m.config.Theme = themeNames()[m.themeCursor]
		ApplyPaletteByName(m.config.Theme)
		m.view = viewMain
		return m.persist("Theme set to " + m.config.Theme)
	}

	return m, nil
}

func (m ConfigModel) persist(success string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
		m.feedbackIsError = true
	} else {
		m.feedback = success
		m.feedbackIsError = false
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// View renders the editor
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := headerStyle.Width(contentWidth).Render(panelTitleStyle.Render("✦ Settings"))
	paths := pageStyle.Width(contentWidth).Render(
		hintStyle.Render("Config: ") + subtitleStyle.Render(m.configPath),
	)

	var body string
	switch m.view {
	case viewMain:
		body = m.renderMainMenu()
	case viewStyleSelect:
		body = renderChoices("Markdown Style", render.StyleNames(), m.styleCursor, m.config.Markdown.Style)
	case viewThemeSelect:
		body = renderChoices("Theme", themeNames(), m.themeCursor, m.config.Theme)
	}

	sections := []string{header, paths, pageStyle.Width(contentWidth).Render(body)}

	if m.feedback != "" {
		if m.feedbackIsError {
			sections = append(sections, errorStyle.Render("✗ "+m.feedback))
		} else {
			sections = append(sections, noticeStyle.Render("✓ "+m.feedback))
		}
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func menuLine(selected bool, label, value string) string {
	cursor := "  "
	style := subtitleStyle
	if selected {
		cursor = cursorStyle.Render("▸ ")
		style = panelTitleStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	pad := 20 - lipgloss.Width(label)
	if pad < 1 {
		pad = 1
	}
	return cursor + style.Render(label) + strings.Repeat(" ", pad) + badgeStyle.Render(value)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	items := []string{
		menuLine(m.cursor == menuCopyToClipboard, "Copy to Clipboard", onOff(m.config.CopyToClipboard)),
		menuLine(m.cursor == menuVerbose, "Verbose Logging", onOff(m.config.Verbose)),
		menuLine(m.cursor == menuMarkdownStyle, "Markdown Style", m.config.Markdown.Style),
		menuLine(m.cursor == menuTheme, "Theme", m.config.Theme),
		"",
		menuLine(m.cursor == menuExit, "Exit", ""),
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func renderChoices(title string, names []string, cursor int, current string) string {
	items := []string{panelTitleStyle.Render(title), ""}
	for i, name := range names {
		value := ""
		if name == current {
			value = "current"
		}
		items = append(items, menuLine(i == cursor, name, value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m ConfigModel) renderStatusBar(width int) string {
	var hints []string
	if m.view == viewMain {
		hints = []string{"↑/↓ move", "enter select", "esc quit"}
	} else {
		hints = []string{"↑/↓ move", "enter apply", "esc back"}
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		key, desc, _ := strings.Cut(h, " ")
		parts[i] = statusKeyStyle.Render(key) + " " + statusDescStyle.Render(desc)
	}
	return statusBarStyle.Width(width).Render(strings.Join(parts, "  "))
}

// RunConfig starts the settings editor and returns the edited settings
func RunConfig(cfg config.Config, configPath string, save func(config.Config) error) (config.Config, error) {
	p := tea.NewProgram(NewConfigModel(cfg, configPath, save), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return cfg, fmt.Errorf("error running config editor: %w", err)
	}
	if m, ok := final.(ConfigModel); ok {
		return m.Config(), nil
	}
	return cfg, nil
}
