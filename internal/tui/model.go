package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rashisahu/folio/internal/chat"
	"github.com/rashisahu/folio/internal/models"
	"github.com/rashisahu/folio/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// settleMsg carries the outcome of one round trip back into Update
type settleMsg struct {
	round chat.Round
	reply string
	err   error
}

// Options configures the terminal app
type Options struct {
	Render render.Options
	// TypingInterval is the delay between hero line characters
	TypingInterval time.Duration
	// OpenChat starts with the chat panel open
	OpenChat bool
}

// copyToClipboard is swapped in tests
var copyToClipboard = clipboard.WriteAll

// scrollTracker records panel observer calls until the view consumes them
type scrollTracker struct {
	mu     sync.Mutex
	dirty  bool
	latest int
}

func (s *scrollTracker) notify(latest int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	s.latest = latest
}

func (s *scrollTracker) take() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dirty := s.dirty
	s.dirty = false
	return s.latest, dirty
}

// Model is the profile page with the chat panel overlay
type Model struct {
	panel   *chat.Panel
	profile models.Profile
	opts    Options

	// UI components
	page     viewport.Model
	chatView viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	typer    typewriter

	tracker *scrollTracker
	round   chat.Round

	ready          bool
	animationFrame int
	notice         string
	err            error

	width  int
	height int
}

// NewModel creates the app model around panel
func NewModel(panel *chat.Panel, profile models.Profile, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = fmt.Sprintf("Ask about %s's projects, skills or availability...", profile.Name)
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	tracker := &scrollTracker{}
	panel.Observe(tracker.notify)

	if opts.OpenChat {
		panel.Open()
	}

	m := Model{
		panel:    panel,
		profile:  profile,
		opts:     opts,
		textarea: ta,
		spinner:  s,
		typer:    newTypewriter(profile.Headline(), opts.TypingInterval),
		tracker:  tracker,
	}
	m.applyFocus()
	return m
}

// Init starts the cursor blink and the typing effect
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.typer.Tick(),
	)
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshPage()
		m.refreshTranscript()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.panel.IsOpen() {
			m.chatView, cmd = m.chatView.Update(msg)
		} else {
			m.page, cmd = m.page.Update(msg)
		}
		cmds = append(cmds, cmd)

	case settleMsg:
		if m.panel.Settle(msg.round, msg.reply, msg.err) && msg.err != nil {
			m.err = msg.err
		}

	case typingTickMsg:
		m.typer = m.typer.Advance()
		cmds = append(cmds, m.typer.Tick())

	case spinner.TickMsg:
		if m.panel.Pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.panel.Pending() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	m.syncScroll()
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+t", "tab":
		m.panel.Toggle()
		m.afterVisibilityChange()
		return m, nil
	}

	if !m.panel.IsOpen() {
		switch msg.String() {
		case "c":
			m.panel.Open()
			m.afterVisibilityChange()
		case "q", "esc":
			return m, tea.Quit
		default:
			m.page, cmd = m.page.Update(msg)
		}
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.panel.Close()
		m.afterVisibilityChange()
		return m, nil
	case "enter":
		return m.submit()
	case "pgup", "pgdown":
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	}

	// Editing stays possible while a round is pending.
	m.textarea, cmd = m.textarea.Update(msg)
	m.panel.SetInput(m.textarea.Value())
	return m, cmd
}

// submit hands the composition buffer to the panel
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.textarea.Value()

	switch strings.TrimSpace(text) {
	case "/copy":
		m.textarea.Reset()
		m.panel.SetInput("")
		m.copyLastReply()
		return m, nil
	case "/quit", "/exit":
		return m, tea.Quit
	}

	round, ok := m.panel.Begin(text)
	if !ok {
		if m.panel.Pending() {
			m.notice = "Still waiting for the last answer..."
		}
		return m, nil
	}

	m.textarea.Reset()
	m.round = round
	m.animationFrame = 0
	m.notice = ""
	m.err = nil
	m.syncScroll()

	return m, tea.Batch(
		m.sendRound(round),
		m.spinner.Tick,
		animationTick(),
	)
}

// sendRound performs the round trip off the update loop
func (m Model) sendRound(round chat.Round) tea.Cmd {
	panel := m.panel
	return func() tea.Msg {
		reply, err := panel.Exchange(context.Background(), round)
		return settleMsg{round: round, reply: reply, err: err}
	}
}

func (m *Model) copyLastReply() {
	msgs := m.panel.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != models.RoleAssistant {
			continue
		}
		if err := copyToClipboard(msgs[i].Content); err != nil {
			m.err = fmt.Errorf("copy failed: %w", err)
			return
		}
		m.notice = "Copied the last reply to the clipboard"
		return
	}
	m.notice = "Nothing to copy yet"
}

func (m *Model) afterVisibilityChange() {
	m.applyFocus()
	m.layout()
	m.refreshTranscript()
	// The viewport grows on open; an offset taken while closed is stale.
	if m.panel.IsOpen() {
		m.chatView.GotoBottom()
	}
}

func (m *Model) applyFocus() {
	if m.panel.IsOpen() {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
}

// syncScroll re-renders the transcript after panel mutations and follows
// the newest entry.
func (m *Model) syncScroll() {
	if _, dirty := m.tracker.take(); !dirty {
		return
	}
	m.refreshTranscript()
	m.chatView.GotoBottom()
}

// layout sizes the page and chat viewports for the current window
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	headerHeight := 4 // two lines plus border
	statusHeight := 1
	avail := m.height - headerHeight - statusHeight

	pageHeight := avail
	transcriptHeight := 0
	if m.panel.IsOpen() {
		panelHeight := max(avail*3/5, 10)
		pageHeight = avail - panelHeight
		// border 2, title 1, status line 1, input 3
		transcriptHeight = max(panelHeight-7, 3)
	}

	pageWidth := m.width - 2
	chatWidth := m.width - 4

	if !m.ready {
		m.page = viewport.New(pageWidth, max(pageHeight-2, 1))
		m.chatView = viewport.New(chatWidth, max(transcriptHeight, 3))
		m.ready = true
	} else {
		m.page.Width = pageWidth
		m.page.Height = max(pageHeight-2, 1)
		m.chatView.Width = chatWidth
		m.chatView.Height = max(transcriptHeight, 3)
	}
	m.textarea.SetWidth(chatWidth)
}

func (m *Model) refreshPage() {
	if !m.ready {
		return
	}
	opts := m.opts.Render.WithWidth(max(m.page.Width-2, 20))
	m.page.SetContent(render.MarkdownOrPlain(m.profile.Body(), opts))
}

// refreshTranscript renders the panel transcript into the chat viewport
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}

	msgs := m.panel.Messages()
	if len(msgs) == 0 {
		m.chatView.SetContent(m.renderWelcome())
		return
	}

	var content strings.Builder
	bubbleWidth := max(m.chatView.Width-6, 10)
	mdOpts := m.opts.Render.WithWidth(max(bubbleWidth-4, 10))

	for i, msg := range msgs {
		if i > 0 {
			content.WriteString("\n")
		}
		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render("⬤ " + msg.Role.Label())
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ " + msg.Role.Label())
			rendered := render.MarkdownOrPlain(msg.Content, mdOpts)
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.chatView.SetContent(content.String())
}

// View renders the app
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	sections := []string{
		m.renderHeader(),
		pageStyle.Width(m.width - 2).Render(m.page.View()),
	}

	if m.panel.IsOpen() {
		sections = append(sections, m.renderPanel())
	}

	sections = append(sections, m.renderStatusBar(m.width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	hero := heroStyle.Render(m.typer.Text())
	if !m.typer.Done() {
		hero += cursorStyle.Render("▌")
	}

	sub := subtitleStyle.Render(m.profile.Tagline)
	if m.profile.Availability != "" {
		sub = badgeStyle.Render("● "+strings.ToUpper(m.profile.Availability)) + hintStyle.Render("  ") + sub
	}

	return headerStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, hero, sub))
}

func (m Model) renderPanel() string {
	title := panelTitleStyle.Render(fmt.Sprintf("✦ Ask about %s", m.profile.Name))

	var status string
	switch {
	case m.panel.Pending():
		status = m.renderLoadingAnimation()
	case m.err != nil:
		status = errorStyle.Render("⚠ " + firstLine(m.err.Error()))
	case m.notice != "":
		status = noticeStyle.Render(m.notice)
	}

	input := inputPanelStyle.Width(m.width - 4).Render(m.textarea.View())

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.chatView.View(),
		status,
		input,
	)
	return panelStyle.Width(m.width - 2).Render(body)
}

func (m Model) renderWelcome() string {
	width := max(m.chatView.Width-4, 10)

	icon := welcomeIconStyle.Width(width).Align(lipgloss.Center).Render("✦")
	title := welcomeTitleStyle.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Hi! I'm %s's assistant.", m.profile.Name))
	subtitle := hintStyle.Width(width).Align(lipgloss.Center).
		Render("Ask me about projects, skills or how to get in touch.")

	return lipgloss.JoinVertical(lipgloss.Center, "", icon, "", title, subtitle)
}

// renderLoadingAnimation renders the pending indicator
func (m Model) renderLoadingAnimation() string {
	frame := m.animationFrame

	spin := lipgloss.NewStyle().
		Foreground(gradientColors[frame%len(gradientColors)]).
		Bold(true).
		Render(m.spinner.View())

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Assistant is typing ")
	return spin + text + dots.String()
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	type shortcut struct {
		key  string
		desc string
	}

	shortcuts := []shortcut{
		{"c", "Chat"},
		{"↑↓", "Scroll"},
		{"q", "Quit"},
	}
	if m.panel.IsOpen() {
		shortcuts = []shortcut{
			{"Enter", "Send"},
			{"Tab", "Hide"},
			{"/copy", "Copy reply"},
			{"PgUp/PgDn", "Scroll"},
			{"Esc", "Close"},
		}
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// RunApp starts the terminal app
func RunApp(panel *chat.Panel, profile models.Profile, opts Options) error {
	m := NewModel(panel, profile, opts)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
