package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rashisahu/folio/internal/api"
	"github.com/rashisahu/folio/internal/chat"
	apierrors "github.com/rashisahu/folio/internal/errors"
	"github.com/rashisahu/folio/internal/models"
	"github.com/rashisahu/folio/internal/render"
)

var quietLogger = &log.Logger{Handler: discard.Default, Level: log.DebugLevel}

func newTestModel(t *testing.T, sender chat.Sender, open bool) Model {
	t.Helper()
	panel := chat.NewPanel(sender, chat.WithLogger(quietLogger))
	m := NewModel(panel, models.DefaultProfile(), Options{
		Render:   render.DefaultOptions().WithStyle(render.StyleNoTTY),
		OpenChat: open,
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, keyRunes(string(r)))
	}
	return m
}

// settle runs the in-flight round trip synchronously
func settle(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.sendRound(m.round)()
	sm, ok := msg.(settleMsg)
	if !ok {
		t.Fatalf("sendRound returned %T, want settleMsg", msg)
	}
	m, _ = update(m, sm)
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModelClosedByDefault(t *testing.T) {
	m := newTestModel(t, &api.MockClient{}, false)

	if m.panel.IsOpen() {
		t.Error("panel should start closed")
	}
	if m.textarea.Focused() {
		t.Error("textarea should not be focused while the panel is closed")
	}
	if !strings.Contains(m.View(), "Skills") {
		t.Error("profile page should be rendered")
	}
}

func TestNewModelOpenChat(t *testing.T) {
	m := newTestModel(t, &api.MockClient{}, true)

	if !m.panel.IsOpen() || !m.textarea.Focused() {
		t.Error("panel should start open with a focused textarea")
	}
	if !strings.Contains(m.View(), "Ask about Rashi Sahu") {
		t.Error("panel title missing from view")
	}
}

func TestVisibilityKeys(t *testing.T) {
	m := newTestModel(t, &api.MockClient{}, false)

	steps := []struct {
		key      tea.KeyMsg
		wantOpen bool
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, true},
		{tea.KeyMsg{Type: tea.KeyCtrlT}, false},
		{keyRunes("c"), true},
		{tea.KeyMsg{Type: tea.KeyEsc}, false},
	}

	for i, s := range steps {
		var cmd tea.Cmd
		m, cmd = update(m, s.key)
		if isQuit(cmd) {
			t.Fatalf("step %d (%s) quit unexpectedly", i, s.key)
		}
		if m.panel.IsOpen() != s.wantOpen {
			t.Errorf("step %d (%s): open = %v, want %v", i, s.key, m.panel.IsOpen(), s.wantOpen)
		}
		if m.textarea.Focused() != s.wantOpen {
			t.Errorf("step %d (%s): focus = %v, want %v", i, s.key, m.textarea.Focused(), s.wantOpen)
		}
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		open bool
		key  tea.KeyMsg
		quit bool
	}{
		{"ctrl+c closed", false, tea.KeyMsg{Type: tea.KeyCtrlC}, true},
		{"ctrl+c open", true, tea.KeyMsg{Type: tea.KeyCtrlC}, true},
		{"q closed", false, keyRunes("q"), true},
		{"esc closed", false, tea.KeyMsg{Type: tea.KeyEsc}, true},
		{"q open types", true, keyRunes("q"), false},
		{"esc open closes", true, tea.KeyMsg{Type: tea.KeyEsc}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &api.MockClient{}, tt.open)
			_, cmd := update(m, tt.key)
			if isQuit(cmd) != tt.quit {
				t.Errorf("quit = %v, want %v", isQuit(cmd), tt.quit)
			}
		})
	}
}

func TestSubmitRoundTrip(t *testing.T) {
	client := &api.MockClient{Reply: "Rashi built **Akshar Mitra**."}
	m := newTestModel(t, client, true)

	m = typeText(m, "Projects?")
	if m.panel.Input() != "Projects?" {
		t.Fatalf("panel input = %q, want synced buffer", m.panel.Input())
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should return the send command")
	}
	if !m.panel.Pending() {
		t.Error("panel should be pending after enter")
	}
	if m.textarea.Value() != "" || m.panel.Input() != "" {
		t.Errorf("buffer not cleared: textarea %q, panel %q", m.textarea.Value(), m.panel.Input())
	}
	msgs := m.panel.Messages()
	if len(msgs) != 1 || msgs[0] != models.UserMessage("Projects?") {
		t.Fatalf("transcript after enter = %v", msgs)
	}
	if !strings.Contains(m.View(), "Assistant is typing") {
		t.Error("pending indicator missing from view")
	}

	m = settle(t, m)

	if m.panel.Pending() {
		t.Error("panel should be idle after settle")
	}
	msgs = m.panel.Messages()
	if len(msgs) != 2 || msgs[1].Content != client.Reply {
		t.Fatalf("transcript after settle = %v", msgs)
	}
	if client.LastMessage() != "Projects?" {
		t.Errorf("sent %q", client.LastMessage())
	}
	if !strings.Contains(m.View(), "Akshar Mitra") {
		t.Error("reply missing from view")
	}
}

func TestEnterIgnoredWhilePending(t *testing.T) {
	client := &api.MockClient{Reply: "ok"}
	m := newTestModel(t, client, true)

	m = typeText(m, "first")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	m = typeText(m, "second")
	if m.textarea.Value() != "second" {
		t.Fatalf("editing while pending: textarea = %q", m.textarea.Value())
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter while pending should not start a round")
	}
	if m.panel.Len() != 1 {
		t.Errorf("transcript length = %d, want 1", m.panel.Len())
	}
	if m.textarea.Value() != "second" {
		t.Errorf("buffer should be kept, got %q", m.textarea.Value())
	}
	if m.notice == "" {
		t.Error("expected a waiting notice")
	}
}

func TestEnterBlankIsNoop(t *testing.T) {
	m := newTestModel(t, &api.MockClient{}, true)

	m = typeText(m, "   ")
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.panel.Len() != 0 || m.panel.Pending() {
		t.Errorf("blank submit changed state: len %d pending %v", m.panel.Len(), m.panel.Pending())
	}
}

func TestFailedRoundAppendsFallback(t *testing.T) {
	client := &api.MockClient{Err: apierrors.NewNetworkError("send", errors.New("connection refused"))}
	m := newTestModel(t, client, true)

	m = typeText(m, "hello")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m)

	msgs := m.panel.Messages()
	if len(msgs) != 2 || msgs[1] != models.AssistantMessage(chat.FallbackReply) {
		t.Fatalf("transcript = %v", msgs)
	}
	if m.err == nil {
		t.Error("error should be surfaced in the panel status line")
	}
	if m.panel.Pending() {
		t.Error("pending should clear after a failure")
	}
}

func TestStaleSettleIgnored(t *testing.T) {
	m := newTestModel(t, &api.MockClient{}, true)

	m, _ = update(m, settleMsg{round: chat.Round{ID: 42}, reply: "late"})
	if m.panel.Len() != 0 {
		t.Errorf("stale settle appended: %v", m.panel.Messages())
	}
}

func TestSettleWhileClosed(t *testing.T) {
	m := newTestModel(t, &api.MockClient{Reply: "done"}, true)

	m = typeText(m, "hi")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = settle(t, m)

	if m.panel.IsOpen() {
		t.Error("settle should not reopen the panel")
	}
	if m.panel.Len() != 2 {
		t.Errorf("reply should land in the transcript while closed, len %d", m.panel.Len())
	}
}

func TestReopenAfterClosedSettleFollowsBottom(t *testing.T) {
	var reply strings.Builder
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&reply, "- item %d\n", i)
	}
	m := newTestModel(t, &api.MockClient{Reply: reply.String()}, true)

	m = typeText(m, "list everything")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = settle(t, m)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})

	if !m.panel.IsOpen() {
		t.Fatal("tab should reopen the panel")
	}
	if m.chatView.Height <= 3 {
		t.Fatalf("open chat viewport height = %d, want more than the closed minimum", m.chatView.Height)
	}
	if m.chatView.TotalLineCount() < m.chatView.Height {
		t.Fatalf("transcript too short to scroll: %d lines", m.chatView.TotalLineCount())
	}
	if got := m.chatView.VisibleLineCount(); got != m.chatView.Height {
		t.Errorf("visible lines = %d, want a full viewport of %d", got, m.chatView.Height)
	}
	if !strings.Contains(m.chatView.View(), "item 40") {
		t.Error("newest line should be visible after reopening")
	}
}

func TestPageDoesNotRepeatTagline(t *testing.T) {
	m := newTestModel(t, &api.MockClient{}, false)

	if !strings.Contains(m.renderHeader(), "Full-stack developer") {
		t.Error("header should show the tagline")
	}
	if strings.Contains(m.page.View(), "Full-stack developer") {
		t.Error("page should not repeat the tagline shown in the header")
	}
	if !strings.Contains(m.page.View(), "Skills") {
		t.Error("page should render the profile body")
	}
}

func TestCopyCommand(t *testing.T) {
	var copied []string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	defer func() { copyToClipboard = orig }()

	m := newTestModel(t, &api.MockClient{Reply: "Reach Rohit for details."}, true)

	m = typeText(m, "/copy")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(copied) != 0 || m.notice != "Nothing to copy yet" {
		t.Errorf("copy with empty transcript: copied %v notice %q", copied, m.notice)
	}
	if m.panel.Len() != 0 {
		t.Error("/copy must not be sent as a message")
	}

	m = typeText(m, "contact?")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m)

	m = typeText(m, "/copy")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(copied) != 1 || copied[0] != "Reach Rohit for details." {
		t.Errorf("copied = %v", copied)
	}
	if m.textarea.Value() != "" {
		t.Errorf("textarea = %q, want cleared", m.textarea.Value())
	}
}

func TestCopyCommandError(t *testing.T) {
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	defer func() { copyToClipboard = orig }()

	m := newTestModel(t, &api.MockClient{Reply: "x"}, true)
	m = typeText(m, "hi")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m)

	m = typeText(m, "/copy")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.err == nil || !strings.Contains(m.err.Error(), "copy failed") {
		t.Errorf("err = %v", m.err)
	}
}

func TestObserverConsumedAfterUpdate(t *testing.T) {
	m := newTestModel(t, &api.MockClient{Reply: "ok"}, true)

	m = typeText(m, "hi")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, dirty := m.tracker.take(); dirty {
		t.Error("submit should consume the observer notification")
	}

	m = settle(t, m)
	if _, dirty := m.tracker.take(); dirty {
		t.Error("settle should consume the observer notification")
	}
	if !m.chatView.AtBottom() {
		t.Error("transcript should follow the newest entry")
	}
}

func TestTypingTickAdvancesHero(t *testing.T) {
	panel := chat.NewPanel(&api.MockClient{}, chat.WithLogger(quietLogger))
	m := NewModel(panel, models.DefaultProfile(), Options{
		Render:         render.DefaultOptions().WithStyle(render.StyleNoTTY),
		TypingInterval: 10 * time.Millisecond,
	})
	if m.Init() == nil {
		t.Fatal("Init should schedule the typing effect")
	}

	m, cmd := update(m, typingTickMsg{})
	if m.typer.Text() != "H" {
		t.Errorf("hero after one tick = %q, want %q", m.typer.Text(), "H")
	}
	if cmd == nil {
		t.Error("typing should schedule another tick")
	}
}

func TestTypewriter(t *testing.T) {
	tw := newTypewriter("I’m", 100*time.Millisecond)
	if tw.Text() != "" || tw.Done() {
		t.Fatalf("fresh typewriter = %q done %v", tw.Text(), tw.Done())
	}

	want := []string{"I", "I’", "I’m", "I’m"}
	for i, w := range want {
		tw = tw.Advance()
		if tw.Text() != w {
			t.Errorf("advance %d = %q, want %q", i+1, tw.Text(), w)
		}
	}
	if !tw.Done() || tw.Tick() != nil {
		t.Error("finished typewriter should stop ticking")
	}

	instant := newTypewriter("Hi", 0)
	if !instant.Done() || instant.Text() != "Hi" {
		t.Errorf("zero interval should reveal everything, got %q", instant.Text())
	}
}

func TestViewBeforeReady(t *testing.T) {
	panel := chat.NewPanel(&api.MockClient{}, chat.WithLogger(quietLogger))
	m := NewModel(panel, models.DefaultProfile(), Options{})
	if !strings.Contains(m.View(), "Initializing") {
		t.Errorf("View() before size = %q", m.View())
	}
}

func TestStatusBar(t *testing.T) {
	m := newTestModel(t, &api.MockClient{}, false)
	if !strings.Contains(m.renderStatusBar(100), "Chat") {
		t.Error("closed status bar should offer Chat")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.renderStatusBar(100), "Send") {
		t.Error("open status bar should offer Send")
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"nil", nil, nil},
		{"api", apierrors.NewAPIError(500, "http://127.0.0.1:8000/chat", "boom"), []string{"HTTP Status: 500", "Endpoint: http://127.0.0.1:8000/chat"}},
		{"network", apierrors.NewNetworkError("send", errors.New("refused")), []string{"folio serve"}},
		{"timeout", apierrors.NewTimeoutError("60s"), []string{"timeout_seconds"}},
		{"parse", apierrors.NewParseError("missing field", "response"), []string{`{"response": ...}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			if tt.err == nil {
				if got != "" {
					t.Errorf("FormatError(nil) = %q", got)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("FormatError() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestApplyPaletteByName(t *testing.T) {
	defer ApplyPalette(render.FolioPalette)

	if !ApplyPaletteByName("tokyonight") || colorPrimary != render.TokyoNightPalette.Primary {
		t.Error("tokyonight palette not applied")
	}
	if ApplyPaletteByName("solarized") || colorPrimary != render.FolioPalette.Primary {
		t.Error("unknown palette should fall back to folio")
	}
}
