package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// typingTickMsg advances the hero typing effect by one rune
type typingTickMsg struct{}

// typewriter reveals text one rune per interval
type typewriter struct {
	runes    []rune
	shown    int
	interval time.Duration
}

// newTypewriter starts with nothing shown. A non-positive interval shows the
// whole text at once.
func newTypewriter(text string, interval time.Duration) typewriter {
	t := typewriter{runes: []rune(text), interval: interval}
	if interval <= 0 {
		t.shown = len(t.runes)
	}
	return t
}

// Text is the revealed prefix
func (t typewriter) Text() string {
	return string(t.runes[:t.shown])
}

// Done reports whether the full text is revealed
func (t typewriter) Done() bool {
	return t.shown >= len(t.runes)
}

// Advance reveals one more rune; it stops at full length.
func (t typewriter) Advance() typewriter {
	if !t.Done() {
		t.shown++
	}
	return t
}

// Tick schedules the next advance, or nil once done
func (t typewriter) Tick() tea.Cmd {
	if t.Done() {
		return nil
	}
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return typingTickMsg{}
	})
}
