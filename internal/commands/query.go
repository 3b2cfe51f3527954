package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rashisahu/folio/internal/render"
	"github.com/rashisahu/folio/internal/tui"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#c084fc"),
	lipgloss.Color("#e879f9"),
	lipgloss.Color("#f472b6"),
	lipgloss.Color("#818cf8"),
	lipgloss.Color("#60a5fa"),
}

var (
	colorText     = lipgloss.Color("#e2e8f0")
	colorTextMute = lipgloss.Color("#475569")
	colorSuccess  = lipgloss.Color("#34d399")
	colorWarning  = lipgloss.Color("#f87171")
	colorPrimary  = lipgloss.Color("#a78bfa")
)

var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)
)

// copyToClipboard is swapped in tests
var copyToClipboard = clipboard.WriteAll

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

// newSpinner creates a spinner drawing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[s.frame%len(chars)])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner without a message
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runQuery sends one message and prints the reply. Output is undecorated
// when --raw is set or stdout is not a terminal.
func runQuery(cmd *cobra.Command, deps *Dependencies, opts *rootOptions, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	raw := opts.raw || deps.StdoutIsTTY == nil || !deps.StdoutIsTTY()
	logger := newLogger(stderr, cfg.Verbose && !raw)

	sender, err := deps.NewSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	logger.WithField("endpoint", cfg.Endpoint).Debug("sending message")

	var spin *spinner
	if !raw {
		spin = newSpinner(stderr, "Asking the assistant")
		spin.start()
	}

	start := time.Now()
	reply, err := sender.Send(cmd.Context(), message)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
			fmt.Fprintln(stderr, tui.FormatError(err))
		}
		return fmt.Errorf("send failed: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}

	logger.WithField("duration", time.Since(start).Round(time.Millisecond)).Debug("reply received")

	if raw {
		if opts.output != "" {
			return writeOutput(opts.output, reply)
		}
		fmt.Fprint(stdout, reply)
		return nil
	}

	fmt.Fprintln(stderr)

	if cfg.CopyToClipboard {
		if err := copyToClipboard(reply); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(colorWarning).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(stderr, warnMsg)
		} else {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		if err := writeOutput(opts.output, reply); err != nil {
			return err
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Reply saved to %s", opts.output),
		)
		fmt.Fprintln(stderr, successMsg)
		return nil
	}

	bubbleWidth := clampWidth(getTerminalWidth()-4, 40, 120)
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(stdout, assistantLabelStyle.Render("✦ Assistant"))

	renderOpts := render.OptionsFromConfigWithWidth(cfg.Markdown, contentWidth)
	rendered := render.MarkdownOrPlain(reply, renderOpts)
	fmt.Fprintln(stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))

	return nil
}

func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func clampWidth(w, lo, hi int) int {
	if w < lo {
		return lo
	}
	if w > hi {
		return hi
	}
	return w
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
