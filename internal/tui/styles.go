// Package tui provides the terminal interface for folio: the profile page
// and the chat panel overlay.
package tui

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rashisahu/folio/internal/errors"
	"github.com/rashisahu/folio/internal/render"
)

// Color variables (updated from the palette)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when the palette changes)
var (
	headerStyle   lipgloss.Style
	heroStyle     lipgloss.Style
	cursorStyle   lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style
	badgeStyle    lipgloss.Style

	// Profile page panel
	pageStyle lipgloss.Style

	// Chat panel overlay
	panelStyle      lipgloss.Style
	panelTitleStyle lipgloss.Style

	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style

	loadingStyle lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle lipgloss.Style

	welcomeTitleStyle lipgloss.Style
	welcomeIconStyle  lipgloss.Style
)

// Gradient colors for the pending animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#c084fc"),
	lipgloss.Color("#f472b6"),
	lipgloss.Color("#fb7185"),
	lipgloss.Color("#fbbf24"),
	lipgloss.Color("#34d399"),
	lipgloss.Color("#22d3ee"),
	lipgloss.Color("#60a5fa"),
}

func init() {
	ApplyPalette(render.FolioPalette)
}

// ApplyPalette refreshes all styles from p
func ApplyPalette(p render.Palette) {
	colorSurface = p.Surface
	colorBorder = p.Border
	colorPrimary = p.Primary
	colorSecondary = p.Secondary
	colorAccent = p.Accent
	colorWarning = p.Warning
	colorError = p.Error
	colorText = p.Text
	colorTextDim = p.TextDim
	colorTextMute = p.TextMute

	rebuildStyles()
}

// ApplyPaletteByName applies the named palette, falling back to the default.
// It reports whether name was found.
func ApplyPaletteByName(name string) bool {
	p, ok := render.PaletteByName(name)
	if !ok {
		p = render.FolioPalette
	}
	ApplyPalette(p)
	return ok
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	heroStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	cursorStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	badgeStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	pageStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(4)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderForeground(colorBorder)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	welcomeIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent)
}

// FormatError returns a styled error message with details pulled from the
// typed errors.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	var apiErr *errors.APIError
	var netErr *errors.NetworkError
	switch {
	case stderrors.As(err, &apiErr) && apiErr.Endpoint != "":
		sb.WriteString(dimStyle.Render("\n  Endpoint: " + apiErr.Endpoint))
	case stderrors.As(err, &netErr) && netErr.Endpoint != "":
		sb.WriteString(dimStyle.Render("\n  Endpoint: " + netErr.Endpoint))
	}

	switch {
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The assistant took too long. Raise timeout_seconds or try again"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Is the assistant service running? Start it with 'folio serve'"))
	case errors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The endpoint answered, but not with {\"response\": ...}"))
	}

	return sb.String()
}

// PrintError prints a styled error message.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Println(FormatError(err))
}
