// Package render provides markdown rendering and the color palettes used
// for terminal output.
package render

// Glamour built-in styles accepted by Options.Style. Any other value is
// treated as a path to a JSON style file.
const (
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleDracula = "dracula"
	StyleNoTTY   = "notty"
	StyleASCII   = "ascii"
)

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style is a glamour built-in style name or a path to a JSON style file
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	// PreserveNewLines preserves original line breaks
	PreserveNewLines bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithEmoji returns Options with emoji support enabled/disabled.
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// WithPreserveNewLines returns Options with newline preservation enabled/disabled.
func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}

// IsBuiltinStyle reports whether style names one of glamour's built-in styles.
func IsBuiltinStyle(style string) bool {
	switch style {
	case StyleDark, StyleLight, StyleDracula, StyleNoTTY, StyleASCII:
		return true
	default:
		return false
	}
}

// StyleNames lists the built-in styles for `folio config set markdown.style`.
func StyleNames() []string {
	return []string{StyleDark, StyleLight, StyleDracula, StyleNoTTY, StyleASCII}
}
