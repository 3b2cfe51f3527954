package render

import (
	"os"

	"github.com/rashisahu/folio/internal/config"
)

// OptionsFromConfig builds render options from the markdown section of the
// user configuration. GLAMOUR_STYLE overrides the configured style.
func OptionsFromConfig(md config.MarkdownConfig) Options {
	opts := DefaultOptions()

	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}

// OptionsFromConfigWithWidth is OptionsFromConfig with an explicit width.
func OptionsFromConfigWithWidth(md config.MarkdownConfig, width int) Options {
	return OptionsFromConfig(md).WithWidth(width)
}
