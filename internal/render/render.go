package render

import (
	"strings"

	"github.com/rashisahu/folio/internal/models"
)

// Markdown renders markdown content for terminal display using a pooled renderer.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth renders with default options at the given width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// MarkdownOrPlain renders content, falling back to the raw text when
// rendering fails.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// TranscriptMarkdown formats a transcript as markdown, one labelled entry per
// message, in transcript order.
func TranscriptMarkdown(messages []models.Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("**")
		sb.WriteString(msg.Role.Label())
		sb.WriteString(":** ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
