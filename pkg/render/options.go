package render

import "strings"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the route entries.
type RenderOptions struct {
	// Labels are added to every generated resource's metadata.
	Labels map[string]string
	// IncludeUnresolved asks renderers that support it to emit entries that
	// have no target service (as comments or placeholders) instead of
	// skipping them.
	IncludeUnresolved bool
	// Header is written as a comment block at the top of the artifact,
	// typically a "generated by" notice. See CommentHeader.
	Header string
}

// CommentHeader turns header into YAML comment lines. Lines that already
// start with '#' are kept; blank lines become a bare '#'.
func CommentHeader(header string) string {
	header = strings.TrimRight(header, "\r\n")
	if header == "" {
		return ""
	}
	lines := strings.Split(header, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "#"):
			lines[i] = line
		case strings.TrimSpace(line) == "":
			lines[i] = "#"
		default:
			lines[i] = "# " + line
		}
	}
	return strings.Join(lines, "\n")
}
