package check

import (
	"strings"

	"fortio.org/safecast"

	"zoia/internal/source"
)

// spanAt converts a position into a byte span of width bytes, clipped to
// the end of the line.
func (c *checker) spanAt(pos source.Pos, width int) source.Span {
	if c.file == nil || !pos.IsValid() {
		return source.Span{}
	}
	start := c.file.OffsetOf(pos.Line, pos.Column)
	w, err := safecast.Conv[uint32](max(width, 1))
	if err != nil {
		w = 1
	}
	end := start
	for end < start+w && int(end) < len(c.file.Content) && c.file.Content[end] != '\n' {
		end++
	}
	return source.Span{File: c.file.ID, Start: start, End: end}
}

func joinNames(names []string, prefix string) string {
	var sb strings.Builder
	for i, n := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(prefix)
		sb.WriteString(n)
	}
	return sb.String()
}
