package shopping

import (
	"io"
	"strconv"

	"foodgram/internal/domain/entity"
)

const (
	// ContentType of the rendered report.
	ContentType = "text/plain; charset=utf-8"
	// Filename offered to the browser in Content-Disposition.
	Filename = "shopping_list.txt"
)

// ContentDisposition is the header value that makes browsers download the report.
const ContentDisposition = `attachment; filename="` + Filename + `"`

// Renderer formats aggregated lines as plain text, one "<name> - <total>(<unit>)" per line.
// Output depends only on the input slice, so equal input renders byte-identical output.
type Renderer struct{}

// Render writes the report for lines to w in a single Write call.
func (r Renderer) Render(w io.Writer, lines []entity.AggregatedLine) error {
	_, err := w.Write(r.RenderBytes(lines))
	return err
}

// RenderBytes returns the report for lines. No lines yields an empty slice.
func (Renderer) RenderBytes(lines []entity.AggregatedLine) []byte {
	size := 0
	for _, l := range lines {
		size += len(l.Name) + len(l.Unit) + 24
	}
	buf := make([]byte, 0, size)
	for _, l := range lines {
		buf = append(buf, l.Name...)
		buf = append(buf, " - "...)
		buf = strconv.AppendInt(buf, l.Total, 10)
		buf = append(buf, '(')
		buf = append(buf, l.Unit...)
		buf = append(buf, ")\n"...)
	}
	return buf
}
