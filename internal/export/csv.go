package export

import (
	"bufio"
	"io"
	"strings"
)

var quoteEscaper = strings.NewReplacer(`"`, `""`)

// WriteCSV writes the header and rows with every cell quoted and "\n" line
// endings.
func WriteCSV(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	for i, r := range append([]Row{Header}, rows...) {
		if i > 0 {
			bw.WriteByte('\n')
		}
		for j, cell := range r.cells() {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			quoteEscaper.WriteString(bw, cell)
			bw.WriteByte('"')
		}
	}
	return bw.Flush()
}
