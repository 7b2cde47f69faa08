// FilePath: internal/export/text.go
package export

import (
	"fmt"
	"strings"
)

// EncodeText renders a display grid as a fixed-width plain-text table.
// Each column is padded to the wider of its header and content cells,
// columns join with " | " and a dashed rule separates the header.
func EncodeText(grid [][]string) []byte {
	if len(grid) == 0 {
		return []byte{}
	}

	widths := make([]int, len(grid[0]))
	for _, row := range grid {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		b.WriteString(strings.Join(parts, " | "))
		b.WriteByte('\n')
	}

	writeRow(grid[0])
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(rule, "-+-"))
	b.WriteByte('\n')
	for _, row := range grid[1:] {
		writeRow(row)
	}
	return []byte(b.String())
}
