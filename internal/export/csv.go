// FilePath: internal/export/csv.go
package export

import (
	"strings"
)

// EncodeCSV serializes a display grid (header row first) to CSV text.
// Every value is quoted, embedded quotes are doubled, rows join with
// \n, so the output round-trips through any standard CSV parser.
func EncodeCSV(grid [][]string) []byte {
	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}
