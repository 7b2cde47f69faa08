// FilePath: internal/report/paginate.go
package report

import "github.com/Kraikuppp/webmeter-hub/internal/models"

// Paginate slices rows into the requested page. Page indices are
// 1-based; out-of-range pages clamp to the nearest boundary. The total
// page count is at least 1 even for an empty row set.
func Paginate(rows []models.Reading, page, pageSize int) ([]models.Reading, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(rows) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], totalPages
}

// Transpose flips a cell grid so rows become columns. Applied to a
// payload grid it turns the horizontal (row = timestamp) layout into
// the vertical (row = field) one. Transposing twice recovers the
// original content. The input is never mutated.
func Transpose(grid [][]string) [][]string {
	if len(grid) == 0 {
		return [][]string{}
	}
	cols := len(grid[0])
	out := make([][]string, cols)
	for c := 0; c < cols; c++ {
		out[c] = make([]string, len(grid))
		for r := range grid {
			if c < len(grid[r]) {
				out[c][r] = grid[r][c]
			}
		}
	}
	return out
}

// OrientGrid returns the full display grid (header row first) for the
// requested orientation. The horizontal grid has one row per reading;
// the vertical grid has one row per selected field with a leading
// "Field" axis column.
func OrientGrid(p *models.ReportPayload, o models.Orientation) [][]string {
	grid := make([][]string, 0, len(p.Rows)+1)
	grid = append(grid, p.Header)
	grid = append(grid, p.Rows...)
	if o != models.OrientationVertical {
		return grid
	}
	flipped := Transpose(grid)
	if len(flipped) > 0 {
		// The time axis becomes the header; the leading cell names the
		// vertical axis instead of the time column.
		flipped[0] = append([]string{"Field"}, flipped[0][1:]...)
	}
	return flipped
}
