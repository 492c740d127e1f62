package keypad

// Cell is one button of the on-screen grid. Span is the number of grid
// columns the button covers.
type Cell struct {
	Key  Key
	Span int
}

// Columns is the width of the grid in single-span cells.
const Columns = 4

var layout = [][]Cell{
	{{KeyClear, 1}, {KeyToggleSign, 1}, {KeyPercent, 1}, {KeyDivide, 1}},
	{{Key7, 1}, {Key8, 1}, {Key9, 1}, {KeyMultiply, 1}},
	{{Key4, 1}, {Key5, 1}, {Key6, 1}, {KeySubtract, 1}},
	{{Key1, 1}, {Key2, 1}, {Key3, 1}, {KeyAdd, 1}},
	{{Key0, 2}, {KeyDecimal, 1}, {KeyEquals, 1}},
}

// Layout returns the keypad grid, top row first. The returned slices are
// copies.
func Layout() [][]Cell {
	rows := make([][]Cell, len(layout))
	for i, row := range layout {
		rows[i] = append([]Cell(nil), row...)
	}
	return rows
}

// CellAt returns the index of the cell in row covering grid column col.
func CellAt(row, col int) (int, bool) {
	if row < 0 || row >= len(layout) || col < 0 || col >= Columns {
		return 0, false
	}
	start := 0
	for i, c := range layout[row] {
		if col < start+c.Span {
			return i, true
		}
		start += c.Span
	}
	return 0, false
}

// ColumnOf returns the first grid column covered by cell idx of row.
func ColumnOf(row, idx int) int {
	col := 0
	for i := 0; i < idx && i < len(layout[row]); i++ {
		col += layout[row][i].Span
	}
	return col
}

// Rows is the number of grid rows.
func Rows() int { return len(layout) }
