package engine

// Level map symbols, one rune per cell
var symbolToType = map[rune]CellType{
	'.': Empty,
	'#': Wall,
	'~': Mud,
	'≈': Water,
	'S': Start,
	'G': Goal,
}

var typeToSymbol = map[CellType]rune{
	Empty: '.',
	Wall:  '#',
	Mud:   '~',
	Water: '≈',
	Start: 'S',
	Goal:  'G',
}

// SymbolFor returns the map symbol for a cell type
func SymbolFor(t CellType) rune {
	if r, ok := typeToSymbol[t]; ok {
		return r
	}
	return '?'
}

// TypeForSymbol returns the cell type for a map symbol. Whitespace and any
// unrecognized rune read as empty, so short or padded rows stay valid.
func TypeForSymbol(r rune) CellType {
	if t, ok := symbolToType[r]; ok {
		return t
	}
	return Empty
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// PathCost sums the cost of entering each cell on the path after the first.
// A single-cell or empty path costs nothing.
func PathCost(g Grid, path []Position) int {
	if len(path) < 2 {
		return 0
	}
	total := 0
	for _, p := range path[1:] {
		total += CostOf(g.TypeAt(p))
	}
	return total
}

// CountCellType counts the cells of the given type in the grid
func CountCellType(g Grid, t CellType) int {
	count := 0
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if g.Cells[row][col].Type == t {
				count++
			}
		}
	}
	return count
}
