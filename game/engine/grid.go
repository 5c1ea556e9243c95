package engine

import "strings"

// gridDirections are the 4-connected neighbor offsets: up, down, left, right
var gridDirections = []Position{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// Grid is a rectangular height x width matrix of cells
type Grid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  [][]Cell `json:"cells"`
}

// NewGrid creates a grid of the given size with every cell empty
func NewGrid(width, height int) Grid {
	cells := make([][]Cell, height)
	for row := range cells {
		cells[row] = make([]Cell, width)
		for col := range cells[row] {
			cells[row][col] = Cell{Type: Empty}
		}
	}
	return Grid{Width: width, Height: height, Cells: cells}
}

// InBounds reports whether p lies inside the grid
func (g Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.Height && p.Col >= 0 && p.Col < g.Width
}

// TypeAt returns the cell type at p. Out-of-bounds positions read as walls.
func (g Grid) TypeAt(p Position) CellType {
	if !g.InBounds(p) {
		return Wall
	}
	return g.Cells[p.Row][p.Col].Type
}

// SetType sets the cell type at p, clearing any search flags on the cell.
// Out-of-bounds writes are dropped.
func (g *Grid) SetType(p Position, t CellType) {
	if !g.InBounds(p) {
		return
	}
	g.Cells[p.Row][p.Col] = Cell{Type: t}
}

// Clone returns a deep copy of the grid
func (g Grid) Clone() Grid {
	cells := make([][]Cell, len(g.Cells))
	for row := range g.Cells {
		cells[row] = make([]Cell, len(g.Cells[row]))
		copy(cells[row], g.Cells[row])
	}
	return Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// Neighbors returns the in-bounds 4-connected neighbors of p
func (g Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, 4)
	for _, d := range gridDirections {
		next := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.InBounds(next) {
			out = append(out, next)
		}
	}
	return out
}

// FindCell returns the position of the first cell of the given type,
// scanning row-major, or nil if none exists
func (g Grid) FindCell(t CellType) *Position {
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if g.Cells[row][col].Type == t {
				return &Position{Row: row, Col: col}
			}
		}
	}
	return nil
}

// ResetSearchFlags clears the visited/in-path visualization flags on every cell
func (g *Grid) ResetSearchFlags() {
	for row := range g.Cells {
		for col := range g.Cells[row] {
			g.Cells[row][col].Visited = false
			g.Cells[row][col].InPath = false
		}
	}
}

// MarkSearchResult flags the cells expanded and the path found by a search
// so renderers can display them
func (g *Grid) MarkSearchResult(visited map[Position]bool, path []Position) {
	g.ResetSearchFlags()
	for p := range visited {
		if g.InBounds(p) {
			g.Cells[p.Row][p.Col].Visited = true
		}
	}
	for _, p := range path {
		if g.InBounds(p) {
			g.Cells[p.Row][p.Col].InPath = true
		}
	}
}

// String renders the grid in the level map format, one row per line
func (g Grid) String() string {
	var sb strings.Builder
	for row := range g.Cells {
		for col := range g.Cells[row] {
			sb.WriteRune(SymbolFor(g.Cells[row][col].Type))
		}
		if row < len(g.Cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
