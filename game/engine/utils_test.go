package engine

import "testing"

func TestSymbolRoundTrip(t *testing.T) {
	types := []CellType{Empty, Wall, Start, Goal, Mud, Water}
	for _, ct := range types {
		symbol := SymbolFor(ct)
		if got := TypeForSymbol(symbol); got != ct {
			t.Errorf("%s: symbol %q mapped back to %s", ct, symbol, got)
		}
	}

	if got := SymbolFor("lava"); got != '?' {
		t.Errorf("Expected '?' for an unknown type, got %q", got)
	}
	if got := TypeForSymbol('!'); got != Empty {
		t.Errorf("Expected unknown symbols to read as empty, got %s", got)
	}
	if got := TypeForSymbol(' '); got != Empty {
		t.Errorf("Expected whitespace to read as empty, got %s", got)
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{Row: 0, Col: 0}, Position{Row: 0, Col: 0}, 0},
		{Position{Row: 0, Col: 0}, Position{Row: 3, Col: 4}, 7},
		{Position{Row: 3, Col: 4}, Position{Row: 0, Col: 0}, 7},
		{Position{Row: 2, Col: 9}, Position{Row: 2, Col: 0}, 9},
		{Position{Row: -1, Col: 0}, Position{Row: 1, Col: 0}, 2},
	}
	for _, tt := range tests {
		if got := ManhattanDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("ManhattanDistance(%v,%v): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestPathCost(t *testing.T) {
	g, _, _ := ParseLevel(Level{
		Width:  5,
		Height: 1,
		Map:    []string{"S~≈.G"},
	})

	full := []Position{
		{Row: 0, Col: 0},
		{Row: 0, Col: 1},
		{Row: 0, Col: 2},
		{Row: 0, Col: 3},
		{Row: 0, Col: 4},
	}
	// Entering mud costs 5, water 10, empty and goal 1 each
	if got := PathCost(g, full); got != 17 {
		t.Errorf("Expected cost 17, got %d", got)
	}

	if got := PathCost(g, full[:1]); got != 0 {
		t.Errorf("Expected a single-cell path to cost 0, got %d", got)
	}
	if got := PathCost(g, nil); got != 0 {
		t.Errorf("Expected an empty path to cost 0, got %d", got)
	}
}

func TestCountCellType(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetType(Position{Row: 0, Col: 0}, Wall)
	g.SetType(Position{Row: 1, Col: 1}, Wall)
	g.SetType(Position{Row: 2, Col: 2}, Water)

	if got := CountCellType(g, Wall); got != 2 {
		t.Errorf("Expected 2 walls, got %d", got)
	}
	if got := CountCellType(g, Water); got != 1 {
		t.Errorf("Expected 1 water cell, got %d", got)
	}
	if got := CountCellType(g, Empty); got != 22 {
		t.Errorf("Expected 22 empty cells, got %d", got)
	}
}
