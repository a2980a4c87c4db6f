package core

// CountNeighbors returns the number of live cells among the up to eight
// cells adjacent to (row, col). Neighbours outside the grid do not count;
// edges are hard boundaries, there is no wrap-around.
func CountNeighbors(g *Grid, row, col int) int {
	count := 0
	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.height {
			continue
		}
		cells := g.cells[r]
		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.width {
				continue
			}
			if r == row && c == col {
				continue
			}
			if cells[c] == Alive {
				count++
			}
		}
	}
	return count
}

// NextState applies the B3/S23 rule to a cell with the given neighbour count.
func NextState(cur Cell, neighbors int) Cell {
	if cur == Alive {
		if neighbors == 2 || neighbors == 3 {
			return Alive
		}
		return Dead
	}
	if neighbors == 3 {
		return Alive
	}
	return Dead
}

// stepRows computes rows [b.Start, b.End) of dst from src and reports
// whether any cell in the band changed. src is only read; dst rows outside
// the band are never touched.
func stepRows(src, dst *Grid, b Band) bool {
	changed := false
	for r := b.Start; r < b.End; r++ {
		in := src.cells[r]
		out := dst.cells[r]
		for c := range in {
			next := NextState(in[c], CountNeighbors(src, r, c))
			if next != in[c] {
				changed = true
			}
			out[c] = next
		}
	}
	return changed
}
