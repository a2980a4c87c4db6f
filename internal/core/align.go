package core

// Alignment describes where a smaller source grid is placed inside a larger
// canvas.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignCenter
	AlignTopLeft
	AlignTopRight
	AlignBottomLeft
	AlignBottomRight
)

// String returns the CLI keyword for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignTopLeft:
		return "top-left"
	case AlignTopRight:
		return "top-right"
	case AlignBottomLeft:
		return "bottom-left"
	case AlignBottomRight:
		return "bottom-right"
	default:
		return "none"
	}
}

// ParseAlignment maps a keyword to an Alignment.
// The second return value is false for unrecognized keywords.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "none":
		return AlignNone, true
	case "center":
		return AlignCenter, true
	case "top-left":
		return AlignTopLeft, true
	case "top-right":
		return AlignTopRight, true
	case "bottom-left":
		return AlignBottomLeft, true
	case "bottom-right":
		return AlignBottomRight, true
	}
	return AlignNone, false
}

// ParseAlignmentKeyword is ParseAlignment restricted to the keywords a user
// may select. "none" is rejected, as is any unknown keyword.
func ParseAlignmentKeyword(s string) (Alignment, bool) {
	a, ok := ParseAlignment(s)
	if !ok || a == AlignNone {
		return AlignCenter, false
	}
	return a, true
}

// Offset returns the canvas coordinate of the source's top-left cell.
// ok is false for AlignNone, which places nothing.
func (a Alignment) Offset(canvasH, canvasW, srcH, srcW int) (row, col int, ok bool) {
	switch a {
	case AlignCenter:
		return canvasH/2 - srcH/2, canvasW/2 - srcW/2, true
	case AlignTopLeft:
		return 0, 0, true
	case AlignTopRight:
		return 0, canvasW - srcW, true
	case AlignBottomLeft:
		return canvasH - srcH, 0, true
	case AlignBottomRight:
		return canvasH - srcH, canvasW - srcW, true
	}
	return 0, 0, false
}

// Embed creates a blank height x width grid and copies src into it at the
// position given by align. Source cells that land outside the canvas are
// clipped. AlignNone leaves the canvas blank.
func Embed(height, width int, src *Grid, align Alignment) (*Grid, error) {
	g, err := NewGrid(height, width)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return g, nil
	}

	startRow, startCol, ok := align.Offset(height, width, src.height, src.width)
	if !ok {
		return g, nil
	}

	// Only the part of the placed source that overlaps the canvas is copied.
	placed := NewRect(startCol, startRow, src.width, src.height)
	visible := placed.Intersect(NewRect(0, 0, width, height))
	if visible.Empty() {
		return g, nil
	}
	for tr := visible.Y; tr < visible.Bottom(); tr++ {
		srcRow := src.cells[tr-startRow]
		for tc := visible.X; tc < visible.Right(); tc++ {
			g.cells[tr][tc] = srcRow[tc-startCol]
		}
	}
	return g, nil
}
