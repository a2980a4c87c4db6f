package core

import "testing"

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in       string
		expected Alignment
		ok       bool
	}{
		{"center", AlignCenter, true},
		{"top-left", AlignTopLeft, true},
		{"top-right", AlignTopRight, true},
		{"bottom-left", AlignBottomLeft, true},
		{"bottom-right", AlignBottomRight, true},
		{"none", AlignNone, true},
		{"middle", AlignNone, false},
		{"", AlignNone, false},
	}

	for _, tc := range tests {
		got, ok := ParseAlignment(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseAlignment(%q) = (%v, %v), expected (%v, %v)", tc.in, got, ok, tc.expected, tc.ok)
		}
		if ok && got.String() != tc.in {
			t.Errorf("%v.String() = %q, expected %q", got, got.String(), tc.in)
		}
	}
}

func TestParseAlignmentKeyword(t *testing.T) {
	tests := []struct {
		in       string
		expected Alignment
		ok       bool
	}{
		{"center", AlignCenter, true},
		{"top-left", AlignTopLeft, true},
		{"top-right", AlignTopRight, true},
		{"bottom-left", AlignBottomLeft, true},
		{"bottom-right", AlignBottomRight, true},
		{"none", AlignCenter, false},
		{"diagonal", AlignCenter, false},
		{"", AlignCenter, false},
	}

	for _, tc := range tests {
		got, ok := ParseAlignmentKeyword(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseAlignmentKeyword(%q) = (%v, %v), expected (%v, %v)", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestEmbedOffsets(t *testing.T) {
	src := mustGrid(t, "##", "#.")

	tests := []struct {
		align    Alignment
		row, col int
	}{
		{AlignCenter, 2, 2},
		{AlignTopLeft, 0, 0},
		{AlignTopRight, 0, 4},
		{AlignBottomLeft, 4, 0},
		{AlignBottomRight, 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.align.String(), func(t *testing.T) {
			g, err := Embed(6, 6, src, tc.align)
			if err != nil {
				t.Fatalf("Embed failed: %v", err)
			}
			if g.Height() != 6 || g.Width() != 6 {
				t.Fatalf("expected 6x6 canvas, got %dx%d", g.Height(), g.Width())
			}
			if g.At(tc.row, tc.col) != Alive || g.At(tc.row, tc.col+1) != Alive || g.At(tc.row+1, tc.col) != Alive {
				t.Errorf("source not placed at (%d, %d):\n%s", tc.row, tc.col, g)
			}
			if g.At(tc.row+1, tc.col+1) != Dead {
				t.Errorf("dead source cell should stay dead at (%d, %d)", tc.row+1, tc.col+1)
			}
			if g.Alive() != 3 {
				t.Errorf("canvas has %d live cells, expected 3", g.Alive())
			}
		})
	}
}

func TestEmbedCenterOddSizes(t *testing.T) {
	src := mustGrid(t, "###", "###", "###")
	g, err := Embed(6, 7, src, AlignCenter)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	// rows: 6/2 - 3/2 = 2, cols: 7/2 - 3/2 = 2
	if g.At(2, 2) != Alive || g.At(1, 2) != Dead || g.At(2, 1) != Dead {
		t.Errorf("3x3 source should start at (2, 2):\n%s", g)
	}
}

func TestEmbedClipsOversizedSource(t *testing.T) {
	src := mustGrid(t,
		"#..#",
		".##.",
		".##.",
		"#..#",
	)

	g, err := Embed(2, 2, src, AlignCenter)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	// offset is 1-2 = -1 on both axes, so the inner 2x2 block is visible.
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if g.At(r, c) != Alive {
				t.Errorf("expected inner block at (%d, %d):\n%s", r, c, g)
			}
		}
	}

	g, err = Embed(3, 3, src, AlignBottomRight)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	expected := mustGrid(t, "##.", "##.", "..#")
	if !g.Equal(expected) {
		t.Errorf("bottom-right clip:\n%s\nexpected:\n%s", g, expected)
	}
}

func TestEmbedNoneLeavesCanvasBlank(t *testing.T) {
	src := mustGrid(t, "##", "##")
	g, err := Embed(4, 4, src, AlignNone)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if g.Alive() != 0 {
		t.Errorf("AlignNone should not embed anything, got %d live cells", g.Alive())
	}
}

func TestEmbedRejectsZeroCanvas(t *testing.T) {
	src := mustGrid(t, "#")
	if _, err := Embed(0, 4, src, AlignCenter); err == nil {
		t.Error("expected error for zero-height canvas")
	}
}
