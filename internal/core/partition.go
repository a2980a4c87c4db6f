package core

import "fmt"

// Band is a half-open range of rows [Start, End) handled by one worker.
// Bands always span the full grid width.
type Band struct {
	Start int
	End   int
}

// Len returns the number of rows in the band.
func (b Band) Len() int {
	return b.End - b.Start
}

// Partition splits height rows into workers contiguous bands of height/workers
// rows each. The last band also takes the height%workers trailing rows.
//
// Callers must ensure 1 <= workers <= height; anything else panics.
func Partition(height, workers int) []Band {
	if workers < 1 || workers > height {
		panic(fmt.Sprintf("core: cannot partition %d rows across %d workers", height, workers))
	}

	size := height / workers
	rest := height % workers

	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{Start: i * size, End: (i + 1) * size}
	}
	bands[workers-1].End += rest
	return bands
}
