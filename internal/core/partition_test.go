package core

import "testing"

func TestPartitionBands(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		workers  int
		expected []Band
	}{
		{"single worker", 7, 1, []Band{{0, 7}}},
		{"even split", 8, 4, []Band{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder to last", 10, 4, []Band{{0, 2}, {2, 4}, {4, 6}, {6, 10}}},
		{"one row each", 3, 3, []Band{{0, 1}, {1, 2}, {2, 3}}},
		{"large remainder", 11, 6, []Band{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 11}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Partition(tc.height, tc.workers)
			if len(got) != len(tc.expected) {
				t.Fatalf("Partition(%d, %d) returned %d bands, expected %d", tc.height, tc.workers, len(got), len(tc.expected))
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("band %d = %+v, expected %+v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestPartitionCoversEveryRowOnce(t *testing.T) {
	for height := 1; height <= 40; height++ {
		for workers := 1; workers <= height; workers++ {
			seen := make([]int, height)
			for _, b := range Partition(height, workers) {
				if b.Len() < 1 {
					t.Fatalf("H=%d N=%d: empty band %+v", height, workers, b)
				}
				for r := b.Start; r < b.End; r++ {
					seen[r]++
				}
			}
			for r, n := range seen {
				if n != 1 {
					t.Fatalf("H=%d N=%d: row %d assigned %d times", height, workers, r, n)
				}
			}
		}
	}
}

func TestPartitionPanicsOnBadWorkerCount(t *testing.T) {
	tests := []struct {
		name            string
		height, workers int
	}{
		{"zero workers", 5, 0},
		{"more workers than rows", 3, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Partition(%d, %d) should panic", tc.height, tc.workers)
				}
			}()
			Partition(tc.height, tc.workers)
		})
	}
}
