package maze

import (
	"reflect"
	"testing"
)

func mustColormap(t *testing.T, p Pattern, w, h int, lineReset bool) *Colormap {
	t.Helper()
	cm, err := GenerateColormap(p, w, h, lineReset)
	if err != nil {
		t.Fatalf("GenerateColormap failed: %v", err)
	}
	return cm
}

func TestExtractRegionsGrid(t *testing.T) {
	cm := mustColormap(t, Pattern{{2, 1}, {1, 0}}, 5, 5, true)
	walls, rooms := ExtractRegions(cm)

	if len(walls) != 21 {
		t.Fatalf("Expected 21 single-cell walls, got %d", len(walls))
	}
	wantRooms := []Coordinate{{1, 1}, {1, 3}, {3, 1}, {3, 3}}
	if !reflect.DeepEqual(rooms, wantRooms) {
		t.Errorf("Expected rooms %v, got %v", wantRooms, rooms)
	}

	// Row-major first-cell ordering pins indices
	checks := map[int]Wall{
		0:  {Category: 2, Cells: []Coordinate{{0, 0}}},
		6:  {Category: 1, Cells: []Coordinate{{1, 2}}},
		9:  {Category: 1, Cells: []Coordinate{{2, 1}}},
		14: {Category: 1, Cells: []Coordinate{{3, 2}}},
		20: {Category: 2, Cells: []Coordinate{{4, 4}}},
	}
	for idx, want := range checks {
		if !reflect.DeepEqual(walls[idx], want) {
			t.Errorf("Wall %d: expected %+v, got %+v", idx, want, walls[idx])
		}
	}
}

func TestExtractRegionsStripes(t *testing.T) {
	cm := mustColormap(t, FlatPattern(1, 2, 2, 1, 0), 5, 5, true)
	walls, rooms := ExtractRegions(cm)

	if len(rooms) != 0 {
		t.Errorf("Expected no interior rooms (zero column is on the border), got %v", rooms)
	}
	if len(walls) != 3 {
		t.Fatalf("Expected 3 walls, got %d", len(walls))
	}
	wantLens := []int{5, 10, 5}
	wantCats := []int{1, 2, 1}
	for i, w := range walls {
		if w.Len() != wantLens[i] || w.Category != wantCats[i] {
			t.Errorf("Wall %d: expected %d cells of category %d, got %d of %d",
				i, wantLens[i], wantCats[i], w.Len(), w.Category)
		}
	}
}

func TestExtractRegionsDistinctCategoriesNeverMerge(t *testing.T) {
	cm, err := NewColormap([][]int{
		{1, 2, 2},
		{1, 2, 1},
		{3, 3, 1},
	})
	if err != nil {
		t.Fatalf("NewColormap failed: %v", err)
	}
	walls, _ := ExtractRegions(cm)

	want := []Wall{
		{Category: 1, Cells: []Coordinate{{0, 0}, {1, 0}}},
		{Category: 2, Cells: []Coordinate{{0, 1}, {0, 2}, {1, 1}}},
		{Category: 1, Cells: []Coordinate{{1, 2}, {2, 2}}},
		{Category: 3, Cells: []Coordinate{{2, 0}, {2, 1}}},
	}
	if len(walls) != len(want) {
		t.Fatalf("Expected %d walls, got %d: %+v", len(want), len(walls), walls)
	}
	for i := range want {
		if walls[i].Category != want[i].Category || !sameCells(walls[i].Cells, want[i].Cells) {
			t.Errorf("Wall %d: expected %+v, got %+v", i, want[i], walls[i])
		}
	}
}

func TestExtractRegionsReachesTopAndLeftEdges(t *testing.T) {
	// Fill travelling left along the bottom row must reach column 0
	cm, err := NewColormap([][]int{
		{0, 0, 1},
		{0, 0, 1},
		{1, 1, 1},
	})
	if err != nil {
		t.Fatalf("NewColormap failed: %v", err)
	}
	walls, rooms := ExtractRegions(cm)
	if len(walls) != 1 || walls[0].Len() != 5 {
		t.Errorf("Expected one 5-cell wall, got %+v", walls)
	}
	if !reflect.DeepEqual(rooms, []Coordinate{{1, 1}}) {
		t.Errorf("Expected single interior room (1,1), got %v", rooms)
	}
}

func TestExtractRegionsLargeRegion(t *testing.T) {
	cm := mustColormap(t, Pattern{{4}}, 300, 300, true)
	walls, rooms := ExtractRegions(cm)
	if len(walls) != 1 || walls[0].Len() != 300*300 {
		t.Fatalf("Expected a single 90000-cell wall, got %d walls", len(walls))
	}
	if len(rooms) != 0 {
		t.Errorf("Expected no rooms, got %d", len(rooms))
	}
}

func TestExtractRegionsAllZeroMinimum(t *testing.T) {
	cm := mustColormap(t, Pattern{{0}}, 3, 3, true)
	walls, rooms := ExtractRegions(cm)
	if len(walls) != 0 {
		t.Errorf("Expected no walls, got %d", len(walls))
	}
	if len(rooms) != 1 || rooms[0] != (Coordinate{1, 1}) {
		t.Errorf("Expected only the centre room, got %v", rooms)
	}

	cm = mustColormap(t, Pattern{{0}}, 2, 2, true)
	if _, rooms := ExtractRegions(cm); len(rooms) != 0 {
		t.Errorf("Expected 2x2 grid to have no interior rooms, got %v", rooms)
	}
}

func TestExtractRegionsProperties(t *testing.T) {
	tests := []struct {
		name      string
		pattern   Pattern
		w, h      int
		lineReset bool
	}{
		{"Stripes continuous", FlatPattern(1, 2, 2, 1, 0), 33, 25, false},
		{"Weave", Pattern{{0, 2, 2}, {1, 1, 2}, {1, 2, 1}}, 33, 25, true},
		{"Grid", Pattern{{2, 1}, {1, 0}}, 33, 26, true},
		{"Mixed", Pattern{{0, 1, 1, 0, 3}, {3, 3, 0, 1}}, 17, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := mustColormap(t, tt.pattern, tt.w, tt.h, tt.lineReset)
			walls, rooms := ExtractRegions(cm)

			owner := make(map[Coordinate]int)
			for i, w := range walls {
				for _, c := range w.Cells {
					if prev, dup := owner[c]; dup {
						t.Fatalf("Cell %v in walls %d and %d", c, prev, i)
					}
					owner[c] = i
					if cm.At(c.Row, c.Col) != w.Category {
						t.Errorf("Cell %v category %d in wall of category %d", c, cm.At(c.Row, c.Col), w.Category)
					}
				}
				if !connected(w.Cells) {
					t.Errorf("Wall %d is not 4-connected", i)
				}
			}

			for row := 0; row < cm.Height; row++ {
				for col := 0; col < cm.Width; col++ {
					_, inWall := owner[Coordinate{row, col}]
					if (cm.At(row, col) > 0) != inWall {
						t.Errorf("Cell (%d,%d) category %d wall membership %v", row, col, cm.At(row, col), inWall)
					}
				}
			}

			for _, r := range rooms {
				if r.Row == 0 || r.Col == 0 || r.Row == cm.Height-1 || r.Col == cm.Width-1 {
					t.Errorf("Room %v lies on the border", r)
				}
				if cm.At(r.Row, r.Col) != RoomCategory {
					t.Errorf("Room %v is not a zero cell", r)
				}
			}

			again, againRooms := ExtractRegions(cm)
			if !reflect.DeepEqual(walls, again) || !reflect.DeepEqual(rooms, againRooms) {
				t.Error("Expected identical output on repeated extraction")
			}
		})
	}
}

func sameCells(a, b []Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[Coordinate]bool, len(a))
	for _, c := range a {
		set[c] = true
	}
	for _, c := range b {
		if !set[c] {
			return false
		}
	}
	return true
}

func connected(cells []Coordinate) bool {
	if len(cells) == 0 {
		return true
	}
	set := make(map[Coordinate]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	seen := map[Coordinate]bool{cells[0]: true}
	queue := []Coordinate{cells[0]}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, d := range orthogonal {
			n := Coordinate{curr.Row + d.Row, curr.Col + d.Col}
			if set[n] && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(cells)
}
