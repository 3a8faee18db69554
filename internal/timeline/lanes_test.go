package timeline

import (
	"fmt"
	"math/rand"
	"testing"
	"time"
)

func TestRectOverlaps(t *testing.T) {
	a := Rect{Left: 0, Right: 100, Top: 0, Bottom: 100}
	tests := []struct {
		name string
		b    Rect
		pad  float64
		want bool
	}{
		{"same box", a, 0, true},
		{"disjoint horizontally", Rect{Left: 200, Right: 300, Top: 0, Bottom: 100}, 0, false},
		{"disjoint vertically", Rect{Left: 0, Right: 100, Top: 200, Bottom: 300}, 0, false},
		{"only horizontal overlap", Rect{Left: 50, Right: 150, Top: 150, Bottom: 250}, 0, false},
		{"within padding", Rect{Left: 110, Right: 200, Top: 0, Bottom: 100}, 25, true},
		{"beyond padding", Rect{Left: 130, Right: 200, Top: 0, Bottom: 100}, 25, false},
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.b, tt.pad); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func assertNoOverlap(t *testing.T, placements []Placement) {
	t.Helper()
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i], placements[j]
			if a.Overflow || b.Overflow {
				continue
			}
			if a.Bounds.Overlaps(b.Bounds, 0) {
				t.Errorf("cards %q (lane %d) and %q (lane %d) overlap: %+v %+v",
					a.Entry.Title, a.Lane, b.Entry.Title, b.Lane, a.Bounds, b.Bounds)
			}
		}
	}
}

func TestAssignLanes_NoOverlap(t *testing.T) {
	cfg := DefaultConfig()
	entries := journey(t)
	placements := AssignLanes(entries, NewScale(entries, cfg, testNow), cfg)

	if len(placements) != len(entries) {
		t.Fatalf("expected %d placements, got %d", len(entries), len(placements))
	}
	for _, p := range placements {
		if p.Lane == 0 {
			t.Errorf("%q got lane 0", p.Entry.Title)
		}
		if p.Overflow {
			t.Errorf("%q should fit in the tiered budget", p.Entry.Title)
		}
	}
	assertNoOverlap(t, placements)
}

func TestAssignLanes_RandomNoOverlap(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(20)
		entries := make([]Entry, n)
		for i := range entries {
			start := 2010*12 + rng.Intn(150)
			end := start + rng.Intn(40)
			entries[i] = Entry{
				Kind:  KindWork,
				Start: Month(start/12, time.Month(start%12+1)),
				End:   Month(end/12, time.Month(end%12+1)),
				Title: fmt.Sprintf("r%d-e%d", round, i),
			}
		}
		assertNoOverlap(t, AssignLanes(entries, NewScale(entries, cfg, testNow), cfg))
	}
}

func TestAssignLanes_SingleEntryInnermost(t *testing.T) {
	cfg := DefaultConfig()
	entries := []Entry{entry(t, KindWork, "2020-01", "2021-01", "Only")}
	placements := AssignLanes(entries, NewScale(entries, cfg, testNow), cfg)
	if len(placements) != 1 || placements[0].Lane != 1 {
		t.Fatalf("single entry should take lane 1, got %+v", placements)
	}
}

func TestAssignLanes_PrefersRightThenLeft(t *testing.T) {
	cfg := DefaultConfig()
	entries := []Entry{
		entry(t, KindWork, "2020-01", "2021-01", "A"),
		entry(t, KindWork, "2020-01", "2021-01", "B"),
	}
	placements := AssignLanes(entries, NewScale(entries, cfg, testNow), cfg)
	if placements[0].Lane != 1 || placements[1].Lane != -1 {
		t.Errorf("lanes = %d, %d; want 1, -1", placements[0].Lane, placements[1].Lane)
	}
}

func TestAssignLanes_Overflow(t *testing.T) {
	cfg := DefaultConfig()
	var entries []Entry
	for i := 0; i < 16; i++ {
		entries = append(entries, entry(t, KindWork, "2020-01", "2021-01", fmt.Sprintf("E%d", i)))
	}

	placements := AssignLanes(entries, NewScale(entries, cfg, testNow), cfg)
	if len(placements) != len(entries) {
		t.Fatalf("expected %d placements, got %d", len(entries), len(placements))
	}

	seen := make(map[int]string)
	for _, p := range placements {
		if p.Lane == 0 {
			t.Errorf("%s got lane 0", p.Entry.Title)
		}
		if prev, ok := seen[p.Lane]; ok {
			t.Errorf("lane %d assigned to both %s and %s", p.Lane, prev, p.Entry.Title)
		}
		seen[p.Lane] = p.Entry.Title
	}

	// identical ranges leave room for four tiered cards, the rest overflow
	wantTiered := []int{1, -1, 5, -5}
	for i, lane := range wantTiered {
		if placements[i].Lane != lane || placements[i].Overflow {
			t.Errorf("placement %d: lane %d overflow=%v, want lane %d tiered", i, placements[i].Lane, placements[i].Overflow, lane)
		}
	}
	for _, p := range placements[len(wantTiered):] {
		if !p.Overflow {
			t.Errorf("%s should be an overflow placement", p.Entry.Title)
		}
		if abs := max(p.Lane, -p.Lane); abs <= cfg.MaxLanes {
			t.Errorf("%s overflow lane %d falls inside the tiered budget", p.Entry.Title, p.Lane)
		}
	}
	if placements[4].Lane != 9 || placements[5].Lane != -9 || placements[6].Lane != 10 {
		t.Errorf("overflow lanes = %d, %d, %d; want 9, -9, 10", placements[4].Lane, placements[5].Lane, placements[6].Lane)
	}
}
