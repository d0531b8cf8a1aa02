package stops

import (
	"sync"
	"testing"
)

func TestNearestPerDirection_Example(t *testing.T) {
	d := NewDirectory([]Stop{
		{ID: "A", Direction: "North", Lat: 0, Lon: 0},
		{ID: "B", Direction: "North", Lat: 1, Lon: 1},
	})

	got := d.NearestPerDirection(0, 0)
	m, ok := got["North"]
	if !ok {
		t.Fatal("expected a match for North")
	}
	if m.Stop.ID != "A" || m.Distance != 0 {
		t.Errorf("North = (%s, %v), want (A, 0)", m.Stop.ID, m.Distance)
	}
	if len(got) != 1 {
		t.Errorf("expected exactly one direction, got %d", len(got))
	}
}

func TestNearestPerDirection_PerBucket(t *testing.T) {
	d := NewDirectory([]Stop{
		{ID: "n-far", Direction: "Northbound", Lat: 42.070, Lon: -87.675},
		{ID: "s-near", Direction: "Southbound", Lat: 42.0575, Lon: -87.675},
		{ID: "n-near", Direction: "Northbound", Lat: 42.058, Lon: -87.675},
		{ID: "s-far", Direction: "Southbound", Lat: 42.040, Lon: -87.675},
		{ID: "e-only", Direction: "Eastbound", Lat: 42.100, Lon: -87.600},
	})

	got := d.NearestPerDirection(42.057, -87.675)

	want := map[string]string{
		"Northbound": "n-near",
		"Southbound": "s-near",
		"Eastbound":  "e-only",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d directions, want %d", len(got), len(want))
	}
	for dir, id := range want {
		if got[dir].Stop.ID != id {
			t.Errorf("%s: got %s, want %s", dir, got[dir].Stop.ID, id)
		}
		if got[dir].Distance <= 0 {
			t.Errorf("%s: distance should be positive, got %v", dir, got[dir].Distance)
		}
	}
}

func TestNearestPerDirection_TieKeepsEarliest(t *testing.T) {
	d := NewDirectory([]Stop{
		{ID: "first", Direction: "North", Lat: 0, Lon: 1},
		{ID: "second", Direction: "North", Lat: 0, Lon: -1},
	})

	for i := 0; i < 3; i++ {
		got := d.NearestPerDirection(0, 0)
		if got["North"].Stop.ID != "first" {
			t.Fatalf("call %d: tie should keep the earlier stop, got %s", i, got["North"].Stop.ID)
		}
	}
}

func TestNearestPerDirection_Idempotent(t *testing.T) {
	d := NewDirectory([]Stop{
		{ID: "1", Direction: "Northbound", Lat: 42.05, Lon: -87.67},
		{ID: "2", Direction: "Southbound", Lat: 42.06, Lon: -87.68},
		{ID: "3", Direction: "Northbound", Lat: 42.07, Lon: -87.69},
	})

	first := d.NearestPerDirection(42.055, -87.675)
	second := d.NearestPerDirection(42.055, -87.675)
	for dir, m := range first {
		if second[dir] != m {
			t.Errorf("%s: repeated query changed result %+v -> %+v", dir, m, second[dir])
		}
	}
}

func TestNearestPerDirection_DoesNotMutateStops(t *testing.T) {
	input := []Stop{{ID: "1", Direction: "North", Lat: 1, Lon: 1}}
	d := NewDirectory(input)
	before := d.All()

	_ = d.NearestPerDirection(0, 0)

	after := d.All()
	if before[0] != after[0] {
		t.Errorf("stop changed by query: %+v -> %+v", before[0], after[0])
	}
}

func TestNearestPerDirection_Empty(t *testing.T) {
	for _, d := range []*Directory{NewDirectory(nil), nil} {
		got := d.NearestPerDirection(42, -87)
		if got == nil {
			t.Fatal("expected empty map, got nil")
		}
		if len(got) != 0 {
			t.Errorf("expected no matches, got %d", len(got))
		}
	}
}

func TestNearestPerDirection_ConcurrentReaders(t *testing.T) {
	d := NewDirectory([]Stop{
		{ID: "a", Direction: "North", Lat: 42.05, Lon: -87.67},
		{ID: "b", Direction: "South", Lat: 42.06, Lon: -87.68},
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lat := 42.0 + float64(i)*0.01
			got := d.NearestPerDirection(lat, -87.67)
			if len(got) != 2 {
				t.Errorf("goroutine %d: expected 2 directions, got %d", i, len(got))
			}
		}(i)
	}
	wg.Wait()
}

func TestDirectory_Accessors(t *testing.T) {
	d := NewDirectory([]Stop{
		{ID: "18003", Direction: "Southbound"},
		{ID: "1845", Direction: "Northbound"},
		{ID: "17999", Direction: "Southbound"},
	})

	dirs := d.Directions()
	if len(dirs) != 2 || dirs[0] != "Southbound" || dirs[1] != "Northbound" {
		t.Errorf("Directions() = %v, want first-seen order", dirs)
	}

	all := d.All()
	wantOrder := []string{"17999", "18003", "1845"}
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].ID, id)
		}
	}

	if s, ok := d.Get("1845"); !ok || s.Direction != "Northbound" {
		t.Errorf("Get(1845) = %+v, %v", s, ok)
	}
	if _, ok := d.Get("nope"); ok {
		t.Error("Get(nope) should miss")
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}
}

func TestDirectory_NilIsEmpty(t *testing.T) {
	var d *Directory
	if got := d.Directions(); got == nil || len(got) != 0 {
		t.Errorf("Directions() = %v, want empty", got)
	}
	if got := d.All(); got == nil || len(got) != 0 {
		t.Errorf("All() = %v, want empty", got)
	}
	if _, ok := d.Get("18003"); ok {
		t.Error("Get() on nil directory should miss")
	}
	if got := d.Routes(); got == nil || len(got) != 0 {
		t.Errorf("Routes() = %v, want empty", got)
	}
	if _, ok := d.RouteGeometry("201"); ok {
		t.Error("RouteGeometry() on nil directory should miss")
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}
