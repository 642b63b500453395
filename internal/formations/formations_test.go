package formations

import "testing"

func TestAll_ElevenPositionsEach(t *testing.T) {
	all := All()
	if len(all) != 7 {
		t.Fatalf("Expected 7 formations, got %d", len(all))
	}
	for _, f := range all {
		if len(f.Positions) != 11 {
			t.Errorf("Formation %s has %d positions, want 11", f.Name, len(f.Positions))
		}
		if f.Positions[0].ID != "gk" {
			t.Errorf("Formation %s should start with the goalkeeper, got %s", f.Name, f.Positions[0].ID)
		}
		seen := make(map[string]bool)
		for _, p := range f.Positions {
			if seen[p.ID] {
				t.Errorf("Formation %s has duplicate position ID %s", f.Name, p.ID)
			}
			seen[p.ID] = true
			if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
				t.Errorf("Formation %s position %s out of pitch bounds: (%v, %v)", f.Name, p.ID, p.X, p.Y)
			}
		}
	}
}

func TestGet(t *testing.T) {
	f, ok := Get("4-2-3-1")
	if !ok {
		t.Fatal("Expected 4-2-3-1 to exist")
	}
	if f.Label != "4-2-3-1 (Modern)" {
		t.Errorf("Unexpected label %q", f.Label)
	}
	if _, ok := Get("2-3-5"); ok {
		t.Error("Expected pyramid formation to be unknown")
	}
}

func TestValidSlots(t *testing.T) {
	if !ValidSlots("4-3-3", map[string]string{"gk": "Raya", "st": "Havertz"}) {
		t.Error("Expected valid slots to pass")
	}
	if ValidSlots("4-3-3", map[string]string{"st1": "Haaland"}) {
		t.Error("Expected st1 to be invalid for 4-3-3")
	}
	if ValidSlots("no-such", map[string]string{"gk": "Raya"}) {
		t.Error("Expected unknown formation to be invalid")
	}
}
