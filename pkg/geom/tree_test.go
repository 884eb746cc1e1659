package geom

import (
	"strings"
	"testing"
)

// buildNestedTree places vessel > fill > det plus a standalone probe
// under the world.
func buildNestedTree(t *testing.T, r *Registry) {
	t.Helper()
	vessel := addVolume(t, r, "vessel")
	fill := addVolume(t, r, "fill")
	det := addVolume(t, r, "det")
	probe := addVolume(t, r, "probe")

	if _, err := r.Place("", vessel, r.World(), ZVec(-10)); err != nil {
		t.Fatalf("Place(vessel) failed: %v", err)
	}
	if _, err := r.Place("", fill, vessel, ZVec(5)); err != nil {
		t.Fatalf("Place(fill) failed: %v", err)
	}
	if _, err := r.Place("", det, fill, ZVec(1)); err != nil {
		t.Fatalf("Place(det) failed: %v", err)
	}
	if _, err := r.Place("", probe, r.World(), Vec3{}); err != nil {
		t.Fatalf("Place(probe) failed: %v", err)
	}
}

func TestWalkOrder(t *testing.T) {
	r := newTestRegistry(t)
	buildNestedTree(t, r)

	var names []string
	var depths []int
	err := r.Walk(func(pv *PhysicalVolume, depth int) error {
		names = append(names, pv.Name)
		depths = append(depths, depth)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	wantNames := []string{"vessel", "fill", "det", "probe"}
	wantDepths := []int{0, 1, 2, 0}
	if len(names) != len(wantNames) {
		t.Fatalf("Walk visited %v, want %v", names, wantNames)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d = (%q, %d), want (%q, %d)",
				i, names[i], depths[i], wantNames[i], wantDepths[i])
		}
	}
}

func TestTreeString(t *testing.T) {
	r := newTestRegistry(t)
	buildNestedTree(t, r)

	tree, err := r.TreeString()
	if err != nil {
		t.Fatalf("TreeString failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(tree, "\n"), "\n")
	if lines[0] != "world" {
		t.Errorf("first line = %q, want world", lines[0])
	}
	want := []string{
		"- vessel  [LV=vessel, material=test_mat]",
		"  - fill  [LV=fill, material=test_mat]",
		"    - det  [LV=det, material=test_mat]",
		"- probe  [LV=probe, material=test_mat]",
	}
	if len(lines)-1 != len(want) {
		t.Fatalf("tree has %d entries, want %d:\n%s", len(lines)-1, len(want), tree)
	}
	for i, w := range want {
		if lines[i+1] != w {
			t.Errorf("line %d = %q, want %q", i+1, lines[i+1], w)
		}
	}
}

func TestAncestry(t *testing.T) {
	r := newTestRegistry(t)
	buildNestedTree(t, r)

	chain, err := r.Ancestry("det")
	if err != nil {
		t.Fatalf("Ancestry failed: %v", err)
	}
	want := []string{"fill", "vessel"}
	if len(chain) != len(want) {
		t.Fatalf("Ancestry = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Errorf("chain[%d] = %q, want %q", i, chain[i], want[i])
		}
	}

	// A direct child of the world has an empty chain.
	chain, err = r.Ancestry("probe")
	if err != nil {
		t.Fatalf("Ancestry(probe) failed: %v", err)
	}
	if len(chain) != 0 {
		t.Errorf("Ancestry(probe) = %v, want empty", chain)
	}

	if _, err := r.Ancestry("missing"); err == nil {
		t.Error("Ancestry of unknown placement: expected error, got nil")
	}
}
