package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/scarf-exp/geomscarf/pkg/kernel/trace"
)

// newTestRegistry returns a registry on the trace kernel with a world
// volume and a plain material already registered.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New(trace.New())
	m := &Material{Name: "test_mat", Density: 1, State: StateSolid}
	if err := r.AddMaterial(m); err != nil {
		t.Fatalf("AddMaterial failed: %v", err)
	}
	ws, err := r.NewBox("world", 1000, 1000, 1000)
	if err != nil {
		t.Fatalf("NewBox(world) failed: %v", err)
	}
	wl, err := r.NewLogicalVolume("world", ws, m)
	if err != nil {
		t.Fatalf("NewLogicalVolume(world) failed: %v", err)
	}
	if err := r.SetWorld(wl); err != nil {
		t.Fatalf("SetWorld failed: %v", err)
	}
	return r
}

// addVolume registers a unit box logical volume under the given name.
func addVolume(t *testing.T, r *Registry, name string) *LogicalVolume {
	t.Helper()
	m, err := r.Material("test_mat")
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}
	s, err := r.NewBox(name, 10, 10, 10)
	if err != nil {
		t.Fatalf("NewBox(%s) failed: %v", name, err)
	}
	lv, err := r.NewLogicalVolume(name, s, m)
	if err != nil {
		t.Fatalf("NewLogicalVolume(%s) failed: %v", name, err)
	}
	return lv
}

func TestSolidRegistration(t *testing.T) {
	r := newTestRegistry(t)

	if _, err := r.NewTube("tube", 0, 10, 50, 0, 2*math.Pi); err != nil {
		t.Fatalf("NewTube failed: %v", err)
	}
	if _, err := r.NewSphere("sphere", 0, 100, 0, math.Pi); err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	if _, err := r.NewPolycone("cone", []float64{0, 10, 10, 0}, []float64{0, 0, 20, 20}); err != nil {
		t.Fatalf("NewPolycone failed: %v", err)
	}

	s, err := r.Solid("tube")
	if err != nil {
		t.Fatalf("Solid(tube) failed: %v", err)
	}
	spec, ok := s.Spec.(TubeSpec)
	if !ok {
		t.Fatalf("Spec type %T, want TubeSpec", s.Spec)
	}
	if spec.Rmax != 10 || spec.Height != 50 {
		t.Errorf("TubeSpec = %+v", spec)
	}
	if s.Handle == nil {
		t.Error("registered solid has no kernel handle")
	}

	// Registration order is preserved.
	names := make([]string, 0)
	for _, s := range r.Solids() {
		names = append(names, s.Name)
	}
	want := []string{"world", "tube", "sphere", "cone"}
	if len(names) != len(want) {
		t.Fatalf("Solids() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Solids()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDuplicateNames(t *testing.T) {
	r := newTestRegistry(t)
	lv := addVolume(t, r, "vol")

	if _, err := r.Place("vol", lv, r.World(), Vec3{}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if _, err := r.NewOpticalSurface("surf", ModelUnified, FinishGround, DielectricMetal, 0.5); err != nil {
		t.Fatalf("NewOpticalSurface failed: %v", err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"solid", func() error { _, err := r.NewBox("vol", 1, 1, 1); return err }},
		{"material", func() error { return r.AddMaterial(&Material{Name: "test_mat"}) }},
		{"logical volume", func() error {
			s, _ := r.Solid("vol")
			m, _ := r.Material("test_mat")
			_, err := r.NewLogicalVolume("vol", s, m)
			return err
		}},
		{"physical volume", func() error { _, err := r.Place("vol", lv, r.World(), Vec3{}); return err }},
		{"optical surface", func() error {
			_, err := r.NewOpticalSurface("surf", ModelUnified, FinishGround, DielectricMetal, 0.5)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected duplicate-name error, got nil")
			}
			if !errors.Is(err, ErrDuplicateName) {
				t.Errorf("error = %v, want ErrDuplicateName", err)
			}
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	r := newTestRegistry(t)
	tests := []struct {
		name string
		call func() error
	}{
		{"solid", func() error { _, err := r.Solid("missing"); return err }},
		{"material", func() error { _, err := r.Material("missing"); return err }},
		{"logical volume", func() error { _, err := r.LogicalVolume("missing"); return err }},
		{"physical volume", func() error { _, err := r.PhysicalVolume("missing"); return err }},
		{"optical surface", func() error { _, err := r.Surface("missing"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected not-found error, got nil")
			}
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestKernelErrorPropagatesUnmodified(t *testing.T) {
	k := trace.New()
	k.FailOn = "polycone"
	r := New(k)

	_, err := r.NewPolycone("p", []float64{0, 1, 1, 0}, []float64{0, 0, 1, 1})
	if err == nil {
		t.Fatal("expected kernel error, got nil")
	}
	if !errors.Is(err, trace.ErrInjected) {
		t.Errorf("kernel error was rewrapped: %v", err)
	}
	// The failed solid must not be registered.
	if _, err := r.Solid("p"); !errors.Is(err, ErrNotFound) {
		t.Errorf("failed solid was registered: %v", err)
	}
}

func TestBooleanSolids(t *testing.T) {
	r := newTestRegistry(t)
	a, err := r.NewTube("a", 0, 10, 20, 0, 2*math.Pi)
	if err != nil {
		t.Fatalf("NewTube failed: %v", err)
	}
	b, err := r.NewTube("b", 0, 5, 30, 0, 2*math.Pi)
	if err != nil {
		t.Fatalf("NewTube failed: %v", err)
	}

	u, err := r.NewUnion("u", a, b, ZVec(15))
	if err != nil {
		t.Fatalf("NewUnion failed: %v", err)
	}
	spec, ok := u.Spec.(BooleanSpec)
	if !ok {
		t.Fatalf("Spec type %T, want BooleanSpec", u.Spec)
	}
	if spec.Op != BoolUnion || spec.A != a || spec.B != b || spec.Shift.Z != 15 {
		t.Errorf("BooleanSpec = %+v", spec)
	}

	if _, err := r.NewSubtraction("d", a, b, Vec3{}); err != nil {
		t.Fatalf("NewSubtraction failed: %v", err)
	}

	// Unregistered operands are rejected.
	orphan := &Solid{Name: "orphan"}
	if _, err := r.NewUnion("u2", a, orphan, Vec3{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("union with unregistered operand: error = %v, want ErrNotFound", err)
	}
	if _, err := r.NewSubtraction("d2", nil, b, Vec3{}); err == nil {
		t.Error("subtraction with nil operand: expected error, got nil")
	}
}

func TestPlace(t *testing.T) {
	r := newTestRegistry(t)
	lv := addVolume(t, r, "inner")

	pv, err := r.Place("", lv, r.World(), ZVec(-600))
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if pv.Name != "inner" {
		t.Errorf("default placement name = %q, want %q", pv.Name, "inner")
	}
	if pv.Translation.Z != -600 {
		t.Errorf("Translation.Z = %g, want -600", pv.Translation.Z)
	}
	if !pv.Rotation.IsZero() {
		t.Errorf("Rotation = %+v, want identity", pv.Rotation)
	}
	if pv.Mother != r.World() {
		t.Error("Mother is not the world volume")
	}

	// A second placement of the same volume needs an explicit name.
	if _, err := r.Place("", lv, r.World(), Vec3{}); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("second default-named placement: error = %v, want ErrDuplicateName", err)
	}
	if _, err := r.Place("inner_2", lv, r.World(), Vec3{}); err != nil {
		t.Errorf("second named placement failed: %v", err)
	}
}

func TestPlaceRequiresWorld(t *testing.T) {
	r := New(trace.New())
	m := &Material{Name: "m"}
	if err := r.AddMaterial(m); err != nil {
		t.Fatalf("AddMaterial failed: %v", err)
	}
	s, err := r.NewBox("b", 1, 1, 1)
	if err != nil {
		t.Fatalf("NewBox failed: %v", err)
	}
	lv, err := r.NewLogicalVolume("b", s, m)
	if err != nil {
		t.Fatalf("NewLogicalVolume failed: %v", err)
	}
	if _, err := r.Place("b", lv, lv, Vec3{}); err == nil {
		t.Error("placement before SetWorld: expected error, got nil")
	}
}

func TestPlaceRejectsCycles(t *testing.T) {
	r := newTestRegistry(t)
	a := addVolume(t, r, "a")
	b := addVolume(t, r, "b")

	if _, err := r.Place("", a, r.World(), Vec3{}); err != nil {
		t.Fatalf("Place(a) failed: %v", err)
	}
	if _, err := r.Place("", b, a, Vec3{}); err != nil {
		t.Fatalf("Place(b in a) failed: %v", err)
	}
	if _, err := r.Place("a_in_b", a, b, Vec3{}); err == nil {
		t.Error("cyclic placement: expected error, got nil")
	}
	if _, err := r.Place("self", a, a, Vec3{}); err == nil {
		t.Error("self placement: expected error, got nil")
	}
	if _, err := r.Place("w", r.World(), a, Vec3{}); err == nil {
		t.Error("placing the world volume: expected error, got nil")
	}
}

func TestAttachBorderRequiresPlacement(t *testing.T) {
	r := newTestRegistry(t)
	addVolume(t, r, "a")
	addVolume(t, r, "b")
	surf, err := r.NewOpticalSurface("s", ModelUnified, FinishGround, DielectricMetal, 0.5)
	if err != nil {
		t.Fatalf("NewOpticalSurface failed: %v", err)
	}

	// Logical volumes exist but are not placed: annotation must fail.
	_, err = r.AttachBorder("bsurf", "a", "b", surf)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("border before placement: error = %v, want ErrNotFound", err)
	}

	av, _ := r.LogicalVolume("a")
	bv, _ := r.LogicalVolume("b")
	if _, err := r.Place("", av, r.World(), Vec3{}); err != nil {
		t.Fatalf("Place(a) failed: %v", err)
	}
	if _, err := r.Place("", bv, av, Vec3{}); err != nil {
		t.Fatalf("Place(b) failed: %v", err)
	}

	bs, err := r.AttachBorder("bsurf", "a", "b", surf)
	if err != nil {
		t.Fatalf("AttachBorder failed: %v", err)
	}
	if bs.From.Name != "a" || bs.To.Name != "b" {
		t.Errorf("border direction %q -> %q, want a -> b", bs.From.Name, bs.To.Name)
	}
	if len(r.Borders()) != 1 {
		t.Errorf("Borders() has %d entries, want 1", len(r.Borders()))
	}
}

func TestAttachBorderRequiresRegisteredSurface(t *testing.T) {
	r := newTestRegistry(t)
	a := addVolume(t, r, "a")
	if _, err := r.Place("", a, r.World(), Vec3{}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	unregistered := &OpticalSurface{Name: "ghost"}
	if _, err := r.AttachBorder("bsurf", "a", "a", unregistered); !errors.Is(err, ErrNotFound) {
		t.Errorf("border with unregistered surface: error = %v, want ErrNotFound", err)
	}
}

func TestAttachSkin(t *testing.T) {
	r := newTestRegistry(t)
	addVolume(t, r, "encl")
	surf, err := r.NewOpticalSurface("pen", ModelUnified, FinishGround, DielectricDielectric, 0.1)
	if err != nil {
		t.Fatalf("NewOpticalSurface failed: %v", err)
	}

	skin, err := r.AttachSkin("encl_os", "encl", surf)
	if err != nil {
		t.Fatalf("AttachSkin failed: %v", err)
	}
	if skin.Volume.Name != "encl" {
		t.Errorf("skin volume = %q, want encl", skin.Volume.Name)
	}

	if _, err := r.AttachSkin("ghost_os", "missing", surf); !errors.Is(err, ErrNotFound) {
		t.Errorf("skin on missing volume: error = %v, want ErrNotFound", err)
	}
}

func TestMaterialProperties(t *testing.T) {
	m := &Material{Name: "lar"}
	m.SetProperty("RINDEX", PropertyTable{Energies: []float64{1, 2}, Values: []float64{1.3, 1.4}})
	m.SetProperty("ABSLENGTH", Constant(500))
	m.SetProperty("RINDEX", PropertyTable{Energies: []float64{1, 2}, Values: []float64{1.35, 1.45}})

	names := m.PropertyNames()
	if len(names) != 2 || names[0] != "RINDEX" || names[1] != "ABSLENGTH" {
		t.Errorf("PropertyNames() = %v", names)
	}
	ri, ok := m.Property("RINDEX")
	if !ok {
		t.Fatal("RINDEX not attached")
	}
	if ri.Values[0] != 1.35 {
		t.Errorf("replaced table not visible: %v", ri.Values)
	}
	if _, ok := m.Property("WLSCOMPONENT"); ok {
		t.Error("unattached property reported present")
	}
}
