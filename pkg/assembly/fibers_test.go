package assembly

import (
	"fmt"
	"math"
	"testing"

	"github.com/scarf-exp/geomscarf/pkg/geom"
)

const radTol = 1e-9

func TestSimplifiedFiberShroud(t *testing.T) {
	cfg := &Config{FiberShroud: &FiberShroudConfig{Offset: 0}}
	reg, err := testBuilder().Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	// 1 mm square fibers under a 1 um coating on both faces.
	coating, err := reg.Solid("tpb_coating")
	if err != nil {
		t.Fatal(err)
	}
	cspec := coating.Spec.(geom.TubeSpec)
	if math.Abs(cspec.Rmin-114.499) > radTol || math.Abs(cspec.Rmax-115.501) > radTol {
		t.Errorf("coating radii = [%g, %g], want [114.499, 115.501]", cspec.Rmin, cspec.Rmax)
	}
	if cspec.Height != 1000 {
		t.Errorf("coating height = %g, want 1000", cspec.Height)
	}
	core, err := reg.Solid("fiber_core")
	if err != nil {
		t.Fatal(err)
	}
	fspec := core.Spec.(geom.TubeSpec)
	if math.Abs(fspec.Rmin-114.5) > radTol || math.Abs(fspec.Rmax-115.5) > radTol {
		t.Errorf("core radii = [%g, %g], want [114.5, 115.5]", fspec.Rmin, fspec.Rmax)
	}

	shroud, err := reg.PhysicalVolume("fiber_shroud")
	if err != nil {
		t.Fatal(err)
	}
	if shroud.Mother.Name != "lar" || shroud.Translation.Z != 600 {
		t.Errorf("shroud placed in %s at z=%g, want lar at 600", shroud.Mother.Name, shroud.Translation.Z)
	}

	corePV, err := reg.PhysicalVolume("fiber_core")
	if err != nil {
		t.Fatal(err)
	}
	if corePV.Mother.Name != "tpb_coating" {
		t.Errorf("core mother = %s, want tpb_coating", corePV.Mother.Name)
	}
	if corePV.Detector == nil || corePV.Detector.Kind != "optical" || corePV.Detector.UID != DefaultFiberUID {
		t.Errorf("core tag = %+v, want optical/%d", corePV.Detector, DefaultFiberUID)
	}

	wantBorders := map[string][3]string{
		"bsurface_lar_tpb_fiber_shroud": {"lar", "fiber_shroud", "surface_lar_to_tpb"},
		"bsurface_tpb_lar_fiber_shroud": {"fiber_shroud", "lar", "surface_lar_to_tpb"},
		"bsurface_tpb_fiber":            {"fiber_shroud", "fiber_core", "surface_to_fiber_core"},
	}
	for _, bs := range reg.Borders() {
		want, ok := wantBorders[bs.Name]
		if !ok {
			continue
		}
		delete(wantBorders, bs.Name)
		if bs.From.Name != want[0] || bs.To.Name != want[1] {
			t.Errorf("%s runs %s into %s, want %s into %s",
				bs.Name, bs.From.Name, bs.To.Name, want[0], want[1])
		}
		if bs.Surface.Name != want[2] {
			t.Errorf("%s uses surface %s, want %s", bs.Name, bs.Surface.Name, want[2])
		}
	}
	for name := range wantBorders {
		t.Errorf("border surface %s not attached", name)
	}
}

func TestSimplifiedFiberUIDOverride(t *testing.T) {
	uid := 42
	cfg := &Config{FiberShroud: &FiberShroudConfig{UID: &uid}}
	reg, err := testBuilder().Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	pv, err := reg.PhysicalVolume("fiber_core")
	if err != nil {
		t.Fatal(err)
	}
	if pv.Detector == nil || pv.Detector.UID != 42 {
		t.Errorf("core tag = %+v, want uid 42", pv.Detector)
	}
}

func TestDetailedFiberShroud(t *testing.T) {
	cfg := &Config{FiberShroud: &FiberShroudConfig{Mode: FiberDetailed}}
	reg, err := testBuilder().Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	delta := 2 * math.Pi / 6
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("IB%d", i)

		coating, err := reg.Solid("fibers_" + name)
		if err != nil {
			t.Fatalf("module %s coating: %v", name, err)
		}
		spec := coating.Spec.(geom.TubeSpec)
		if math.Abs(spec.StartPhi-float64(i)*delta) > radTol || math.Abs(spec.DeltaPhi-delta) > radTol {
			t.Errorf("%s wedge = [%g, %g], want start %g delta %g",
				name, spec.StartPhi, spec.DeltaPhi, float64(i)*delta, delta)
		}
		// 150 nm coating on both faces of the 1 mm fibers.
		if math.Abs(spec.Rmax-spec.Rmin-1.0003) > radTol {
			t.Errorf("%s coating thickness = %g, want 1.0003", name, spec.Rmax-spec.Rmin)
		}

		corePV, err := reg.PhysicalVolume("fiber_core_" + name)
		if err != nil {
			t.Fatalf("module %s core: %v", name, err)
		}
		if corePV.Mother.Name != "fibers_"+name {
			t.Errorf("%s core mother = %s", name, corePV.Mother.Name)
		}
		if corePV.Detector != nil {
			t.Errorf("%s core should not be tagged, got %+v", name, corePV.Detector)
		}

		top, err := reg.PhysicalVolume(fmt.Sprintf("sipm_top_%d", i))
		if err != nil {
			t.Fatalf("module %s top channel: %v", name, err)
		}
		if top.Translation.Z != 1100.5 {
			t.Errorf("%s top channel z = %g, want 1100.5", name, top.Translation.Z)
		}
		if top.Detector == nil || top.Detector.Kind != "optical" || top.Detector.UID != 1000+2*i {
			t.Errorf("%s top channel tag = %+v, want optical/%d", name, top.Detector, 1000+2*i)
		}
		if top.Volume.Material.Name != "metal_silicon" {
			t.Errorf("%s top channel material = %s", name, top.Volume.Material.Name)
		}

		bot, err := reg.PhysicalVolume(fmt.Sprintf("sipm_bot_%d", i))
		if err != nil {
			t.Fatalf("module %s bottom channel: %v", name, err)
		}
		if bot.Translation.Z != 99.5 {
			t.Errorf("%s bottom channel z = %g, want 99.5", name, bot.Translation.Z)
		}
		if bot.Detector == nil || bot.Detector.UID != 1001+2*i {
			t.Errorf("%s bottom channel tag = %+v, want uid %d", name, bot.Detector, 1001+2*i)
		}
	}

	// Steel pair plus five per module.
	if got := len(reg.Borders()); got != 32 {
		t.Errorf("border surface count = %d, want 32", got)
	}
	for _, name := range []string{"os_lar_tpb", "os_fibers", "os_lar_sipm"} {
		if _, err := reg.Surface(name); err != nil {
			t.Errorf("optical surface %s: %v", name, err)
		}
	}
}

func TestDetailedFiberCustomModules(t *testing.T) {
	cfg := &Config{FiberShroud: &FiberShroudConfig{
		Mode:    FiberDetailed,
		Modules: &ModulesConfig{Count: 2, NamePrefix: "OB", BaseRawID: 4000},
	}}
	reg, err := testBuilder().Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	for i := 0; i < 2; i++ {
		name := fmt.Sprintf("OB%d", i)
		coating, err := reg.Solid("fibers_" + name)
		if err != nil {
			t.Fatalf("module %s: %v", name, err)
		}
		spec := coating.Spec.(geom.TubeSpec)
		if math.Abs(spec.DeltaPhi-math.Pi) > radTol {
			t.Errorf("%s wedge delta = %g, want pi", name, spec.DeltaPhi)
		}
	}
	for i, name := range []string{"sipm_top_0", "sipm_bot_0", "sipm_top_1", "sipm_bot_1"} {
		pv, err := reg.PhysicalVolume(name)
		if err != nil {
			t.Fatalf("channel %s: %v", name, err)
		}
		if pv.Detector == nil || pv.Detector.UID != 4000+i {
			t.Errorf("%s tag = %+v, want uid %d", name, pv.Detector, 4000+i)
		}
	}
}
