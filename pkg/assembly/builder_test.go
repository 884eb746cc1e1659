package assembly

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/scarf-exp/geomscarf/pkg/kernel/trace"
	"github.com/scarf-exp/geomscarf/pkg/metadata"
)

// testBuilder constructs against the tracing kernel and the bundled sample
// records so tests stay hermetic.
func testBuilder() *Builder {
	return &Builder{
		Kernel:   trace.New(),
		Metadata: metadata.Public{},
		Logger:   log.New(io.Discard),
	}
}

func TestConstructBareCryostat(t *testing.T) {
	reg, err := testBuilder().Construct(nil)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if reg.World() == nil {
		t.Fatalf("world volume not set")
	}

	for _, name := range []string{
		"world", "inner_cryostat", "lar", "gaseous_argon",
		"outer_cryostat", "cryostat_lid", "lead_shield",
	} {
		if _, err := reg.LogicalVolume(name); err != nil {
			t.Errorf("logical volume %s: %v", name, err)
		}
	}

	borders := reg.Borders()
	if len(borders) != 2 {
		t.Fatalf("expected 2 border surfaces, got %d", len(borders))
	}
	if borders[0].Name != "bsurface_lar_cryostat" || borders[1].Name != "bsurface_cryostat_lar" {
		t.Errorf("border names = %s, %s", borders[0].Name, borders[1].Name)
	}
	if borders[0].From.Name != "lar" || borders[0].To.Name != "inner_cryostat" {
		t.Errorf("bsurface_lar_cryostat runs %s into %s, want lar into inner_cryostat",
			borders[0].From.Name, borders[0].To.Name)
	}
	if borders[1].From.Name != "inner_cryostat" || borders[1].To.Name != "lar" {
		t.Errorf("bsurface_cryostat_lar runs %s into %s, want inner_cryostat into lar",
			borders[1].From.Name, borders[1].To.Name)
	}
}

func TestConstructWithHPGe(t *testing.T) {
	cfg := &Config{HPGes: []HPGeEntry{{Name: "V09999A", Offset: 120}}}
	reg, err := testBuilder().Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	if _, err := reg.LogicalVolume("V09999A"); err != nil {
		t.Fatalf("detector volume: %v", err)
	}
	pv, err := reg.PhysicalVolume("V09999A")
	if err != nil {
		t.Fatalf("detector placement: %v", err)
	}
	if pv.Mother.Name != "lar" {
		t.Errorf("detector mother = %s, want lar", pv.Mother.Name)
	}
	if pv.Translation.Z != 720 {
		t.Errorf("detector z = %g, want 720", pv.Translation.Z)
	}

	det := pv.Detector
	if det == nil {
		t.Fatalf("detector placement carries no sensitive tag")
	}
	if det.Kind != "germanium" || det.UID != 0 {
		t.Errorf("tag = %s/%d, want germanium/0", det.Kind, det.UID)
	}
	rec, ok := det.Meta.(metadata.Record)
	if !ok {
		t.Fatalf("tag meta is %T, want metadata.Record", det.Meta)
	}
	if rec.Name != "V09999A" {
		t.Errorf("record name = %s, want V09999A", rec.Name)
	}
	if rec.Production.Enrichment.Val == nil {
		t.Errorf("record enrichment was not normalized")
	}

	found := false
	for _, bs := range reg.Borders() {
		if bs.Name == "bsurface_lar_ge_V09999A" {
			found = true
			if bs.From.Name != "lar" || bs.To.Name != "V09999A" {
				t.Errorf("germanium border runs %s into %s", bs.From.Name, bs.To.Name)
			}
			if bs.Surface.Name != "surface_to_germanium" {
				t.Errorf("germanium border uses surface %s", bs.Surface.Name)
			}
		}
	}
	if !found {
		t.Errorf("border surface bsurface_lar_ge_V09999A not attached")
	}
}

func TestConstructUIDOverride(t *testing.T) {
	uid := 7
	cfg := &Config{HPGes: []HPGeEntry{{Name: "V09999A", Offset: 120, UID: &uid}}}
	reg, err := testBuilder().Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	pv, err := reg.PhysicalVolume("V09999A")
	if err != nil {
		t.Fatal(err)
	}
	if pv.Detector == nil || pv.Detector.UID != 7 {
		t.Errorf("detector tag = %+v, want uid 7", pv.Detector)
	}
}

func TestConstructMetadataGate(t *testing.T) {
	t.Setenv(metadata.EnvDir, "")
	b := &Builder{Kernel: trace.New(), Logger: log.New(io.Discard)}
	cfg := &Config{HPGes: []HPGeEntry{{Name: "V09999A", Offset: 120}}}
	_, err := b.Construct(cfg)
	if err == nil {
		t.Fatalf("expected the metadata gate to refuse")
	}
	const want = "cannot construct geometry from public testdata only, if not explicitly instructed"
	if err.Error() != want {
		t.Errorf("gate message = %q, want %q", err, want)
	}
}

func TestConstructWithoutDetectorsNeedsNoMetadata(t *testing.T) {
	t.Setenv(metadata.EnvDir, "")
	b := &Builder{Kernel: trace.New(), Logger: log.New(io.Discard)}
	reg, err := b.Construct(nil)
	if err != nil {
		t.Fatalf("cryostat-only construction should not require metadata: %v", err)
	}
	if reg.World() == nil {
		t.Errorf("world volume not set")
	}
}

func TestConstructPublicData(t *testing.T) {
	t.Setenv(metadata.EnvDir, "")
	var buf bytes.Buffer
	b := &Builder{Kernel: trace.New(), PublicData: true, Logger: log.New(&buf)}
	cfg := &Config{HPGes: []HPGeEntry{{Name: "B09999B", Offset: 50}}}
	reg, err := b.Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if _, err := reg.LogicalVolume("B09999B"); err != nil {
		t.Errorf("detector volume missing: %v", err)
	}
	if !strings.Contains(buf.String(), "CONSTRUCTING GEOMETRY FROM PUBLIC DATA ONLY") {
		t.Errorf("expected a loud warning, log output:\n%s", buf.String())
	}
}

func TestConstructValidatesFirst(t *testing.T) {
	t.Setenv(metadata.EnvDir, "")
	b := &Builder{Kernel: trace.New(), Logger: log.New(io.Discard)}
	_, err := b.Construct(&Config{Cavern: &CavernConfig{}})
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("config validation should run before the metadata gate, got %v", err)
	}
}

func TestConstructSource(t *testing.T) {
	cfg := &Config{Source: &SourceConfig{Offset: 300}}
	reg, err := testBuilder().Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	pv, err := reg.PhysicalVolume("source")
	if err != nil {
		t.Fatal(err)
	}
	if pv.Mother.Name != "world" {
		t.Errorf("source mother = %s, want world", pv.Mother.Name)
	}
	if pv.Translation.X != 0 || pv.Translation.Y != 100 || pv.Translation.Z != 300 {
		t.Errorf("source translation = %+v, want {0 100 300}", pv.Translation)
	}
	if pv.Volume.Material.Name != "iron" {
		t.Errorf("source material = %s, want iron", pv.Volume.Material.Name)
	}
}

func TestConstructCavern(t *testing.T) {
	cfg := &Config{Cavern: &CavernConfig{InnerRadius: 10000, OuterRadius: 20000}}
	reg, err := testBuilder().Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if _, err := reg.LogicalVolume("cavern"); err != nil {
		t.Fatalf("cavern volume: %v", err)
	}
	pv, err := reg.PhysicalVolume("cavern")
	if err != nil {
		t.Fatal(err)
	}
	if pv.Mother.Name != "world" || pv.Translation.Z != 1500 {
		t.Errorf("cavern placed in %s at z=%g", pv.Mother.Name, pv.Translation.Z)
	}
}

func TestConstructDeterministic(t *testing.T) {
	cfg := &Config{
		HPGes:       []HPGeEntry{{Name: "V09999A", Offset: 120}},
		FiberShroud: &FiberShroudConfig{},
		Source:      &SourceConfig{Offset: 200},
		Cavern:      &CavernConfig{InnerRadius: 10000, OuterRadius: 20000},
	}
	b := testBuilder()

	names := func(t *testing.T) []string {
		t.Helper()
		reg, err := b.Construct(cfg)
		if err != nil {
			t.Fatalf("Construct: %v", err)
		}
		var out []string
		for _, lv := range reg.LogicalVolumes() {
			out = append(out, lv.Name)
		}
		for _, pv := range reg.PhysicalVolumes() {
			out = append(out, pv.Name)
		}
		return out
	}

	first, second := names(t), names(t)
	if len(first) != len(second) {
		t.Fatalf("runs differ in volume count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("volume order differs at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestConstructKernelFailure(t *testing.T) {
	k := trace.New()
	k.FailOn = "polycone"
	b := &Builder{Kernel: k, Metadata: metadata.Public{}, Logger: log.New(io.Discard)}
	reg, err := b.Construct(nil)
	if err == nil {
		t.Fatalf("expected kernel failure to abort construction")
	}
	if !errors.Is(err, trace.ErrInjected) {
		t.Errorf("error %v should wrap the injected kernel failure", err)
	}
	if reg != nil {
		t.Errorf("no registry should be returned on failure")
	}
}
