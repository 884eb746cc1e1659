package assembly

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scarf-exp/geomscarf/pkg/profile"
)

func TestCryostatPlacements(t *testing.T) {
	reg, err := testBuilder().Construct(nil)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	// Expected positions for the builtin dimensions: fill height 1200,
	// so the whole cryostat is shifted down by 600.
	cases := []struct {
		pv     string
		mother string
		z      float64
	}{
		{"inner_cryostat", "world", -600},
		{"lar", "inner_cryostat", 10},
		{"gaseous_argon", "lar", 1050},
		{"outer_cryostat", "world", -760},
		{"cryostat_lid", "world", 603},
		{"lead_shield", "world", -776},
	}
	for _, tc := range cases {
		t.Run(tc.pv, func(t *testing.T) {
			pv, err := reg.PhysicalVolume(tc.pv)
			if err != nil {
				t.Fatal(err)
			}
			if pv.Mother.Name != tc.mother {
				t.Errorf("mother = %s, want %s", pv.Mother.Name, tc.mother)
			}
			if pv.Translation.X != 0 || pv.Translation.Y != 0 {
				t.Errorf("off-axis translation %+v", pv.Translation)
			}
			if pv.Translation.Z != tc.z {
				t.Errorf("z = %g, want %g", pv.Translation.Z, tc.z)
			}
		})
	}
}

func TestCryostatMaterials(t *testing.T) {
	reg, err := testBuilder().Construct(nil)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	cases := map[string]string{
		"world":          "vacuum",
		"inner_cryostat": "metal_steel",
		"lar":            "liquid_argon",
		"gaseous_argon":  "gaseous_argon",
		"outer_cryostat": "metal_steel",
		"cryostat_lid":   "metal_steel",
		"lead_shield":    "lead",
	}
	for name, material := range cases {
		lv, err := reg.LogicalVolume(name)
		if err != nil {
			t.Errorf("logical volume %s: %v", name, err)
			continue
		}
		if lv.Material.Name != material {
			t.Errorf("%s material = %s, want %s", name, lv.Material.Name, material)
		}
	}

	lar, err := reg.LogicalVolume("lar")
	if err != nil {
		t.Fatal(err)
	}
	if lar.Color == nil || lar.Color.G != 1 || lar.Color.B != 1 || lar.Color.A != 0.5 {
		t.Errorf("lar color = %+v", lar.Color)
	}
}

func TestCryostatProfileSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cryostat.svg")
	b := testBuilder()
	b.ProfileSVGPath = path
	if _, err := b.Construct(nil); err != nil {
		t.Fatalf("Construct: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("profile sketch not written: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") {
		t.Errorf("output is not an SVG document")
	}
	for _, layer := range []string{"inner_cryostat", "lar", "lead_shield"} {
		if !strings.Contains(svg, layer) {
			t.Errorf("sketch misses layer %s", layer)
		}
	}
}

func TestCryostatDimensionOverride(t *testing.T) {
	// A partial block overrides single dimensions; the rest keeps the
	// builtin values.
	var dims profile.Dimensions
	dims.GasArgon.Height = 200

	reg, err := testBuilder().Construct(&Config{Cryostat: &dims})
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	gas, err := reg.PhysicalVolume("gaseous_argon")
	if err != nil {
		t.Fatal(err)
	}
	if gas.Translation.Z != 1000 {
		t.Errorf("vapor gap z = %g, want 1000", gas.Translation.Z)
	}
	inner, err := reg.PhysicalVolume("inner_cryostat")
	if err != nil {
		t.Fatal(err)
	}
	if inner.Translation.Z != -600 {
		t.Errorf("inner vessel z = %g, builtin dimensions not preserved", inner.Translation.Z)
	}
}

func TestCryostatDimensionNegative(t *testing.T) {
	var dims profile.Dimensions
	dims.GasArgon.Height = -5

	_, err := testBuilder().Construct(&Config{Cryostat: &dims})
	if err == nil {
		t.Fatalf("expected a negative dimension to be rejected")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "gas_argon.height_in_mm") {
		t.Errorf("error %q does not name the bad dimension", err)
	}
}
