package gdml

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/scarf-exp/geomscarf/pkg/assembly"
	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/kernel/trace"
	"github.com/scarf-exp/geomscarf/pkg/metadata"
)

func buildRegistry(t *testing.T, cfg *assembly.Config) *geom.Registry {
	t.Helper()
	b := &assembly.Builder{
		Kernel:   trace.New(),
		Metadata: metadata.Public{},
		Logger:   log.New(io.Discard),
	}
	reg, err := b.Construct(cfg)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	return reg
}

// fullConfig enables every subsystem so the writer sees all solid and
// surface kinds at once.
func fullConfig() *assembly.Config {
	return &assembly.Config{
		HPGes: []assembly.HPGeEntry{
			{Name: "V09999A", Offset: 120, Enclosure: true},
		},
		FiberShroud: &assembly.FiberShroudConfig{Mode: assembly.FiberSimplified},
		Source:      &assembly.SourceConfig{Offset: 300},
		Cavern:      &assembly.CavernConfig{InnerRadius: 10000, OuterRadius: 12000},
	}
}

func writeString(t *testing.T, reg *geom.Registry) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, reg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestWriteGeometry(t *testing.T) {
	out := writeString(t, buildRegistry(t, fullConfig()))

	wants := []string{
		`<gdml xmlns:xsi=`,
		`<box name="world"`,
		`<tube name="source"`,
		`<sphere name="upper_cavern"`,
		`<genericPolycone name="V09999A"`,
		`<subtraction name="lower_cavern">`,
		`<union name="cavern">`,
		`<opticalsurface name="surface_to_germanium"`,
		`<material name="liquid_argon" state="liquid">`,
		`<element name="germanium" formula="Ge" Z="32">`,
		`<fraction n="0.67" ref="iron">`,
		`<matrix name="liquid_argon_RINDEX" coldim="2"`,
		`<property name="RINDEX" ref="liquid_argon_RINDEX">`,
		`<volume name="lar">`,
		`<physvol name="V09999A">`,
		`<bordersurface name="bsurface_lar_ge_V09999A" surfaceproperty="surface_to_germanium">`,
		`<physvolref ref="lar">`,
		`<skinsurface name="enclosure_V09999A_os" surfaceproperty="PEN_surface">`,
		`<world ref="world">`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}

	// argon is a component of both the liquid and the vapor; the
	// element must still be defined once.
	if n := strings.Count(out, `<element name="argon"`); n != 1 {
		t.Errorf("element argon emitted %d times, want 1", n)
	}
}

func TestWriteVolumeOrder(t *testing.T) {
	out := writeString(t, buildRegistry(t, fullConfig()))

	pairs := [][2]string{
		{`<volume name="V09999A">`, `<volume name="lar">`},
		{`<volume name="lar">`, `<volume name="inner_cryostat">`},
		{`<volume name="inner_cryostat">`, `<volume name="world">`},
		{`<tube name="enclosure_V09999A_wall"`, `<union name="enclosure_V09999A_union_top">`},
		{`<union name="enclosure_V09999A_union_top">`, `<union name="enclosure_V09999A_union_full">`},
	}
	for _, p := range pairs {
		first, second := strings.Index(out, p[0]), strings.Index(out, p[1])
		if first < 0 || second < 0 {
			t.Fatalf("output missing %s or %s", p[0], p[1])
		}
		if first > second {
			t.Errorf("%s must precede %s", p[0], p[1])
		}
	}
}

func TestWriteParses(t *testing.T) {
	reg := buildRegistry(t, fullConfig())
	out := writeString(t, reg)

	var doc struct {
		Structure struct {
			Volumes []struct {
				Name string `xml:"name,attr"`
			} `xml:"volume"`
		} `xml:"structure"`
		Setup struct {
			World struct {
				Ref string `xml:"ref,attr"`
			} `xml:"world"`
		} `xml:"setup"`
	}
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}

	if doc.Setup.World.Ref != "world" {
		t.Errorf("setup references %q, want world", doc.Setup.World.Ref)
	}
	vols := doc.Structure.Volumes
	if len(vols) == 0 {
		t.Fatal("no volume elements in structure")
	}
	if got, want := len(vols), len(reg.LogicalVolumes()); got != want {
		t.Errorf("got %d volume elements, registry has %d logical volumes", got, want)
	}
	if last := vols[len(vols)-1].Name; last != "world" {
		t.Errorf("last volume is %q, want world", last)
	}
}

func TestWriteDetectorChannels(t *testing.T) {
	out := writeString(t, buildRegistry(t, fullConfig()))

	var doc struct {
		UserInfo struct {
			Auxiliary []struct {
				Type     string `xml:"auxtype,attr"`
				Value    string `xml:"auxvalue,attr"`
				Children []struct {
					Type  string `xml:"auxtype,attr"`
					Value string `xml:"auxvalue,attr"`
				} `xml:"auxiliary"`
			} `xml:"auxiliary"`
		} `xml:"userinfo"`
	}
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}

	byVolume := make(map[string][2]string)
	for _, aux := range doc.UserInfo.Auxiliary {
		if aux.Type != "Detector" {
			t.Errorf("unexpected auxiliary type %q", aux.Type)
			continue
		}
		var vol, uid string
		for _, c := range aux.Children {
			switch c.Type {
			case "Volume":
				vol = c.Value
			case "UID":
				uid = c.Value
			}
		}
		byVolume[vol] = [2]string{aux.Value, uid}
	}

	want := map[string][2]string{
		"V09999A":           {"germanium", "0"},
		"enclosure_V09999A": {"scintillator", "201"},
		"fiber_core":        {"optical", "100"},
	}
	for vol, kindUID := range want {
		got, ok := byVolume[vol]
		if !ok {
			t.Errorf("no detector entry for %s", vol)
			continue
		}
		if got != kindUID {
			t.Errorf("%s: got %v, want %v", vol, got, kindUID)
		}
	}
}

func TestWriteNoWorld(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, geom.New(trace.New())); err == nil {
		t.Fatal("expected error for registry without world")
	}
	if err := Write(&buf, nil); err == nil {
		t.Fatal("expected error for nil registry")
	}
}

func TestWriteFile(t *testing.T) {
	reg := buildRegistry(t, nil)
	path := filepath.Join(t.TempDir(), "geometry.gdml")
	if err := WriteFile(path, reg); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	text := string(raw)
	if !strings.HasPrefix(text, xml.Header) {
		t.Error("file does not start with the XML header")
	}
	if !strings.HasSuffix(strings.TrimRight(text, "\n"), "</gdml>") {
		t.Error("file does not end with the root element")
	}
}
