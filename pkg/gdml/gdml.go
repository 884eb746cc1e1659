// Package gdml serializes a constructed geometry registry to the XML
// geometry-description format read by the particle-transport engine.
// The writer consumes only the registry's recorded construction specs,
// never the kernel handles, so the output is independent of which
// geometry backend built the solids.
package gdml

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/scarf-exp/geomscarf/pkg/geom"
)

const schemaLocation = "http://service-spi.web.cern.ch/service-spi/app/releases/GDML/schema/gdml.xsd"

// Write serializes the registry to w. Solids appear in registration
// order, which puts boolean operands before the solids combining them;
// volumes are emitted children before mothers so every reference in
// the document points backward.
func Write(w io.Writer, reg *geom.Registry) error {
	if reg == nil || reg.World() == nil {
		return fmt.Errorf("no world volume to serialize")
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(buildDocument(reg)); err != nil {
		return fmt.Errorf("encode geometry description: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile serializes the registry to a file.
func WriteFile(path string, reg *geom.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, reg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func buildDocument(reg *geom.Registry) *document {
	doc := &document{
		XSI:       "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLoc: schemaLocation,
		Setup: setupBlock{
			Name:    "Default",
			Version: "1.0",
			World:   ref{Ref: reg.World().Name},
		},
	}
	buildMaterials(reg, doc)
	buildSolids(reg, doc)
	buildStructure(reg, doc)
	buildDetectors(reg, doc)
	return doc
}

func buildMaterials(reg *geom.Registry, doc *document) {
	seen := make(map[string]bool)
	for _, m := range reg.Materials() {
		for _, c := range m.Components {
			if seen[c.Element.Name] {
				continue
			}
			seen[c.Element.Name] = true
			doc.Materials.Elements = append(doc.Materials.Elements, elementDef{
				Name:    c.Element.Name,
				Formula: c.Element.Symbol,
				Z:       c.Element.Z,
				Atom:    scalar{Value: c.Element.A},
			})
		}

		md := materialDef{
			Name:    m.Name,
			State:   m.State.String(),
			Density: scalar{Value: m.Density, Unit: "g/cm3"},
		}
		if m.Temperature > 0 {
			md.Temperature = &scalar{Value: m.Temperature, Unit: "K"}
		}
		if m.Pressure > 0 {
			md.Pressure = &scalar{Value: m.Pressure, Unit: "pascal"}
		}
		for _, c := range m.Components {
			if c.Atoms > 0 {
				md.Composites = append(md.Composites, composite{N: c.Atoms, Ref: c.Element.Name})
			} else {
				md.Fractions = append(md.Fractions, fraction{N: c.Fraction, Ref: c.Element.Name})
			}
		}
		md.Properties = buildProperties(doc, m.Name, m)
		doc.Materials.Materials = append(doc.Materials.Materials, md)
	}
}

// buildProperties registers one matrix per attached table and returns
// the property references pointing at them. Matrix names are
// owner-qualified so tables of the same kind never collide.
func buildProperties(doc *document, owner string, p interface {
	PropertyNames() []string
	Property(string) (geom.PropertyTable, bool)
}) []propertyRef {
	var refs []propertyRef
	for _, name := range p.PropertyNames() {
		t, _ := p.Property(name)
		matrixName := owner + "_" + name
		doc.Define.Matrices = append(doc.Define.Matrices, matrix{
			Name:   matrixName,
			ColDim: 2,
			Values: matrixValues(t),
		})
		refs = append(refs, propertyRef{Name: name, Ref: matrixName})
	}
	return refs
}

func matrixValues(t geom.PropertyTable) string {
	var b strings.Builder
	for i := range t.Energies {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(t.Energies[i], 'g', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(t.Values[i], 'g', -1, 64))
	}
	return b.String()
}

func buildSolids(reg *geom.Registry, doc *document) {
	for _, s := range reg.Solids() {
		doc.Solids.Items = append(doc.Solids.Items, solidItem(s))
	}
	for _, surf := range reg.Surfaces() {
		doc.Solids.Items = append(doc.Solids.Items, opticalSurfaceDef{
			Name:       surf.Name,
			Model:      string(surf.Model),
			Finish:     string(surf.Finish),
			Type:       string(surf.Type),
			Value:      surf.Value,
			Properties: buildProperties(doc, surf.Name, surf),
		})
	}
}

func solidItem(s *geom.Solid) any {
	switch spec := s.Spec.(type) {
	case geom.BoxSpec:
		return boxSolid{Name: s.Name, X: spec.X, Y: spec.Y, Z: spec.Z, LUnit: "mm"}
	case geom.TubeSpec:
		return tubeSolid{
			Name:     s.Name,
			Rmin:     spec.Rmin,
			Rmax:     spec.Rmax,
			Z:        spec.Height,
			StartPhi: spec.StartPhi,
			DeltaPhi: spec.DeltaPhi,
			LUnit:    "mm",
			AUnit:    "rad",
		}
	case geom.SphereSpec:
		return sphereSolid{
			Name:       s.Name,
			Rmin:       spec.Rmin,
			Rmax:       spec.Rmax,
			DeltaPhi:   2 * math.Pi,
			StartTheta: spec.StartTheta,
			DeltaTheta: spec.DeltaTheta,
			LUnit:      "mm",
			AUnit:      "rad",
		}
	case geom.PolyconeSpec:
		pts := make([]rzPoint, len(spec.R))
		for i := range spec.R {
			pts[i] = rzPoint{R: spec.R[i], Z: spec.Z[i]}
		}
		return polyconeSolid{
			Name:     s.Name,
			DeltaPhi: 2 * math.Pi,
			LUnit:    "mm",
			AUnit:    "rad",
			Points:   pts,
		}
	case geom.BooleanSpec:
		return booleanSolid{
			XMLName:  xml.Name{Local: spec.Op.String()},
			Name:     s.Name,
			First:    ref{Ref: spec.A.Name},
			Second:   ref{Ref: spec.B.Name},
			Position: position{X: spec.Shift.X, Y: spec.Shift.Y, Z: spec.Shift.Z, Unit: "mm"},
		}
	}
	return nil
}

func buildStructure(reg *geom.Registry, doc *document) {
	placements := make(map[string][]*geom.PhysicalVolume)
	for _, pv := range reg.PhysicalVolumes() {
		if pv.Mother == nil {
			continue
		}
		placements[pv.Mother.Name] = append(placements[pv.Mother.Name], pv)
	}

	emitted := make(map[string]bool)
	var emit func(lv *geom.LogicalVolume)
	emit = func(lv *geom.LogicalVolume) {
		if emitted[lv.Name] {
			return
		}
		emitted[lv.Name] = true

		vol := volumeDef{
			Name:        lv.Name,
			MaterialRef: ref{Ref: lv.Material.Name},
			SolidRef:    ref{Ref: lv.Solid.Name},
		}
		for _, pv := range placements[lv.Name] {
			emit(pv.Volume)
			p := physvol{
				Name:      pv.Name,
				VolumeRef: ref{Ref: pv.Volume.Name},
				Position: position{
					X:    pv.Translation.X,
					Y:    pv.Translation.Y,
					Z:    pv.Translation.Z,
					Unit: "mm",
				},
			}
			if pv.Rotation != (geom.Vec3{}) {
				p.Rotation = &rotation{X: pv.Rotation.X, Y: pv.Rotation.Y, Z: pv.Rotation.Z, Unit: "rad"}
			}
			vol.PhysVols = append(vol.PhysVols, p)
		}
		doc.Structure.Items = append(doc.Structure.Items, vol)
	}
	emit(reg.World())

	for _, b := range reg.Borders() {
		doc.Structure.Items = append(doc.Structure.Items, borderSurfaceDef{
			Name:    b.Name,
			Surface: b.Surface.Name,
			Volumes: []ref{{Ref: b.From.Name}, {Ref: b.To.Name}},
		})
	}
	for _, s := range reg.Skins() {
		doc.Structure.Items = append(doc.Structure.Items, skinSurfaceDef{
			Name:    s.Name,
			Surface: s.Surface.Name,
			Volume:  ref{Ref: s.Volume.Name},
		})
	}
}

// buildDetectors exports the detector tags of placed volumes as an
// auxiliary list, one entry per readout channel.
func buildDetectors(reg *geom.Registry, doc *document) {
	var aux []auxiliary
	for _, pv := range reg.PhysicalVolumes() {
		det := pv.Detector
		if det == nil {
			continue
		}
		aux = append(aux, auxiliary{
			Type:  "Detector",
			Value: det.Kind,
			Children: []auxiliary{
				{Type: "Volume", Value: pv.Name},
				{Type: "UID", Value: strconv.Itoa(det.UID)},
			},
		})
	}
	if len(aux) > 0 {
		doc.UserInfo = &userInfo{Auxiliary: aux}
	}
}
