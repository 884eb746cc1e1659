// Package hpge synthesizes high-purity germanium detector volumes
// from metadata records. The crystal shape is a revolved profile
// derived from the machining parameters: point contact, groove,
// edge tapers and, for coaxial detector kinds, the central bore.
package hpge

import (
	"errors"
	"fmt"
	"math"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/materials"
	"github.com/scarf-exp/geomscarf/pkg/metadata"
	"github.com/scarf-exp/geomscarf/pkg/profile"
)

// Detector kinds understood by the profile synthesis.
const (
	KindBEGe = "bege"
	KindPPC  = "ppc"
	KindICPC = "icpc"
	KindCoax = "coax"
)

// Factory builds detector logical volumes from metadata records.
type Factory interface {
	Make(rec metadata.Record, name string) (*geom.LogicalVolume, error)
}

// Maker is the default factory. It revolves the crystal profile into
// a solid of enrichment-dependent germanium.
type Maker struct {
	mats *materials.Store
}

var _ Factory = (*Maker)(nil)

// NewMaker creates a factory registering volumes through the given
// material store and its registry.
func NewMaker(mats *materials.Store) *Maker { return &Maker{mats: mats} }

// Make builds the logical volume for rec. An empty name defaults to
// the record's detector name. The record must already carry an
// enrichment fraction.
func (m *Maker) Make(rec metadata.Record, name string) (*geom.LogicalVolume, error) {
	if name == "" {
		name = rec.Name
	}
	if name == "" {
		return nil, errors.New("detector record has no name")
	}
	enr := rec.Production.Enrichment.Val
	if enr == nil {
		return nil, fmt.Errorf("detector %s: record has no enrichment fraction", name)
	}

	prof, err := CrystalProfile(rec.Kind, rec.Geometry)
	if err != nil {
		return nil, fmt.Errorf("detector %s: %w", name, err)
	}
	mat, err := m.mats.EnrichedGermanium(*enr)
	if err != nil {
		return nil, fmt.Errorf("detector %s: %w", name, err)
	}

	reg := m.mats.Registry()
	solid, err := reg.NewPolycone(name, prof.R, prof.Z)
	if err != nil {
		return nil, err
	}
	lv, err := reg.NewLogicalVolume(name, solid, mat)
	if err != nil {
		return nil, err
	}
	lv.Color = geom.RGBA{R: 1, G: 1, B: 1, A: 1}
	return lv, nil
}

// CrystalProfile derives the revolved crystal outline from the
// machining parameters. The profile starts on the bottom face at the
// axis (or at the bore wall for semi-coaxial crystals) and runs
// outward, up the mantle and back to the top center, with z = 0 at
// the p+ contact face. Degenerate features (zero-depth groove or
// contact, zero-height taper) add no vertices.
func CrystalProfile(kind string, g metadata.Geometry) (profile.Profile, error) {
	if g.Height <= 0 || g.Radius <= 0 {
		return profile.Profile{}, fmt.Errorf("crystal dimensions %g x %g are not positive", g.Radius, g.Height)
	}
	switch kind {
	case KindBEGe, KindPPC, KindICPC, KindCoax:
	default:
		return profile.Profile{}, fmt.Errorf("unknown detector kind %q", kind)
	}

	hasBore := g.Borehole.Radius > 0 && g.Borehole.Depth > 0
	boreFromBottom := kind == KindCoax && hasBore
	boreFromTop := kind == KindICPC && hasBore

	var r, z []float64
	add := func(ri, zi float64) {
		r = append(r, ri)
		z = append(z, zi)
	}

	// Bottom face, center outward. A recessed point contact opens a
	// dimple around the axis.
	axis := 0.0
	if boreFromBottom {
		axis = g.Borehole.Radius
	}
	if g.PPContact.Depth > 0 {
		add(axis, g.PPContact.Depth)
		add(g.PPContact.Radius, g.PPContact.Depth)
		add(g.PPContact.Radius, 0)
	} else {
		add(axis, 0)
	}

	if g.Groove.Depth > 0 && g.Groove.Radius.Outer > g.Groove.Radius.Inner {
		add(g.Groove.Radius.Inner, 0)
		add(g.Groove.Radius.Inner, g.Groove.Depth)
		add(g.Groove.Radius.Outer, g.Groove.Depth)
		add(g.Groove.Radius.Outer, 0)
	}

	// Bottom outer edge.
	if dr := taperOffset(g.Taper.Bottom); dr > 0 {
		add(g.Radius-dr, 0)
		add(g.Radius, g.Taper.Bottom.Height)
	} else {
		add(g.Radius, 0)
	}

	// Mantle and top outer edge.
	if dr := taperOffset(g.Taper.Top); dr > 0 {
		add(g.Radius, g.Height-g.Taper.Top.Height)
		add(g.Radius-dr, g.Height)
	} else {
		add(g.Radius, g.Height)
	}

	// Top face back to the axis, around the bore where present.
	switch {
	case boreFromTop:
		if dr := taperOffset(g.Taper.Borehole); dr > 0 {
			add(g.Borehole.Radius+dr, g.Height)
			add(g.Borehole.Radius, g.Height-g.Taper.Borehole.Height)
		} else {
			add(g.Borehole.Radius, g.Height)
		}
		add(g.Borehole.Radius, g.Height-g.Borehole.Depth)
		add(0, g.Height-g.Borehole.Depth)
	case boreFromBottom:
		// The implicit closing edge is the bore wall down to the
		// bottom face.
		if dr := taperOffset(g.Taper.Borehole); dr > 0 {
			add(g.Borehole.Radius+dr, g.Height)
			add(g.Borehole.Radius, g.Height-g.Taper.Borehole.Height)
		} else {
			add(g.Borehole.Radius, g.Height)
		}
	default:
		add(0, g.Height)
	}

	p := profile.Profile{R: r, Z: z}.Compact()
	if err := p.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("crystal profile: %w", err)
	}
	return p, nil
}

func taperOffset(t metadata.Taper) float64 {
	if t.Height <= 0 || t.Angle <= 0 {
		return 0
	}
	return t.Height * math.Tan(t.Angle*math.Pi/180)
}
