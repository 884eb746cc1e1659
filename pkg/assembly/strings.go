package assembly

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/hpge"
	"github.com/scarf-exp/geomscarf/pkg/materials"
	"github.com/scarf-exp/geomscarf/pkg/metadata"
)

// Enclosure dimensions fixed by the PEN holder design. The wall hugs
// the crystal with a small radial gap and a few millimetres of axial
// headroom; the caps overhang the wall and are centred on its end
// faces.
const (
	enclosureGap      = 0.5 // mm, crystal to wall
	enclosureWall     = 1.5 // mm, wall thickness
	enclosureMargin   = 5.0 // mm, axial headroom
	enclosureCap      = 1.5 // mm, cap thickness
	enclosureCapExtra = 5.0 // mm, cap radial overhang
	enclosureUIDBase  = 200
)

// buildStrings resolves, builds and places every configured detector
// inside the liquid argon, tags it for readout and applies the
// germanium reflectivity towards the argon.
func buildStrings(reg *geom.Registry, mats *materials.Store, factory hpge.Factory, meta metadata.Provider, cryo cryostat, entries []HPGeEntry, logger *log.Logger) error {
	for i, entry := range entries {
		rec, err := meta.Lookup(entry.Name)
		if err != nil {
			return fmt.Errorf("detector %s: %w", entry.Name, err)
		}
		rec = metadata.Normalize(rec)

		lv, err := factory.Make(rec, entry.Name)
		if err != nil {
			return err
		}

		z := cryo.fillHeight/2 + entry.Offset
		pv, err := reg.Place(entry.Name, lv, cryo.fill, geom.ZVec(z))
		if err != nil {
			return err
		}

		uid := i
		if entry.UID != nil {
			uid = *entry.UID
		}
		pv.SetDetector("germanium", uid, rec)
		logger.Info("placed detector", "name", entry.Name, "kind", rec.Kind, "uid", uid, "z", z)

		surf, err := mats.SurfaceToGermanium()
		if err != nil {
			return err
		}
		if _, err := reg.AttachBorder("bsurface_lar_ge_"+pv.Name, "lar", pv.Name, surf); err != nil {
			return err
		}

		if entry.Enclosure {
			if err := buildEnclosure(reg, mats, cryo, entry.Name, rec, z, i); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildEnclosure wraps one detector in a closed PEN cylinder: a wall
// around the crystal joined with two overhanging cap discs. The
// enclosure is centred on the crystal centre and tagged as a
// scintillator channel.
func buildEnclosure(reg *geom.Registry, mats *materials.Store, cryo cryostat, detName string, rec metadata.Record, detZ float64, index int) error {
	name := "enclosure_" + detName
	innerR := rec.Geometry.Radius + enclosureGap
	outerR := innerR + enclosureWall
	height := rec.Geometry.Height + enclosureMargin
	capR := outerR + enclosureCapExtra

	wall, err := reg.NewTube(name+"_wall", innerR, outerR, height, 0, 2*math.Pi)
	if err != nil {
		return err
	}
	plate, err := reg.NewTube(name+"_cap", 0, capR, enclosureCap, 0, 2*math.Pi)
	if err != nil {
		return err
	}
	top, err := reg.NewUnion(name+"_union_top", wall, plate, geom.ZVec(height/2))
	if err != nil {
		return err
	}
	closed, err := reg.NewUnion(name+"_union_full", top, plate, geom.ZVec(-height/2))
	if err != nil {
		return err
	}

	pen, err := mats.PEN()
	if err != nil {
		return err
	}
	lv, err := reg.NewLogicalVolume(name, closed, pen)
	if err != nil {
		return err
	}

	pv, err := reg.Place(name, lv, cryo.fill, geom.ZVec(detZ+rec.Geometry.Height/2))
	if err != nil {
		return err
	}
	pv.SetDetector("scintillator", enclosureUIDBase+index+1, "name:"+name)

	surf, err := mats.PENSurface()
	if err != nil {
		return err
	}
	_, err = reg.AttachSkin(name+"_os", name, surf)
	return err
}
