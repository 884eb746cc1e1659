package assembly

import (
	"github.com/charmbracelet/log"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/materials"
	"github.com/scarf-exp/geomscarf/pkg/profile"
)

// Fixed by the support structure rather than the vessel drawings: the
// legs raise the outer vessel floor, and the lid rests slightly above
// the inner vessel neck.
const (
	legHeight = 150.0 // mm
	lidGap    = 3.0   // mm
)

// cryostat bundles what later construction stages need: the liquid
// argon volume to place daughters in, the height of the fill column
// and the downward shift that centres the column on the world origin.
type cryostat struct {
	fill       *geom.LogicalVolume
	fillHeight float64
	shift      float64
}

// buildCryostat constructs the vessel stack: inner vessel, liquid
// argon fill, vapor gap, outer vessel, lid and lead shield. The fill
// is the only daughter carrier; everything else hangs off the world.
func (b *Builder) buildCryostat(reg *geom.Registry, mats *materials.Store, world *geom.LogicalVolume, dims profile.Dimensions, logger *log.Logger) (cryostat, error) {
	shift := dims.FillHeight() / 2

	steel, err := mats.MetalSteel()
	if err != nil {
		return cryostat{}, err
	}

	inner, err := constructPolycone(reg, "inner_cryostat", dims.InnerVessel(), steel,
		geom.RGBA{R: 0.7, G: 0.3, B: 0.3, A: 0.1})
	if err != nil {
		return cryostat{}, err
	}
	if _, err := reg.Place("inner_cryostat", inner, world, geom.ZVec(-shift)); err != nil {
		return cryostat{}, err
	}

	larMat, err := mats.LiquidArgon()
	if err != nil {
		return cryostat{}, err
	}
	fill, err := constructPolycone(reg, "lar", dims.Fill(), larMat,
		geom.RGBA{G: 1, B: 1, A: 0.5})
	if err != nil {
		return cryostat{}, err
	}
	if _, err := reg.Place("lar", fill, inner, geom.ZVec(dims.Inner.Lower.Thickness)); err != nil {
		return cryostat{}, err
	}

	if err := attachSteelSurfaces(reg, mats); err != nil {
		return cryostat{}, err
	}

	gasMat, err := mats.GaseousArgon()
	if err != nil {
		return cryostat{}, err
	}
	gas, err := constructPolycone(reg, "gaseous_argon", dims.VaporGap(), gasMat,
		geom.RGBA{R: 0.8784, G: 1, B: 1, A: 1})
	if err != nil {
		return cryostat{}, err
	}
	gasZ := dims.Inner.Lower.Height + dims.Inner.Upper.Height - dims.GasArgon.Height
	if _, err := reg.Place("gaseous_argon", gas, fill, geom.ZVec(gasZ)); err != nil {
		return cryostat{}, err
	}

	outer, err := constructPolycone(reg, "outer_cryostat", dims.OuterVessel(), steel,
		geom.RGBA{R: 0.7, G: 0.3, B: 0.3, A: 0.1})
	if err != nil {
		return cryostat{}, err
	}
	outerZ := -legHeight - dims.Inner.Lower.Thickness - shift
	if _, err := reg.Place("outer_cryostat", outer, world, geom.ZVec(outerZ)); err != nil {
		return cryostat{}, err
	}

	lid, err := constructPolycone(reg, "cryostat_lid", dims.Lid(), steel,
		geom.RGBA{R: 0.7, G: 0.3, B: 0.3, A: 0.1})
	if err != nil {
		return cryostat{}, err
	}
	lidZ := dims.Inner.Lower.Height + dims.Inner.Upper.Height + lidGap - shift
	if _, err := reg.Place("cryostat_lid", lid, world, geom.ZVec(lidZ)); err != nil {
		return cryostat{}, err
	}

	leadMat, err := mats.Lead()
	if err != nil {
		return cryostat{}, err
	}
	shield, err := constructPolycone(reg, "lead_shield", dims.Shield(), leadMat,
		geom.RGBA{R: 0.9, G: 0.9, B: 0.9, A: 0.1})
	if err != nil {
		return cryostat{}, err
	}
	shieldZ := -legHeight - 2*dims.Outer.Thickness - dims.Lead.AirGap - shift
	if _, err := reg.Place("lead_shield", shield, world, geom.ZVec(shieldZ)); err != nil {
		return cryostat{}, err
	}

	if b.ProfileSVGPath != "" {
		if err := writeProfileSVG(b.ProfileSVGPath, dims, shift); err != nil {
			return cryostat{}, err
		}
		logger.Info("wrote cryostat cross-section", "path", b.ProfileSVGPath)
	}

	logger.Info("cryostat constructed", "fill_height", dims.FillHeight(), "shift", shift)
	return cryostat{fill: fill, fillHeight: dims.FillHeight(), shift: shift}, nil
}

// constructPolycone revolves a profile into a solid and wraps it in a
// colored logical volume of the same name.
func constructPolycone(reg *geom.Registry, name string, p profile.Profile, mat *geom.Material, color geom.RGBA) (*geom.LogicalVolume, error) {
	s, err := reg.NewPolycone(name, p.R, p.Z)
	if err != nil {
		return nil, err
	}
	lv, err := reg.NewLogicalVolume(name, s, mat)
	if err != nil {
		return nil, err
	}
	lv.Color = color
	return lv, nil
}

// attachSteelSurfaces applies the steel reflectivity to both crossing
// directions of the argon-vessel boundary.
func attachSteelSurfaces(reg *geom.Registry, mats *materials.Store) error {
	surf, err := mats.SurfaceToSteel()
	if err != nil {
		return err
	}
	if _, err := reg.AttachBorder("bsurface_lar_cryostat", "lar", "inner_cryostat", surf); err != nil {
		return err
	}
	if _, err := reg.AttachBorder("bsurface_cryostat_lar", "inner_cryostat", "lar", surf); err != nil {
		return err
	}
	return nil
}

// writeProfileSVG renders the vessel cross-sections at their world
// positions.
func writeProfileSVG(path string, dims profile.Dimensions, shift float64) error {
	larShift := -shift + dims.Inner.Lower.Thickness
	gasZ := dims.Inner.Lower.Height + dims.Inner.Upper.Height - dims.GasArgon.Height
	layers := []profile.Layer{
		{Name: "inner_cryostat", Profile: dims.InnerVessel(), Shift: -shift, Fill: "black", Opacity: 1},
		{Name: "lar", Profile: dims.Fill(), Shift: larShift, Fill: "cyan", Opacity: 1},
		{Name: "gaseous_argon", Profile: dims.VaporGap(), Shift: larShift + gasZ, Fill: "lightcyan", Opacity: 1},
		{Name: "outer_cryostat", Profile: dims.OuterVessel(), Shift: -legHeight - dims.Inner.Lower.Thickness - shift, Fill: "blue", Opacity: 1},
		{Name: "cryostat_lid", Profile: dims.Lid(), Shift: dims.Inner.Lower.Height + dims.Inner.Upper.Height + lidGap - shift, Fill: "blue", Opacity: 1},
		{Name: "lead_shield", Profile: dims.Shield(), Shift: -legHeight - 2*dims.Outer.Thickness - dims.Lead.AirGap - shift, Fill: "gray", Opacity: 0.3},
	}
	return profile.WriteSVGFile(path, layers)
}
