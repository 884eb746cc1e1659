package assembly

import (
	"math"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/materials"
)

// Fiber hardware constants: square fibers of 1 mm side, with the
// wavelength shifter evaporated at about a micron in the simplified
// mode. SiPM channels are short rings capping the fiber ends.
const (
	fiberDim       = 1.0 // mm
	tpbThicknessUM = 1.0
	sipmHeight     = 1.0 // mm
)

// fiberShroudColor is the pale green used for the coated barrel.
var fiberShroudColor = geom.RGBA{G: 1, B: 0.165, A: 0.07}

func buildFiberShroud(reg *geom.Registry, mats *materials.Store, cryo cryostat, cfg *FiberShroudConfig, logger *log.Logger) error {
	switch cfg.Mode {
	case FiberDetailed:
		return buildDetailedShroud(reg, mats, cryo, cfg, logger)
	default:
		return buildSimplifiedShroud(reg, mats, cryo, cfg, logger)
	}
}

// buildSimplifiedShroud collapses all fibers into one thin cylinder
// pair: a wavelength-shifter coating enclosing the fiber core. The
// core is the single optical readout channel.
func buildSimplifiedShroud(reg *geom.Registry, mats *materials.Store, cryo cryostat, cfg *FiberShroudConfig, logger *log.Logger) error {
	coatingDim := fiberDim + 2*tpbThicknessUM/1e3

	coatingSolid, err := reg.NewTube("tpb_coating",
		cfg.Radius-coatingDim/2, cfg.Radius+coatingDim/2, cfg.Height, 0, 2*math.Pi)
	if err != nil {
		return err
	}
	tpbMat, err := mats.TPBOnFibers()
	if err != nil {
		return err
	}
	coating, err := reg.NewLogicalVolume("tpb_coating", coatingSolid, tpbMat)
	if err != nil {
		return err
	}
	coating.Color = fiberShroudColor

	coreSolid, err := reg.NewTube("fiber_core",
		cfg.Radius-fiberDim/2, cfg.Radius+fiberDim/2, cfg.Height, 0, 2*math.Pi)
	if err != nil {
		return err
	}
	psMat, err := mats.PSFibers()
	if err != nil {
		return err
	}
	core, err := reg.NewLogicalVolume("fiber_core", coreSolid, psMat)
	if err != nil {
		return err
	}

	corePV, err := reg.Place("fiber_core", core, coating, geom.Vec3{})
	if err != nil {
		return err
	}
	uid := DefaultFiberUID
	if cfg.UID != nil {
		uid = *cfg.UID
	}
	corePV.SetDetector("optical", uid, nil)

	z := cryo.fillHeight/2 + cfg.Offset
	if _, err := reg.Place("fiber_shroud", coating, cryo.fill, geom.ZVec(z)); err != nil {
		return err
	}

	tpbSurf, err := mats.LArToTPB()
	if err != nil {
		return err
	}
	if _, err := reg.AttachBorder("bsurface_lar_tpb_fiber_shroud", "lar", "fiber_shroud", tpbSurf); err != nil {
		return err
	}
	if _, err := reg.AttachBorder("bsurface_tpb_lar_fiber_shroud", "fiber_shroud", "lar", tpbSurf); err != nil {
		return err
	}

	coreSurf, err := mats.SurfaceToFiberCore()
	if err != nil {
		return err
	}
	if _, err := reg.AttachBorder("bsurface_tpb_fiber", "fiber_shroud", "fiber_core", coreSurf); err != nil {
		return err
	}

	logger.Info("built fiber shroud", "mode", cfg.Mode, "radius", cfg.Radius, "height", cfg.Height, "uid", uid)
	return nil
}

// buildDetailedShroud splits the barrel into azimuthal wedge modules,
// each a coated fiber segment read out by a SiPM ring at either end.
// Channel identifiers interleave top and bottom per module.
func buildDetailedShroud(reg *geom.Registry, mats *materials.Store, cryo cryostat, cfg *FiberShroudConfig, logger *log.Logger) error {
	mod := cfg.Modules
	coatingDim := fiberDim + 2*mod.TPBThicknessNM/1e6
	delta := 2 * math.Pi / float64(mod.Count)
	z := cryo.fillHeight/2 + cfg.Offset

	tpbMat, err := mats.TPBOnFibers()
	if err != nil {
		return err
	}
	psMat, err := mats.PSFibers()
	if err != nil {
		return err
	}
	larTPB, err := mats.OSLArTPB()
	if err != nil {
		return err
	}
	fiberSurf, err := mats.OSFibers()
	if err != nil {
		return err
	}
	sipmSurf, err := mats.OSLArSiPM()
	if err != nil {
		return err
	}

	for i := 0; i < mod.Count; i++ {
		name := mod.NamePrefix + strconv.Itoa(i)
		start := float64(i) * delta

		coatingName := "fibers_" + name
		coatingSolid, err := reg.NewTube(coatingName,
			cfg.Radius-coatingDim/2, cfg.Radius+coatingDim/2, cfg.Height, start, delta)
		if err != nil {
			return err
		}
		coating, err := reg.NewLogicalVolume(coatingName, coatingSolid, tpbMat)
		if err != nil {
			return err
		}
		coating.Color = fiberShroudColor

		coreName := "fiber_core_" + name
		coreSolid, err := reg.NewTube(coreName,
			cfg.Radius-fiberDim/2, cfg.Radius+fiberDim/2, cfg.Height, start, delta)
		if err != nil {
			return err
		}
		core, err := reg.NewLogicalVolume(coreName, coreSolid, psMat)
		if err != nil {
			return err
		}

		if _, err := reg.Place(coreName, core, coating, geom.Vec3{}); err != nil {
			return err
		}
		if _, err := reg.Place(coatingName, coating, cryo.fill, geom.ZVec(z)); err != nil {
			return err
		}

		if _, err := reg.AttachBorder("bsurface_lar_tpb_"+coatingName, "lar", coatingName, larTPB); err != nil {
			return err
		}
		if _, err := reg.AttachBorder("bsurface_tpb_lar_"+coatingName, coatingName, "lar", larTPB); err != nil {
			return err
		}
		if _, err := reg.AttachBorder("bsurface_tpb_fiber_"+name, coatingName, coreName, fiberSurf); err != nil {
			return err
		}

		topName := mod.ChannelTopPrefix + strconv.Itoa(i)
		topZ := z + cfg.Height/2 + sipmHeight/2
		if err := placeSiPM(reg, mats, cryo, topName, cfg.Radius, coatingDim, start, delta, topZ, mod.BaseRawID+2*i, sipmSurf); err != nil {
			return err
		}

		botName := mod.ChannelBottomPrefix + strconv.Itoa(i)
		botZ := z - cfg.Height/2 - sipmHeight/2
		if err := placeSiPM(reg, mats, cryo, botName, cfg.Radius, coatingDim, start, delta, botZ, mod.BaseRawID+2*i+1, sipmSurf); err != nil {
			return err
		}
	}

	logger.Info("built fiber shroud", "mode", cfg.Mode, "modules", mod.Count,
		"radius", cfg.Radius, "height", cfg.Height)
	return nil
}

// placeSiPM registers one silicon readout ring in the liquid argon,
// tags it with its channel identifier and makes its argon boundary
// photon-sensitive.
func placeSiPM(reg *geom.Registry, mats *materials.Store, cryo cryostat, name string, radius, coatingDim, start, delta, z float64, rawid int, surf *geom.OpticalSurface) error {
	solid, err := reg.NewTube(name, radius-coatingDim/2, radius+coatingDim/2, sipmHeight, start, delta)
	if err != nil {
		return err
	}
	si, err := mats.MetalSilicon()
	if err != nil {
		return err
	}
	lv, err := reg.NewLogicalVolume(name, solid, si)
	if err != nil {
		return err
	}
	pv, err := reg.Place(name, lv, cryo.fill, geom.ZVec(z))
	if err != nil {
		return err
	}
	pv.SetDetector("optical", rawid, nil)
	_, err = reg.AttachBorder("bsurface_lar_"+name, "lar", name, surf)
	return err
}
