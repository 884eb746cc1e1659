package assembly

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/materials"
)

// Cavern shape constants. The access shaft is carved out of the
// ground slab below the rock dome.
const (
	cavernGroundDepth = 10000.0 // mm
	cavernShaftRadius = 1000.0  // mm
	cavernShaftDepth  = 4000.0  // mm
	cavernShaftShift  = 3000.0  // mm, shaft centre above slab centre
	cavernGroundShift = 5000.0  // mm, slab centre below dome base
	cavernWorldZ      = 1500.0  // mm, dome base above world origin
)

// buildCavern constructs the simplified rock overburden: a hemisphere
// shell for the hill joined with a ground slab that has the access
// shaft removed.
func buildCavern(reg *geom.Registry, mats *materials.Store, world *geom.LogicalVolume, cfg *CavernConfig, logger *log.Logger) error {
	rock, err := mats.Rock()
	if err != nil {
		return err
	}

	upper, err := reg.NewSphere("upper_cavern", cfg.InnerRadius, cfg.OuterRadius, 0, math.Pi/2)
	if err != nil {
		return err
	}
	slab, err := reg.NewTube("lowercavern1", 0, cfg.OuterRadius, cavernGroundDepth, 0, 2*math.Pi)
	if err != nil {
		return err
	}
	shaft, err := reg.NewTube("lowercavern2", 0, cavernShaftRadius, cavernShaftDepth, 0, 2*math.Pi)
	if err != nil {
		return err
	}
	lower, err := reg.NewSubtraction("lower_cavern", slab, shaft, geom.ZVec(cavernShaftShift))
	if err != nil {
		return err
	}
	full, err := reg.NewUnion("cavern", upper, lower, geom.ZVec(-cavernGroundShift))
	if err != nil {
		return err
	}

	lv, err := reg.NewLogicalVolume("cavern", full, rock)
	if err != nil {
		return err
	}
	lv.Color = geom.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 0.1}

	if _, err := reg.Place("cavern", lv, world, geom.ZVec(cavernWorldZ)); err != nil {
		return err
	}
	logger.Info("constructed cavern", "inner_radius", cfg.InnerRadius, "outer_radius", cfg.OuterRadius)
	return nil
}
