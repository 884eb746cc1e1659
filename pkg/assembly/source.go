package assembly

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/materials"
)

// The calibration source capsule is a small iron cylinder lowered
// next to the cryostat.
const (
	sourceHeight = 10.0 // mm
	sourceRadius = 1.0  // mm
)

// buildSource places the calibration source capsule at the configured
// radial and vertical position in the world frame.
func buildSource(reg *geom.Registry, mats *materials.Store, world *geom.LogicalVolume, cfg *SourceConfig, logger *log.Logger) error {
	iron, err := mats.IronSource()
	if err != nil {
		return err
	}
	s, err := reg.NewTube("source", 0, sourceRadius, sourceHeight, 0, 2*math.Pi)
	if err != nil {
		return err
	}
	lv, err := reg.NewLogicalVolume("source", s, iron)
	if err != nil {
		return err
	}
	lv.Color = geom.RGBA{R: 1, A: 1}

	if _, err := reg.Place("source", lv, world, geom.Vec3{Y: cfg.Radius, Z: cfg.Offset}); err != nil {
		return err
	}
	logger.Info("placed calibration source", "radial_pos", cfg.Radius, "z", cfg.Offset)
	return nil
}
