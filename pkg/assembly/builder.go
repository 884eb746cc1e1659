// Package assembly turns a geometry configuration into a fully
// populated registry: cryostat vessels, argon volumes, detector
// strings, fiber shroud, calibration source and cavern.
//
// Construction is staged. The world volume and the cryostat are
// always built; the remaining subsystems follow only when their
// configuration block is present. Subsystems placed inside the liquid
// argon position themselves relative to the centre of the fill
// column, so moving the cryostat never silently moves the detectors.
package assembly

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/hpge"
	"github.com/scarf-exp/geomscarf/pkg/kernel"
	"github.com/scarf-exp/geomscarf/pkg/kernel/sdfx"
	"github.com/scarf-exp/geomscarf/pkg/materials"
	"github.com/scarf-exp/geomscarf/pkg/metadata"
)

// worldSide is the full edge length of the cubic world volume, 20 m.
const worldSide = 20000.0

// Builder constructs geometries. The zero value is usable: it binds
// solids through the signed-distance kernel and resolves detector
// records from the local catalogue.
type Builder struct {
	// Kernel evaluates solids. Defaults to the signed-distance
	// kernel.
	Kernel kernel.Kernel

	// Metadata resolves detector records. When nil, the local
	// catalogue is opened; if that fails, construction aborts unless
	// PublicData explicitly authorizes the embedded test records.
	Metadata metadata.Provider

	// PublicData substitutes the embedded test records for the local
	// catalogue. Geometries built this way carry placeholder detector
	// dimensions and must not be mistaken for the real setup, so the
	// substitution is loud and never automatic.
	PublicData bool

	// ProfileSVGPath, when set, renders the cryostat cross-section to
	// this file during construction.
	ProfileSVGPath string

	// Logger receives construction progress. Defaults to the standard
	// logger.
	Logger *log.Logger
}

// Construct builds the geometry described by cfg and returns the
// populated registry. A nil cfg builds the bare cryostat setup. On
// error no registry is returned; there are no partially constructed
// results.
func (b *Builder) Construct(cfg *Config) (*geom.Registry, error) {
	logger := b.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg == nil {
		cfg = &Config{}
	}
	cfg = cfg.withDefaults()
	dims, err := DefaultDimensions()
	if err != nil {
		return nil, err
	}
	if cfg.Cryostat != nil {
		dims = mergeDimensions(dims, *cfg.Cryostat)
	}
	cfg.Cryostat = &dims
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k := b.Kernel
	if k == nil {
		k = sdfx.New()
	}
	reg := geom.New(k)
	mats := materials.NewStore(reg)

	world, err := buildWorld(reg, mats)
	if err != nil {
		return nil, err
	}

	cryo, err := b.buildCryostat(reg, mats, world, dims, logger)
	if err != nil {
		return nil, err
	}

	if len(cfg.HPGes) > 0 {
		meta, err := b.resolveMetadata(logger)
		if err != nil {
			return nil, err
		}
		factory := hpge.NewMaker(mats)
		if err := buildStrings(reg, mats, factory, meta, cryo, cfg.HPGes, logger); err != nil {
			return nil, err
		}
	}
	if cfg.FiberShroud != nil {
		if err := buildFiberShroud(reg, mats, cryo, cfg.FiberShroud, logger); err != nil {
			return nil, err
		}
	}
	if cfg.Source != nil {
		if err := buildSource(reg, mats, world, cfg.Source, logger); err != nil {
			return nil, err
		}
	}
	if cfg.Cavern != nil {
		if err := buildCavern(reg, mats, world, cfg.Cavern, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("geometry constructed",
		"volumes", len(reg.LogicalVolumes()),
		"placements", len(reg.PhysicalVolumes()),
		"surfaces", len(reg.Borders())+len(reg.Skins()))
	return reg, nil
}

// resolveMetadata picks the detector record source. The local
// catalogue is probed only when no provider is injected; falling back
// to the embedded test records requires explicit consent.
func (b *Builder) resolveMetadata(logger *log.Logger) (metadata.Provider, error) {
	if b.Metadata != nil {
		return b.Metadata, nil
	}
	if !b.PublicData {
		local, err := metadata.OpenLocal("")
		if err == nil {
			return local, nil
		}
		logger.Debug("local metadata catalogue unavailable", "err", err)
		return nil, errors.New("cannot construct geometry from public testdata only, if not explicitly instructed")
	}
	logger.Warn("CONSTRUCTING GEOMETRY FROM PUBLIC DATA ONLY")
	return metadata.Public{}, nil
}

// buildWorld registers the vacuum world cube and marks it as the
// placement root.
func buildWorld(reg *geom.Registry, mats *materials.Store) (*geom.LogicalVolume, error) {
	vac, err := mats.Vacuum()
	if err != nil {
		return nil, err
	}
	s, err := reg.NewBox("world", worldSide, worldSide, worldSide)
	if err != nil {
		return nil, err
	}
	world, err := reg.NewLogicalVolume("world", s, vac)
	if err != nil {
		return nil, err
	}
	if err := reg.SetWorld(world); err != nil {
		return nil, err
	}
	return world, nil
}
