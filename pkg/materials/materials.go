// Package materials builds the material set of the experiment and
// registers it in a geometry registry. Every material and optical
// surface is constructed once per registry and cached, so repeated
// assembler calls share the same instances.
package materials

import (
	"fmt"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/optics"
)

// LArTemperature is the liquid argon temperature in K.
const LArTemperature = 88.8

// Store hands out the materials and optical surfaces of the
// experiment, bound to a single registry.
type Store struct {
	reg       *geom.Registry
	materials map[string]*geom.Material
	surfaces  map[string]*geom.OpticalSurface
}

// NewStore creates a material store bound to reg.
func NewStore(reg *geom.Registry) *Store {
	return &Store{
		reg:       reg,
		materials: make(map[string]*geom.Material),
		surfaces:  make(map[string]*geom.OpticalSurface),
	}
}

// Registry returns the registry the store is bound to.
func (s *Store) Registry() *geom.Registry { return s.reg }

// material returns the cached material under name, building and
// registering it on first use.
func (s *Store) material(name string, build func() *geom.Material) (*geom.Material, error) {
	if m, ok := s.materials[name]; ok {
		return m, nil
	}
	m := build()
	if err := s.reg.AddMaterial(m); err != nil {
		return nil, fmt.Errorf("material %s: %w", name, err)
	}
	s.materials[name] = m
	return m, nil
}

// Vacuum returns the near-empty world filler.
func (s *Store) Vacuum() (*geom.Material, error) {
	return s.material("vacuum", func() *geom.Material {
		return &geom.Material{
			Name:        "vacuum",
			Density:     1e-25,
			State:       geom.StateGas,
			Temperature: 2.73,
			Pressure:    3e-18,
			Components:  []geom.Component{{Element: geom.Hydrogen, Atoms: 1}},
		}
	})
}

// LiquidArgon returns the cryostat fill material with its full set of
// optical properties.
func (s *Store) LiquidArgon() (*geom.Material, error) {
	return s.material("liquid_argon", func() *geom.Material {
		m := &geom.Material{
			Name:        "liquid_argon",
			Density:     1.390,
			State:       geom.StateLiquid,
			Temperature: LArTemperature,
			Pressure:    1.0e5,
			Components:  []geom.Component{{Element: geom.Argon, Atoms: 1}},
		}
		optics.AttachLArRIndex(m)
		optics.AttachLArAttenuation(m)
		optics.AttachLArScintillation(m, 1000)
		return m
	})
}

// GaseousArgon returns the cold argon vapor above the fill.
func (s *Store) GaseousArgon() (*geom.Material, error) {
	return s.material("gaseous_argon", func() *geom.Material {
		return &geom.Material{
			Name:        "gaseous_argon",
			Density:     5.77e-3,
			State:       geom.StateGas,
			Temperature: LArTemperature,
			Pressure:    1.0e5,
			Components:  []geom.Component{{Element: geom.Argon, Atoms: 1}},
		}
	})
}

// MetalSteel returns the stainless steel of the cryostat vessels.
func (s *Store) MetalSteel() (*geom.Material, error) {
	return s.material("metal_steel", func() *geom.Material {
		return &geom.Material{
			Name:    "metal_steel",
			Density: 7.9,
			Components: []geom.Component{
				{Element: geom.Silicon, Fraction: 0.01},
				{Element: geom.Chromium, Fraction: 0.20},
				{Element: geom.Manganese, Fraction: 0.02},
				{Element: geom.Iron, Fraction: 0.67},
				{Element: geom.Nickel, Fraction: 0.10},
			},
		}
	})
}

// MetalCopper returns pure copper.
func (s *Store) MetalCopper() (*geom.Material, error) {
	return s.material("metal_copper", func() *geom.Material {
		return &geom.Material{
			Name:       "metal_copper",
			Density:    8.96,
			Components: []geom.Component{{Element: geom.Copper, Atoms: 1}},
		}
	})
}

// MetalSilicon returns the SiPM bulk material.
func (s *Store) MetalSilicon() (*geom.Material, error) {
	return s.material("metal_silicon", func() *geom.Material {
		return &geom.Material{
			Name:       "metal_silicon",
			Density:    2.33,
			Components: []geom.Component{{Element: geom.Silicon, Atoms: 1}},
		}
	})
}

// IronSource returns the calibration source holder metal.
func (s *Store) IronSource() (*geom.Material, error) {
	return s.material("iron", func() *geom.Material {
		return &geom.Material{
			Name:       "iron",
			Density:    7.874,
			Components: []geom.Component{{Element: geom.Iron, Atoms: 1}},
		}
	})
}

// Lead returns the shield metal.
func (s *Store) Lead() (*geom.Material, error) {
	return s.material("lead", func() *geom.Material {
		return &geom.Material{
			Name:       "lead",
			Density:    11.35,
			Components: []geom.Component{{Element: geom.Lead, Atoms: 1}},
		}
	})
}

// Rock returns the cavern rock.
func (s *Store) Rock() (*geom.Material, error) {
	return s.material("rock", func() *geom.Material {
		return &geom.Material{
			Name:    "rock",
			Density: 2.65,
			Components: []geom.Component{
				{Element: geom.Silicon, Atoms: 1},
				{Element: geom.Oxygen, Atoms: 2},
			},
		}
	})
}

// TPBOnFibers returns the wavelength-shifting coating of the fiber
// shroud.
func (s *Store) TPBOnFibers() (*geom.Material, error) {
	return s.material("tpb_on_fibers", func() *geom.Material {
		m := &geom.Material{
			Name:    "tpb_on_fibers",
			Density: 1.08,
			State:   geom.StateSolid,
			Components: []geom.Component{
				{Element: geom.Hydrogen, Atoms: 22},
				{Element: geom.Carbon, Atoms: 28},
			},
		}
		optics.AttachTPBRIndex(m)
		optics.AttachTPBWLS(m)
		return m
	})
}

// PSFibers returns the polystyrene fiber core material.
func (s *Store) PSFibers() (*geom.Material, error) {
	return s.material("ps_fibers", func() *geom.Material {
		m := &geom.Material{
			Name:    "ps_fibers",
			Density: 1.05,
			Components: []geom.Component{
				{Element: geom.Hydrogen, Atoms: 8},
				{Element: geom.Carbon, Atoms: 8},
			},
		}
		optics.AttachFiberCoreRIndex(m)
		optics.AttachFiberCoreAbsorption(m)
		optics.AttachFiberCoreWLS(m)
		optics.AttachFiberCoreScintillation(m)
		return m
	})
}

// PMMA returns the inner fiber cladding material.
func (s *Store) PMMA() (*geom.Material, error) {
	return s.material("pmma", func() *geom.Material {
		m := &geom.Material{
			Name:    "pmma",
			Density: 1.2,
			Components: []geom.Component{
				{Element: geom.Hydrogen, Atoms: 8},
				{Element: geom.Carbon, Atoms: 5},
				{Element: geom.Oxygen, Atoms: 2},
			},
		}
		optics.AttachCladdingRIndex(m)
		return m
	})
}

// PMMAOuter returns the outer fiber cladding material.
func (s *Store) PMMAOuter() (*geom.Material, error) {
	return s.material("pmma_cl2", func() *geom.Material {
		m := &geom.Material{
			Name:    "pmma_cl2",
			Density: 1.2,
			Components: []geom.Component{
				{Element: geom.Hydrogen, Atoms: 8},
				{Element: geom.Carbon, Atoms: 5},
				{Element: geom.Oxygen, Atoms: 2},
			},
		}
		optics.AttachOuterCladdingRIndex(m)
		return m
	})
}

// PEN returns the scintillating detector enclosure material.
func (s *Store) PEN() (*geom.Material, error) {
	return s.material("PEN", func() *geom.Material {
		m := &geom.Material{
			Name:        "PEN",
			Density:     1.30,
			State:       geom.StateSolid,
			Temperature: 88.15,
			Components: []geom.Component{
				{Element: geom.Carbon, Atoms: 14},
				{Element: geom.Hydrogen, Atoms: 10},
				{Element: geom.Oxygen, Atoms: 4},
			},
		}
		optics.AttachPENRIndex(m)
		optics.AttachPENAttenuation(m)
		optics.AttachPENWLS(m)
		optics.AttachPENScintillation(m)
		return m
	})
}

// Germanium density endpoints in g/cm3: natural at enrichment 0 up to
// fully enriched Ge-76.
const (
	germaniumNaturalDensity  = 5.327
	germaniumEnrichedDensity = 5.545
)

// EnrichedGermanium returns the detector crystal material for the
// given Ge-76 enrichment fraction. The density scales linearly
// between the natural and fully enriched values, and each distinct
// enrichment yields its own material.
func (s *Store) EnrichedGermanium(enrichment float64) (*geom.Material, error) {
	if enrichment < 0 || enrichment > 1 {
		return nil, fmt.Errorf("enrichment fraction %g outside [0, 1]", enrichment)
	}
	name := fmt.Sprintf("germanium_enr_%.3f", enrichment)
	return s.material(name, func() *geom.Material {
		density := germaniumNaturalDensity +
			(germaniumEnrichedDensity-germaniumNaturalDensity)*enrichment
		return &geom.Material{
			Name:       name,
			Density:    density,
			State:      geom.StateSolid,
			Components: []geom.Component{{Element: geom.Germanium, Atoms: 1}},
		}
	})
}
