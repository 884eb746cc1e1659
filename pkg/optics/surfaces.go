package optics

import "github.com/scarf-exp/geomscarf/pkg/geom"

// AttachCopperReflectivity attaches the copper reflectivity curve,
// also used for the steel vessel walls.
func AttachCopperReflectivity(s *geom.OpticalSurface) {
	s.SetProperty(PropReflectivity, Table{
		Energies: []float64{1.8, 2.5, 3.5, 5.0, 7.0, 9.69, 10.5},
		Values:   []float64{0.90, 0.65, 0.35, 0.30, 0.22, 0.15, 0.15},
	})
}

// AttachGermaniumReflectivity attaches the germanium reflectivity
// curve.
func AttachGermaniumReflectivity(s *geom.OpticalSurface) {
	s.SetProperty(PropReflectivity, Table{
		Energies: []float64{1.8, 2.5, 3.5, 5.0, 7.0, 9.69, 10.5},
		Values:   []float64{0.38, 0.40, 0.48, 0.55, 0.60, 0.60, 0.60},
	})
}

// AttachSiPMSensitivity attaches a box photon detection efficiency
// between 1000 nm and 400 nm, with full absorption.
func AttachSiPMSensitivity(s *geom.OpticalSurface) {
	energies := []float64{0.5, 1.24, 3.10, 6.0}
	s.SetProperty(PropEfficiency, Table{
		Energies: energies,
		Values:   []float64{0.0, 1.0, 1.0, 0.0},
	})
	s.SetProperty(PropReflectivity, Table{
		Energies: energies,
		Values:   []float64{0.0, 0.0, 0.0, 0.0},
	})
}

// fiberCoreWavelengths is the sampling grid of the fiber core
// sensitivity, in nm.
var fiberCoreWavelengths = []float64{670, 595, 525, 505, 435, 400, 350, 310, 280, 100}

// AttachFiberCoreSensitivity makes the fiber core fully absorbing and
// fully counting over its whole band, so that it can act as the
// photon-recording element in the simplified shroud.
func AttachFiberCoreSensitivity(s *geom.OpticalSurface) {
	energies := WavelengthsToEV(fiberCoreWavelengths)
	eff := make([]float64, len(energies))
	refl := make([]float64, len(energies))
	for i := range eff {
		eff[i] = 1.0
	}
	s.SetProperty(PropEfficiency, Table{Energies: energies, Values: eff})
	s.SetProperty(PropReflectivity, Table{Energies: energies, Values: refl})
}

// AttachRoughLobes attaches the unified-model lobe constants of a
// ground wavelength-shifter surface.
func AttachRoughLobes(s *geom.OpticalSurface) {
	s.SetProperty(PropSigmaAlpha, geom.Constant(0.2))
	s.SetProperty(PropDiffuseLobe, geom.Constant(0.7))
	s.SetProperty(PropSpecularLobe, geom.Constant(0.2))
	s.SetProperty(PropSpecularSpike, geom.Constant(0.1))
	s.SetProperty(PropBackscatter, geom.Constant(0.0))
}
