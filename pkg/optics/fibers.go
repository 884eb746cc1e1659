package optics

import "github.com/scarf-exp/geomscarf/pkg/geom"

// Wavelength-shifting fiber optics: a polystyrene core absorbing blue
// light and re-emitting in the green, wrapped in PMMA claddings.

var fiberVisibleEnergies = []float64{1.8, 2.2, 2.6, 3.0, 3.5}

// AttachFiberCoreRIndex attaches the polystyrene core refractive
// index.
func AttachFiberCoreRIndex(m *geom.Material) {
	m.SetProperty(PropRIndex, Table{
		Energies: fiberVisibleEnergies,
		Values:   []float64{1.60, 1.60, 1.60, 1.60, 1.60},
	})
}

// AttachFiberCoreAbsorption attaches the bulk attenuation of the
// fiber core, a few meters in the transport band.
func AttachFiberCoreAbsorption(m *geom.Material) {
	m.SetProperty(PropAbsLength, Table{
		Energies: fiberVisibleEnergies,
		Values:   []float64{3.5e3, 3.5e3, 3.5e3, 1.0e3, 1.0e2},
	})
}

// AttachFiberCoreWLS attaches the blue-to-green shifting curves of
// the fiber core.
func AttachFiberCoreWLS(m *geom.Material) {
	m.SetProperty(PropWLSAbsLength, Table{
		Energies: []float64{1.8, 2.4, 2.6, 2.85, 2.95, 3.1, 3.5},
		Values:   []float64{1.0e6, 1.0e6, 3.0e2, 0.5, 0.3, 0.3, 0.3},
	})
	// Emission spectrum peaked at 490 nm.
	m.SetProperty(PropWLSComponent, Table{
		Energies: []float64{2.25, 2.40, 2.53, 2.65, 2.75},
		Values:   []float64{0.05, 0.60, 1.0, 0.40, 0.02},
	})
	m.SetProperty(PropWLSTime, geom.Constant(7.2))
}

// AttachFiberCoreScintillation attaches the intrinsic polystyrene
// scintillation of the core.
func AttachFiberCoreScintillation(m *geom.Material) {
	m.SetProperty(PropScintComp1, Table{
		Energies: []float64{2.25, 2.53, 2.75},
		Values:   []float64{0.1, 1.0, 0.1},
	})
	m.SetProperty(PropScintYield, geom.Constant(8000))
	m.SetProperty(PropScintTime1, geom.Constant(2.7))
	m.SetProperty(PropResolution, geom.Constant(1.0))
}

// AttachCladdingRIndex attaches the inner PMMA cladding refractive
// index.
func AttachCladdingRIndex(m *geom.Material) {
	m.SetProperty(PropRIndex, Table{
		Energies: fiberVisibleEnergies,
		Values:   []float64{1.49, 1.49, 1.49, 1.49, 1.49},
	})
}

// AttachOuterCladdingRIndex attaches the fluorinated outer cladding
// refractive index.
func AttachOuterCladdingRIndex(m *geom.Material) {
	m.SetProperty(PropRIndex, Table{
		Energies: fiberVisibleEnergies,
		Values:   []float64{1.42, 1.42, 1.42, 1.42, 1.42},
	})
}
