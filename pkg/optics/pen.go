package optics

import "github.com/scarf-exp/geomscarf/pkg/geom"

// PEN is both a wavelength shifter and a scintillator, emitting
// around 450 nm.

var penEnergies = []float64{1.8, 2.5, 2.75, 3.0, 3.5, 5.0}

// AttachPENRIndex attaches the PEN refractive index.
func AttachPENRIndex(m *geom.Material) {
	m.SetProperty(PropRIndex, Table{
		Energies: penEnergies,
		Values:   []float64{1.73, 1.75, 1.76, 1.78, 1.85, 1.95},
	})
}

// AttachPENAttenuation attaches the bulk attenuation of PEN in mm.
func AttachPENAttenuation(m *geom.Material) {
	m.SetProperty(PropAbsLength, Table{
		Energies: penEnergies,
		Values:   []float64{5.0e1, 5.0e1, 2.1e1, 5.0, 1.0e-1, 1.0e-2},
	})
}

// AttachPENWLS attaches the ultraviolet-to-blue shifting curves of
// PEN.
func AttachPENWLS(m *geom.Material) {
	m.SetProperty(PropWLSAbsLength, Table{
		Energies: []float64{1.8, 3.0, 3.6, 5.0, 7.0, 9.69, 10.5},
		Values:   []float64{1.0e6, 1.0e6, 1.0e2, 5.0e-3, 5.0e-4, 5.0e-4, 5.0e-4},
	})
	// Emission spectrum peaked at 450 nm.
	m.SetProperty(PropWLSComponent, Table{
		Energies: []float64{2.36, 2.55, 2.76, 2.95, 3.10},
		Values:   []float64{0.10, 0.60, 1.0, 0.30, 0.02},
	})
	m.SetProperty(PropWLSTime, geom.Constant(5.5))
}

// AttachPENScintillation attaches the PEN scintillation model.
func AttachPENScintillation(m *geom.Material) {
	m.SetProperty(PropScintComp1, Table{
		Energies: []float64{2.36, 2.76, 3.10},
		Values:   []float64{0.1, 1.0, 0.05},
	})
	m.SetProperty(PropScintYield, geom.Constant(5000))
	m.SetProperty(PropScintTime1, geom.Constant(25))
	m.SetProperty(PropResolution, geom.Constant(1.0))
}
