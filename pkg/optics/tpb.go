package optics

import "github.com/scarf-exp/geomscarf/pkg/geom"

// TPB shifts the argon VUV emission into the blue band around 420 nm.

// AttachTPBRIndex attaches the TPB refractive index.
func AttachTPBRIndex(m *geom.Material) {
	m.SetProperty(PropRIndex, Table{
		Energies: []float64{1.8, 3.5, 6.0, 10.5},
		Values:   []float64{1.67, 1.67, 1.67, 1.67},
	})
}

// AttachTPBWLS attaches the wavelength-shifting curves of TPB:
// strongly absorbing in the VUV, transparent to its own blue
// emission. Lengths in mm, times in ns.
func AttachTPBWLS(m *geom.Material) {
	m.SetProperty(PropWLSAbsLength, Table{
		Energies: []float64{1.8, 2.95, 3.5, 5.0, 7.0, 9.69, 10.5},
		Values:   []float64{1.0e6, 1.0e6, 5.0e2, 4.0e-3, 4.0e-4, 4.0e-4, 4.0e-4},
	})
	// Emission spectrum peaked at 420 nm.
	m.SetProperty(PropWLSComponent, Table{
		Energies: []float64{2.48, 2.70, 2.85, 2.95, 3.10, 3.26},
		Values:   []float64{0.05, 0.45, 0.85, 1.0, 0.55, 0.05},
	})
	m.SetProperty(PropWLSTime, geom.Constant(0.6))
}
