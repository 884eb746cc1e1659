package optics

import "github.com/scarf-exp/geomscarf/pkg/geom"

// Liquid argon scintillates at 128 nm (9.69 eV). The tables below
// cover the band from the near infrared up to just above the
// scintillation peak.

var larEnergies = []float64{1.8, 2.5, 3.5, 5.0, 7.0, 8.5, 9.2, 9.69, 10.5}

// AttachLArRIndex attaches the liquid argon refractive index,
// following the Bideau-Sellmeier dispersion up to the VUV band.
func AttachLArRIndex(m *geom.Material) {
	m.SetProperty(PropRIndex, Table{
		Energies: larEnergies,
		Values:   []float64{1.22, 1.23, 1.23, 1.25, 1.29, 1.34, 1.38, 1.45, 1.60},
	})
}

// AttachLArAttenuation attaches the photon attenuation curves of
// liquid argon. Lengths are in mm; the absorption length at the
// scintillation peak follows the in-situ measured value.
func AttachLArAttenuation(m *geom.Material) {
	m.SetProperty(PropRayleigh, Table{
		Energies: larEnergies,
		Values:   []float64{5.0e5, 3.8e5, 2.2e5, 9.0e4, 2.4e4, 7.3e3, 3.0e3, 9.0e2, 3.5e2},
	})
	m.SetProperty(PropAbsLength, Table{
		Energies: larEnergies,
		Values:   []float64{1.0e6, 1.0e6, 1.0e6, 1.0e6, 8.0e5, 2.0e4, 5.0e3, 3.0e2, 1.0e2},
	})
}

// AttachLArScintillation attaches the argon scintillation model with
// the given flat-top light yield in photons/MeV. Time constants are
// in ns.
func AttachLArScintillation(m *geom.Material, flatTopYield float64) {
	m.SetProperty(PropScintComp1, Table{
		Energies: []float64{9.2, 9.45, 9.69, 9.93, 10.2},
		Values:   []float64{0.02, 0.30, 1.0, 0.30, 0.02},
	})
	m.SetProperty(PropScintYield, geom.Constant(flatTopYield))
	m.SetProperty(PropScintTime1, geom.Constant(5.95))
	m.SetProperty(PropScintTime2, geom.Constant(1590))
	m.SetProperty(PropResolution, geom.Constant(1.0))
}
