// Package optics carries the photon property tables attached to
// materials and optical surfaces. Tables are stored as
// energy-indexed curves with ascending photon energies in eV; the
// values are handed to the transport engine untouched, no
// interpolation happens here.
package optics

import "github.com/scarf-exp/geomscarf/pkg/geom"

// Table is an energy-indexed property curve.
type Table = geom.PropertyTable

// hcEVnm is the photon energy-wavelength conversion constant in eV*nm.
const hcEVnm = 1239.841984

// NmToEV converts a photon wavelength in nm to an energy in eV.
func NmToEV(nm float64) float64 { return hcEVnm / nm }

// WavelengthsToEV converts a descending wavelength list in nm to the
// matching ascending energy list in eV.
func WavelengthsToEV(nm []float64) []float64 {
	e := make([]float64, len(nm))
	for i, w := range nm {
		e[i] = NmToEV(w)
	}
	return e
}

// Property names understood by the downstream transport engine.
const (
	PropRIndex        = "RINDEX"
	PropAbsLength     = "ABSLENGTH"
	PropRayleigh      = "RAYLEIGH"
	PropReflectivity  = "REFLECTIVITY"
	PropEfficiency    = "EFFICIENCY"
	PropWLSAbsLength  = "WLSABSLENGTH"
	PropWLSComponent  = "WLSCOMPONENT"
	PropWLSTime       = "WLSTIMECONSTANT"
	PropScintYield    = "SCINTILLATIONYIELD"
	PropScintComp1    = "SCINTILLATIONCOMPONENT1"
	PropScintComp2    = "SCINTILLATIONCOMPONENT2"
	PropScintTime1    = "SCINTILLATIONTIMECONSTANT1"
	PropScintTime2    = "SCINTILLATIONTIMECONSTANT2"
	PropScintRatio    = "SCINTILLATIONYIELD1"
	PropResolution    = "RESOLUTIONSCALE"
	PropSigmaAlpha    = "SIGMA_ALPHA"
	PropDiffuseLobe   = "DIFFUSELOBECONSTANT"
	PropSpecularLobe  = "SPECULARLOBECONSTANT"
	PropSpecularSpike = "SPECULARSPIKECONSTANT"
	PropBackscatter   = "BACKSCATTERCONSTANT"
)
