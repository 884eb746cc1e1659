package profile

import "fmt"

// Wall is one vessel wall section.
type Wall struct {
	Thickness float64 `yaml:"thickness_in_mm" json:"thickness_in_mm"`
	Height    float64 `yaml:"height_in_mm" json:"height_in_mm"`
}

// InnerVesselDims describes the double-walled inner vessel: a wide
// lower section and a narrower upper neck.
type InnerVesselDims struct {
	Radius float64 `yaml:"radius_in_mm" json:"radius_in_mm"`
	Upper  Wall    `yaml:"upper" json:"upper"`
	Lower  Wall    `yaml:"lower" json:"lower"`
}

// OuterVesselDims describes the open-top outer vessel cup.
type OuterVesselDims struct {
	Radius    float64 `yaml:"radius_in_mm" json:"radius_in_mm"`
	Height    float64 `yaml:"height_in_mm" json:"height_in_mm"`
	Thickness float64 `yaml:"thickness_in_mm" json:"thickness_in_mm"`
}

// LidDims describes the flat top lid.
type LidDims struct {
	Radius float64 `yaml:"radius_in_mm" json:"radius_in_mm"`
	Height float64 `yaml:"height_in_mm" json:"height_in_mm"`
}

// VaporGapDims describes the gaseous argon layer above the liquid.
type VaporGapDims struct {
	Height float64 `yaml:"height_in_mm" json:"height_in_mm"`
}

// ShieldDims describes the lead shield cup around the outer vessel.
type ShieldDims struct {
	AirGap    float64 `yaml:"air_gap_in_mm" json:"air_gap_in_mm"`
	Thickness float64 `yaml:"thickness_in_mm" json:"thickness_in_mm"`
}

// Dimensions holds the full cryostat dimension block. All values are
// in millimetres; the yaml keys carry the unit suffix used by the
// experiment's configuration files.
type Dimensions struct {
	Inner    InnerVesselDims `yaml:"inner" json:"inner"`
	Outer    OuterVesselDims `yaml:"outer" json:"outer"`
	Top      LidDims         `yaml:"top" json:"top"`
	GasArgon VaporGapDims    `yaml:"gas_argon" json:"gas_argon"`
	Lead     ShieldDims      `yaml:"lead" json:"lead"`
}

// Validate checks that every dimension is present and positive. A
// zero value means the configuration key was missing; there are no
// silent per-key defaults.
func (d Dimensions) Validate() error {
	checks := []struct {
		path  string
		value float64
	}{
		{"inner.radius_in_mm", d.Inner.Radius},
		{"inner.upper.thickness_in_mm", d.Inner.Upper.Thickness},
		{"inner.upper.height_in_mm", d.Inner.Upper.Height},
		{"inner.lower.thickness_in_mm", d.Inner.Lower.Thickness},
		{"inner.lower.height_in_mm", d.Inner.Lower.Height},
		{"outer.radius_in_mm", d.Outer.Radius},
		{"outer.height_in_mm", d.Outer.Height},
		{"outer.thickness_in_mm", d.Outer.Thickness},
		{"top.radius_in_mm", d.Top.Radius},
		{"top.height_in_mm", d.Top.Height},
		{"gas_argon.height_in_mm", d.GasArgon.Height},
		{"lead.air_gap_in_mm", d.Lead.AirGap},
		{"lead.thickness_in_mm", d.Lead.Thickness},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("dimension %s is missing or not positive", c.path)
		}
	}
	return nil
}

// FillHeight returns the height of the liquid fill column, lower plus
// upper section.
func (d Dimensions) FillHeight() float64 {
	return d.Inner.Lower.Height + d.Inner.Upper.Height
}

// InnerVessel returns the inner vessel cross-section. Local z = 0 is
// the bottom outer face; the interior floor sits at the lower wall
// thickness.
func (d Dimensions) InnerVessel() Profile {
	r := d.Inner.Radius
	tu, hu := d.Inner.Upper.Thickness, d.Inner.Upper.Height
	tl, hl := d.Inner.Lower.Thickness, d.Inner.Lower.Height
	return Profile{
		R: []float64{0, r + tl, r + tl, r + (tl+tu)/2, r + (tl+tu)/2, 0},
		Z: []float64{0, 0, hl + tl, hl + tl, hl + hu + tl, hl + hu + tl},
	}
}

// Fill returns the liquid fill column cross-section, stepped out at
// the neck and pulled in from the vessel top by the clearance.
func (d Dimensions) Fill() Profile {
	r := d.Inner.Radius
	tu, hu := d.Inner.Upper.Thickness, d.Inner.Upper.Height
	tl, hl := d.Inner.Lower.Thickness, d.Inner.Lower.Height
	rn := r + tl/2 - tu/2
	return Profile{
		R: []float64{0, r, r, rn, rn, 0},
		Z: []float64{0, 0, hl, hl, hl + hu - Clearance, hl + hu - Clearance},
	}
}

// VaporGap returns the gaseous layer cross-section carved out of the
// top of the fill, with clearance on radius and both heights.
func (d Dimensions) VaporGap() Profile {
	r := d.Inner.Radius
	tu := d.Inner.Upper.Thickness
	tl := d.Inner.Lower.Thickness
	hg := d.GasArgon.Height
	rg := r + tl/2 - tu/2 - Clearance
	return Profile{
		R: []float64{0, rg, rg, 0},
		Z: []float64{0, 0, hg - 2*Clearance, hg - 2*Clearance},
	}
}

// OuterVessel returns the open-top outer cup cross-section.
func (d Dimensions) OuterVessel() Profile {
	ro, ho, to := d.Outer.Radius, d.Outer.Height, d.Outer.Thickness
	return Profile{
		R: []float64{0, ro + to, ro + to, ro, ro, 0},
		Z: []float64{0, 0, ho, ho, to, to},
	}
}

// Lid returns the flat lid cross-section.
func (d Dimensions) Lid() Profile {
	rt, ht := d.Top.Radius, d.Top.Height
	return Profile{
		R: []float64{0, rt, rt, 0},
		Z: []float64{0, 0, ht, ht},
	}
}

// Shield returns the lead shield cup cross-section. The cavity leaves
// the configured air gap around the outer vessel; the floor extends
// below local z = 0.
func (d Dimensions) Shield() Profile {
	ro, ho := d.Outer.Radius, d.Outer.Height
	g, ts := d.Lead.AirGap, d.Lead.Thickness
	return Profile{
		R: []float64{0, ro + g, ro + g, ro + g + ts, ro + g + ts, 0},
		Z: []float64{0, 0, ho + g, ho + g, -ts, -ts},
	}
}
