// Package metadata resolves per-detector production and geometry
// records. Records come from one of two interchangeable providers: a
// local directory with the authoritative detector files, or a built-in
// set of sample records that stand in for them when the real store is
// not available.
package metadata

// DefaultEnrichment is the germanium enrichment fraction assumed for
// records without a measured value.
const DefaultEnrichment = 0.9

// Quantity is a measured value with an optional uncertainty. A nil
// value marks the quantity as not measured.
type Quantity struct {
	Val *float64 `yaml:"val" json:"val"`
	Unc float64  `yaml:"unc,omitempty" json:"unc,omitempty"`
}

// Production describes the manufacturing data of a detector.
type Production struct {
	Enrichment Quantity `yaml:"enrichment" json:"enrichment"`
	MassInG    float64  `yaml:"mass_in_g,omitempty" json:"mass_in_g,omitempty"`
	Order      int      `yaml:"order,omitempty" json:"order,omitempty"`
	Slice      string   `yaml:"slice,omitempty" json:"slice,omitempty"`
}

// RadiusRange is an outer/inner radius pair in mm.
type RadiusRange struct {
	Outer float64 `yaml:"outer" json:"outer"`
	Inner float64 `yaml:"inner" json:"inner"`
}

// Groove is the circular groove cut into the detector bottom face.
type Groove struct {
	Radius RadiusRange `yaml:"radius_in_mm" json:"radius_in_mm"`
	Depth  float64     `yaml:"depth_in_mm" json:"depth_in_mm"`
}

// Borehole is the central contact bore. For inverted-coaxial detectors
// it is drilled from the top face, for semi-coaxial ones from the
// bottom.
type Borehole struct {
	Radius float64 `yaml:"radius_in_mm" json:"radius_in_mm"`
	Depth  float64 `yaml:"depth_in_mm" json:"depth_in_mm"`
}

// Taper is a conical cut on one of the detector edges.
type Taper struct {
	Angle  float64 `yaml:"angle_in_deg" json:"angle_in_deg"`
	Height float64 `yaml:"height_in_mm" json:"height_in_mm"`
}

// Tapers groups the edge tapers of a detector.
type Tapers struct {
	Top      Taper `yaml:"top" json:"top"`
	Bottom   Taper `yaml:"bottom" json:"bottom"`
	Borehole Taper `yaml:"borehole,omitempty" json:"borehole,omitempty"`
}

// Contact is the p+ contact on the detector bottom face.
type Contact struct {
	Radius float64 `yaml:"radius_in_mm" json:"radius_in_mm"`
	Depth  float64 `yaml:"depth_in_mm" json:"depth_in_mm"`
}

// Geometry describes the machined shape of a detector crystal. All
// lengths are in mm, angles in degrees.
type Geometry struct {
	Height    float64  `yaml:"height_in_mm" json:"height_in_mm"`
	Radius    float64  `yaml:"radius_in_mm" json:"radius_in_mm"`
	Groove    Groove   `yaml:"groove" json:"groove"`
	Borehole  Borehole `yaml:"borehole,omitempty" json:"borehole,omitempty"`
	PPContact Contact  `yaml:"pp_contact" json:"pp_contact"`
	Taper     Tapers   `yaml:"taper" json:"taper"`
}

// Record is a complete detector metadata record.
type Record struct {
	Name       string     `yaml:"name" json:"name"`
	Kind       string     `yaml:"type" json:"type"`
	Production Production `yaml:"production" json:"production"`
	Geometry   Geometry   `yaml:"geometry" json:"geometry"`
}

// Normalize returns a copy of rec with defaults filled in. A record
// without a measured enrichment fraction is assumed to be at
// DefaultEnrichment. The input record is never modified.
func Normalize(rec Record) Record {
	if rec.Production.Enrichment.Val == nil {
		v := DefaultEnrichment
		rec.Production.Enrichment.Val = &v
	}
	return rec
}

// Provider resolves detector records by name.
type Provider interface {
	Lookup(name string) (Record, error)
}
