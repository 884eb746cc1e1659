package geom

// RGBA is a visualization color tag. Components are in [0, 1]; the
// zero value means "no color assigned".
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// DetectorInfo tags a placed volume as an active detector for the
// transport engine. Kind is the sensitive-detector class (germanium,
// optical, scintillator), UID the readout channel identifier. Meta
// carries an arbitrary payload exported alongside the tag, typically
// the metadata record the volume was built from.
type DetectorInfo struct {
	Kind string `json:"kind"`
	UID  int    `json:"uid"`
	Meta any    `json:"meta,omitempty"`
}

// LogicalVolume is a reusable template pairing a solid with a
// material. Placing it creates physical volume instances; the template
// itself carries no position.
type LogicalVolume struct {
	Name     string
	Solid    *Solid
	Material *Material
	Color    RGBA
}

// PhysicalVolume is one placed instance of a logical volume inside a
// mother volume. Translation is relative to the mother's frame;
// Rotation holds Euler angles in radians applied about x, y, z in
// order. The world placement has a nil Mother.
type PhysicalVolume struct {
	Name        string
	Volume      *LogicalVolume
	Mother      *LogicalVolume
	Translation Vec3
	Rotation    Vec3
	Detector    *DetectorInfo
}

// SetDetector tags the placement as an active detector.
func (pv *PhysicalVolume) SetDetector(kind string, uid int, meta any) {
	pv.Detector = &DetectorInfo{Kind: kind, UID: uid, Meta: meta}
}
