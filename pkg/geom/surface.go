package geom

// SurfaceModel selects the optical boundary model.
type SurfaceModel string

const (
	ModelUnified SurfaceModel = "unified"
	ModelGlisur  SurfaceModel = "glisur"
)

// SurfaceFinish describes the surface micro-structure.
type SurfaceFinish string

const (
	FinishGround   SurfaceFinish = "ground"
	FinishPolished SurfaceFinish = "polished"
)

// SurfaceType classifies the media on either side of the boundary.
type SurfaceType string

const (
	DielectricMetal      SurfaceType = "dielectric_metal"
	DielectricDielectric SurfaceType = "dielectric_dielectric"
)

// OpticalSurface describes the optical behavior of a volume boundary.
// Value is the model parameter (sigma alpha for ground surfaces,
// polish for glisur). Property tables such as REFLECTIVITY and
// EFFICIENCY are attached by the optics collaborator.
type OpticalSurface struct {
	Name   string
	Model  SurfaceModel
	Finish SurfaceFinish
	Type   SurfaceType
	Value  float64

	properties
}

// BorderSurface applies an optical surface to the directed boundary
// from one placed volume into another. The direction matters: a
// photon crossing from From into To sees this surface.
type BorderSurface struct {
	Name    string
	From    *PhysicalVolume
	To      *PhysicalVolume
	Surface *OpticalSurface
}

// SkinSurface applies an optical surface to every boundary of a
// logical volume, regardless of placement.
type SkinSurface struct {
	Name    string
	Volume  *LogicalVolume
	Surface *OpticalSurface
}
