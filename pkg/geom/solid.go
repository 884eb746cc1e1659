package geom

import "github.com/scarf-exp/geomscarf/pkg/kernel"

// SolidSpec records how a solid was built. The registry keeps the spec
// alongside the kernel handle so that serialization backends can emit
// the construction parameters instead of tessellated geometry.
type SolidSpec interface {
	solidSpec() // marker method restricting implementations to this package
}

// BoxSpec is an axis-aligned box centered on the origin.
type BoxSpec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (BoxSpec) solidSpec() {}

// TubeSpec is a cylindrical shell around the z axis, centered on the
// origin. Angles are in radians; a full tube has DeltaPhi of two pi.
type TubeSpec struct {
	Rmin     float64 `json:"rmin"`
	Rmax     float64 `json:"rmax"`
	Height   float64 `json:"height"`
	StartPhi float64 `json:"start_phi"`
	DeltaPhi float64 `json:"delta_phi"`
}

func (TubeSpec) solidSpec() {}

// SphereSpec is a spherical shell centered on the origin. The polar
// range is measured from the +z axis in radians.
type SphereSpec struct {
	Rmin       float64 `json:"rmin"`
	Rmax       float64 `json:"rmax"`
	StartTheta float64 `json:"start_theta"`
	DeltaTheta float64 `json:"delta_theta"`
}

func (SphereSpec) solidSpec() {}

// PolyconeSpec is a closed (r, z) profile revolved around the z axis.
type PolyconeSpec struct {
	R []float64 `json:"r"`
	Z []float64 `json:"z"`
}

func (PolyconeSpec) solidSpec() {}

// BoolOp enumerates boolean solid operations.
type BoolOp int

const (
	BoolUnion BoolOp = iota
	BoolSubtraction
)

func (op BoolOp) String() string {
	switch op {
	case BoolUnion:
		return "union"
	case BoolSubtraction:
		return "subtraction"
	default:
		return "unknown"
	}
}

// BooleanSpec combines two registered solids. Shift moves the second
// operand before the operation is applied.
type BooleanSpec struct {
	Op    BoolOp `json:"op"`
	A     *Solid `json:"-"`
	B     *Solid `json:"-"`
	Shift Vec3   `json:"shift"`
}

func (BooleanSpec) solidSpec() {}

// Solid pairs a registered name and construction spec with the kernel
// handle bound at creation time.
type Solid struct {
	Name   string
	Spec   SolidSpec
	Handle kernel.Solid
}
