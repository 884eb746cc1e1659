// Package kernel defines the abstract solid-modeling kernel interface.
// Implementations (sdfx, trace) provide primitive construction and
// boolean operations behind this interface. The kernel abstraction
// allows swapping backends without changing the rest of the system.
package kernel

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid-modeling interface. All lengths are in
// millimetres and all angles in radians. Solids are built in their local
// frame using particle-transport conventions: boxes are centered on the
// origin, tubes and spheres are centered with their axis along z, and a
// revolved cross-section keeps the z values of its profile.
//
// Every operation reports invalid parameters (zero or negative
// dimensions, mismatched profile lengths) as an error instead of
// producing a degenerate solid.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Tube(rmin, rmax, height, startPhi, deltaPhi float64) (Solid, error)
	Sphere(rmin, rmax, startTheta, deltaTheta float64) (Solid, error)
	Polycone(r, z []float64) (Solid, error)

	// Boolean operations. The second operand is shifted by (x, y, z)
	// before the operation is applied.
	Union(a, b Solid, x, y, z float64) (Solid, error)
	Subtraction(a, b Solid, x, y, z float64) (Solid, error)

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
