// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Solids are signed
// distance fields, booleans are distance-field combinations, and mesh
// output runs marching cubes over the bounding box.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/scarf-exp/geomscarf/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// angleEps absorbs floating-point noise when comparing angles against
// full-circle or hemisphere boundaries.
const angleEps = 1e-9

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	meshCells int
}

// New returns a new SdfxKernel with the default mesh resolution.
func New() *SdfxKernel {
	return &SdfxKernel{meshCells: defaultMeshCells}
}

// NewWithResolution returns a kernel whose mesh output uses the given
// number of marching cubes cells along the longest bounding-box axis.
func NewWithResolution(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return &SdfxKernel{meshCells: cells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) (sdf.SDF3, error) {
	w, ok := s.(*sdfxSolid)
	if !ok {
		return nil, fmt.Errorf("solid %T does not belong to the sdfx kernel", s)
	}
	return w.s, nil
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions, centered on the origin.
func (k *SdfxKernel) Box(x, y, z float64) (kernel.Solid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("box: dimensions must be positive, got (%g, %g, %g)", x, y, z)
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	return wrap(s), nil
}

// Tube creates a cylindrical shell around the z axis, centered on the
// origin. A full tube has an angular span of two pi; smaller spans
// produce a wedge starting at startPhi.
func (k *SdfxKernel) Tube(rmin, rmax, height, startPhi, deltaPhi float64) (kernel.Solid, error) {
	if rmax <= 0 {
		return nil, fmt.Errorf("tube: outer radius must be positive, got %g", rmax)
	}
	if rmin < 0 || rmin >= rmax {
		return nil, fmt.Errorf("tube: inner radius %g must be in [0, %g)", rmin, rmax)
	}
	if height <= 0 {
		return nil, fmt.Errorf("tube: height must be positive, got %g", height)
	}
	if deltaPhi <= 0 {
		return nil, fmt.Errorf("tube: angular span must be positive, got %g", deltaPhi)
	}
	full := deltaPhi >= 2*math.Pi-angleEps

	if rmin == 0 && full {
		s, err := sdf.Cylinder3D(height, rmax, 0)
		if err != nil {
			return nil, fmt.Errorf("tube: %w", err)
		}
		return wrap(s), nil
	}

	// Revolve the radial cross-section of the shell.
	section, err := sdf.Polygon2D([]v2.Vec{
		{X: rmin, Y: -height / 2},
		{X: rmax, Y: -height / 2},
		{X: rmax, Y: height / 2},
		{X: rmin, Y: height / 2},
	})
	if err != nil {
		return nil, fmt.Errorf("tube: %w", err)
	}
	var s3 sdf.SDF3
	if full {
		s3, err = sdf.Revolve3D(section)
	} else {
		s3, err = sdf.RevolveTheta3D(section, deltaPhi)
	}
	if err != nil {
		return nil, fmt.Errorf("tube: %w", err)
	}
	if !full && startPhi != 0 {
		s3 = sdf.Transform3D(s3, sdf.RotateZ(startPhi))
	}
	return wrap(s3), nil
}

// Sphere creates a spherical shell centered on the origin. The polar
// range is measured from the +z axis. Only full spheres and upper or
// lower hemispheres are representable.
func (k *SdfxKernel) Sphere(rmin, rmax, startTheta, deltaTheta float64) (kernel.Solid, error) {
	if rmax <= 0 {
		return nil, fmt.Errorf("sphere: outer radius must be positive, got %g", rmax)
	}
	if rmin < 0 || rmin >= rmax {
		return nil, fmt.Errorf("sphere: inner radius %g must be in [0, %g)", rmin, rmax)
	}
	if startTheta < -angleEps || deltaTheta <= 0 || startTheta+deltaTheta > math.Pi+angleEps {
		return nil, fmt.Errorf("sphere: polar range [%g, %g] must lie within [0, pi]",
			startTheta, startTheta+deltaTheta)
	}

	s3, err := sdf.Sphere3D(rmax)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	if rmin > 0 {
		inner, err := sdf.Sphere3D(rmin)
		if err != nil {
			return nil, fmt.Errorf("sphere: %w", err)
		}
		s3 = sdf.Difference3D(s3, inner)
	}

	switch {
	case startTheta <= angleEps && deltaTheta >= math.Pi-angleEps:
		// Full sphere.
	case startTheta <= angleEps && math.Abs(deltaTheta-math.Pi/2) <= angleEps:
		// Upper hemisphere, z >= 0.
		s3 = sdf.Cut3D(s3, v3.Vec{}, v3.Vec{Z: 1})
	case math.Abs(startTheta-math.Pi/2) <= angleEps && math.Abs(startTheta+deltaTheta-math.Pi) <= angleEps:
		// Lower hemisphere, z <= 0.
		s3 = sdf.Cut3D(s3, v3.Vec{}, v3.Vec{Z: -1})
	default:
		return nil, fmt.Errorf("sphere: polar range [%g, %g] is not a full sphere or hemisphere",
			startTheta, startTheta+deltaTheta)
	}
	return wrap(s3), nil
}

// Polycone revolves an (r, z) profile around the z axis. The profile
// is a closed counterclockwise polygon in the r-z half plane with
// non-negative radii.
func (k *SdfxKernel) Polycone(r, z []float64) (kernel.Solid, error) {
	if len(r) != len(z) {
		return nil, fmt.Errorf("polycone: profile length mismatch, %d radii vs %d heights", len(r), len(z))
	}
	if len(r) < 3 {
		return nil, fmt.Errorf("polycone: profile needs at least 3 vertices, got %d", len(r))
	}
	points := make([]v2.Vec, len(r))
	for i := range r {
		if r[i] < 0 {
			return nil, fmt.Errorf("polycone: vertex %d has negative radius %g", i, r[i])
		}
		points[i] = v2.Vec{X: r[i], Y: z[i]}
	}
	section, err := sdf.Polygon2D(points)
	if err != nil {
		return nil, fmt.Errorf("polycone: %w", err)
	}
	s3, err := sdf.Revolve3D(section)
	if err != nil {
		return nil, fmt.Errorf("polycone: %w", err)
	}
	return wrap(s3), nil
}

// Union returns the union of a and b, with b shifted by (x, y, z).
func (k *SdfxKernel) Union(a, b kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	sa, err := unwrap(a)
	if err != nil {
		return nil, fmt.Errorf("union: %w", err)
	}
	sb, err := unwrap(b)
	if err != nil {
		return nil, fmt.Errorf("union: %w", err)
	}
	return wrap(sdf.Union3D(sa, shift(sb, x, y, z))), nil
}

// Subtraction returns a minus b, with b shifted by (x, y, z).
func (k *SdfxKernel) Subtraction(a, b kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	sa, err := unwrap(a)
	if err != nil {
		return nil, fmt.Errorf("subtraction: %w", err)
	}
	sb, err := unwrap(b)
	if err != nil {
		return nil, fmt.Errorf("subtraction: %w", err)
	}
	return wrap(sdf.Difference3D(sa, shift(sb, x, y, z))), nil
}

// shift translates an SDF3, skipping the transform for a zero offset.
func shift(s sdf.SDF3, x, y, z float64) sdf.SDF3 {
	if x == 0 && y == 0 && z == 0 {
		return s
	}
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3, err := unwrap(s)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}

	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(sdf3, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("mesh: tessellation produced no triangles")
	}

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
