// Package trace provides a lightweight recording kernel for tests and
// dry runs. Solids carry analytic bounding boxes and a record of how
// they were built, but no geometry engine runs behind them. The
// parameter validation mirrors the sdfx backend so construction code
// exercised against trace fails the same way it would in production.
package trace

import (
	"errors"
	"fmt"
	"math"

	"github.com/scarf-exp/geomscarf/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// ErrInjected is returned by a Kernel whose FailOn field matches the
// requested operation. Tests use it to drive error paths.
var ErrInjected = errors.New("injected kernel failure")

// Solid records one kernel operation and its analytic bounding box.
type Solid struct {
	// Op is the operation that produced this solid: box, tube, sphere,
	// polycone, union or subtraction.
	Op string
	// Args holds the numeric parameters in declaration order.
	Args []float64
	// Operands holds the inputs of a boolean operation.
	Operands []*Solid

	min, max [3]float64
}

// BoundingBox returns the axis-aligned bounding box.
func (s *Solid) BoundingBox() (min, max [3]float64) {
	return s.min, s.max
}

// Kernel implements kernel.Kernel by recording operations.
type Kernel struct {
	// FailOn, when non-empty, makes the named operation return
	// ErrInjected instead of a solid.
	FailOn string

	ops []string
}

// New returns an empty recording kernel.
func New() *Kernel {
	return &Kernel{}
}

// Ops returns the names of all operations performed, in order.
func (k *Kernel) Ops() []string {
	out := make([]string, len(k.ops))
	copy(out, k.ops)
	return out
}

// Reset clears the operation log.
func (k *Kernel) Reset() {
	k.ops = nil
}

func (k *Kernel) record(op string) error {
	if k.FailOn == op {
		return fmt.Errorf("%s: %w", op, ErrInjected)
	}
	k.ops = append(k.ops, op)
	return nil
}

// Box records a box centered on the origin.
func (k *Kernel) Box(x, y, z float64) (kernel.Solid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("box: dimensions must be positive, got (%g, %g, %g)", x, y, z)
	}
	if err := k.record("box"); err != nil {
		return nil, err
	}
	return &Solid{
		Op:   "box",
		Args: []float64{x, y, z},
		min:  [3]float64{-x / 2, -y / 2, -z / 2},
		max:  [3]float64{x / 2, y / 2, z / 2},
	}, nil
}

// Tube records a cylindrical shell around the z axis.
func (k *Kernel) Tube(rmin, rmax, height, startPhi, deltaPhi float64) (kernel.Solid, error) {
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
	if err := k.record("tube"); err != nil {
		return nil, err
	}
	return &Solid{
		Op:   "tube",
		Args: []float64{rmin, rmax, height, startPhi, deltaPhi},
		min:  [3]float64{-rmax, -rmax, -height / 2},
		max:  [3]float64{rmax, rmax, height / 2},
	}, nil
}

// Sphere records a spherical shell centered on the origin.
func (k *Kernel) Sphere(rmin, rmax, startTheta, deltaTheta float64) (kernel.Solid, error) {
	if rmax <= 0 {
		return nil, fmt.Errorf("sphere: outer radius must be positive, got %g", rmax)
	}
	if rmin < 0 || rmin >= rmax {
		return nil, fmt.Errorf("sphere: inner radius %g must be in [0, %g)", rmin, rmax)
	}
	if startTheta < 0 || deltaTheta <= 0 || startTheta+deltaTheta > math.Pi+1e-9 {
		return nil, fmt.Errorf("sphere: polar range [%g, %g] must lie within [0, pi]",
			startTheta, startTheta+deltaTheta)
	}
	if err := k.record("sphere"); err != nil {
		return nil, err
	}
	return &Solid{
		Op:   "sphere",
		Args: []float64{rmin, rmax, startTheta, deltaTheta},
		min:  [3]float64{-rmax, -rmax, -rmax},
		max:  [3]float64{rmax, rmax, rmax},
	}, nil
}

// Polycone records a revolved (r, z) profile.
func (k *Kernel) Polycone(r, z []float64) (kernel.Solid, error) {
	if len(r) != len(z) {
		return nil, fmt.Errorf("polycone: profile length mismatch, %d radii vs %d heights", len(r), len(z))
	}
	if len(r) < 3 {
		return nil, fmt.Errorf("polycone: profile needs at least 3 vertices, got %d", len(r))
	}
	maxR := 0.0
	minZ := math.MaxFloat64
	maxZ := -math.MaxFloat64
	args := make([]float64, 0, 2*len(r))
	for i := range r {
		if r[i] < 0 {
			return nil, fmt.Errorf("polycone: vertex %d has negative radius %g", i, r[i])
		}
		maxR = math.Max(maxR, r[i])
		minZ = math.Min(minZ, z[i])
		maxZ = math.Max(maxZ, z[i])
		args = append(args, r[i], z[i])
	}
	if err := k.record("polycone"); err != nil {
		return nil, err
	}
	return &Solid{
		Op:   "polycone",
		Args: args,
		min:  [3]float64{-maxR, -maxR, minZ},
		max:  [3]float64{maxR, maxR, maxZ},
	}, nil
}

// Union records the union of a and b, with b shifted by (x, y, z).
func (k *Kernel) Union(a, b kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	sa, sb, err := operands("union", a, b)
	if err != nil {
		return nil, err
	}
	if err := k.record("union"); err != nil {
		return nil, err
	}
	bmin, bmax := shifted(sb, x, y, z)
	var min, max [3]float64
	for i := 0; i < 3; i++ {
		min[i] = math.Min(sa.min[i], bmin[i])
		max[i] = math.Max(sa.max[i], bmax[i])
	}
	return &Solid{
		Op:       "union",
		Args:     []float64{x, y, z},
		Operands: []*Solid{sa, sb},
		min:      min,
		max:      max,
	}, nil
}

// Subtraction records a minus b, with b shifted by (x, y, z). Like the
// sdfx backend, the result keeps the first operand's bounding box.
func (k *Kernel) Subtraction(a, b kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	sa, sb, err := operands("subtraction", a, b)
	if err != nil {
		return nil, err
	}
	if err := k.record("subtraction"); err != nil {
		return nil, err
	}
	return &Solid{
		Op:       "subtraction",
		Args:     []float64{x, y, z},
		Operands: []*Solid{sa, sb},
		min:      sa.min,
		max:      sa.max,
	}, nil
}

// ToMesh returns a minimal placeholder mesh spanning the bounding box
// so that export paths can run without a real tessellator.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ts, ok := s.(*Solid)
	if !ok {
		return nil, fmt.Errorf("mesh: solid %T does not belong to the trace kernel", s)
	}
	if k.FailOn == "mesh" {
		return nil, fmt.Errorf("mesh: %w", ErrInjected)
	}
	k.ops = append(k.ops, "mesh")
	min, max := ts.min, ts.max
	return &kernel.Mesh{
		Vertices: []float32{
			float32(min[0]), float32(min[1]), float32(min[2]),
			float32(max[0]), float32(min[1]), float32(min[2]),
			float32(max[0]), float32(max[1]), float32(max[2]),
		},
		Normals: []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices: []uint32{0, 1, 2},
	}, nil
}

func operands(op string, a, b kernel.Solid) (*Solid, *Solid, error) {
	sa, ok := a.(*Solid)
	if !ok {
		return nil, nil, fmt.Errorf("%s: solid %T does not belong to the trace kernel", op, a)
	}
	sb, ok := b.(*Solid)
	if !ok {
		return nil, nil, fmt.Errorf("%s: solid %T does not belong to the trace kernel", op, b)
	}
	return sa, sb, nil
}

func shifted(s *Solid, x, y, z float64) (min, max [3]float64) {
	d := [3]float64{x, y, z}
	for i := 0; i < 3; i++ {
		min[i] = s.min[i] + d[i]
		max[i] = s.max[i] + d[i]
	}
	return min, max
}
