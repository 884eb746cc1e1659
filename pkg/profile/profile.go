// Package profile generates the revolved (r, z) cross-sections of the
// experiment's nested cryostat volumes. A profile is a closed polygon
// in the r-z half plane; revolving it around the z axis yields the
// solid. Nested volumes are generated with a small clearance so that
// no two surfaces coincide exactly.
package profile

import (
	"fmt"
	"math"
)

// Clearance is the gap in millimetres baked into nested profiles so
// that adjacent surfaces never coincide.
const Clearance = 0.01

// Profile is a closed polygon in the r-z half plane. The closing edge
// from the last vertex back to the first is implicit. Radii are
// non-negative; units are millimetres.
type Profile struct {
	R []float64 `json:"r"`
	Z []float64 `json:"z"`
}

// Len returns the number of vertices.
func (p Profile) Len() int { return len(p.R) }

// Validate checks that the profile is a well-formed closed polygon:
// matching coordinate lengths, at least three vertices, non-negative
// radii, non-zero area and no self-intersections. Degenerate inputs
// should be passed through Compact first.
func (p Profile) Validate() error {
	if len(p.R) != len(p.Z) {
		return fmt.Errorf("profile length mismatch: %d radii vs %d heights", len(p.R), len(p.Z))
	}
	n := len(p.R)
	if n < 3 {
		return fmt.Errorf("profile needs at least 3 vertices, got %d", n)
	}
	for i, r := range p.R {
		if r < 0 {
			return fmt.Errorf("vertex %d has negative radius %g", i, r)
		}
	}
	if math.Abs(p.area()) < 1e-12 {
		return fmt.Errorf("profile encloses no area")
	}
	// Check every non-adjacent segment pair for a proper crossing.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if p.segmentsCross(i, j) {
				return fmt.Errorf("profile self-intersects between edges %d and %d", i, j)
			}
		}
	}
	return nil
}

// area returns the signed shoelace area.
func (p Profile) area() float64 {
	n := len(p.R)
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += p.R[i]*p.Z[j] - p.R[j]*p.Z[i]
	}
	return a / 2
}

// segmentsCross reports a proper crossing between edge i and edge j
// (edge k runs from vertex k to vertex k+1 mod n).
func (p Profile) segmentsCross(i, j int) bool {
	n := len(p.R)
	ax, ay := p.R[i], p.Z[i]
	bx, by := p.R[(i+1)%n], p.Z[(i+1)%n]
	cx, cy := p.R[j], p.Z[j]
	dx, dy := p.R[(j+1)%n], p.Z[(j+1)%n]

	d1 := orient(cx, cy, dx, dy, ax, ay)
	d2 := orient(cx, cy, dx, dy, bx, by)
	d3 := orient(ax, ay, bx, by, cx, cy)
	d4 := orient(ax, ay, bx, by, dx, dy)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// orient returns the orientation of point (px, py) relative to the
// directed line a -> b.
func orient(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// Compact returns a copy with consecutive duplicate vertices removed,
// including a trailing vertex equal to the first. Degenerate
// dimensions collapse pairs of vertices onto each other; dropping the
// duplicates keeps the polygon valid.
func (p Profile) Compact() Profile {
	n := len(p.R)
	if n == 0 || len(p.Z) != n {
		return p
	}
	out := Profile{R: make([]float64, 0, n), Z: make([]float64, 0, n)}
	for i := 0; i < n; i++ {
		if i > 0 && p.R[i] == p.R[i-1] && p.Z[i] == p.Z[i-1] {
			continue
		}
		out.R = append(out.R, p.R[i])
		out.Z = append(out.Z, p.Z[i])
	}
	// Drop a trailing vertex that closes onto the first explicitly.
	for m := len(out.R); m > 1 && out.R[m-1] == out.R[0] && out.Z[m-1] == out.Z[0]; m = len(out.R) {
		out.R = out.R[:m-1]
		out.Z = out.Z[:m-1]
	}
	return out
}

// Shifted returns a copy with dz added to every height.
func (p Profile) Shifted(dz float64) Profile {
	out := Profile{R: make([]float64, len(p.R)), Z: make([]float64, len(p.Z))}
	copy(out.R, p.R)
	for i, z := range p.Z {
		out.Z[i] = z + dz
	}
	return out
}

// MaxR returns the largest radius.
func (p Profile) MaxR() float64 {
	var max float64
	for _, r := range p.R {
		if r > max {
			max = r
		}
	}
	return max
}

// MinZ returns the lowest height.
func (p Profile) MinZ() float64 {
	if len(p.Z) == 0 {
		return 0
	}
	min := p.Z[0]
	for _, z := range p.Z[1:] {
		if z < min {
			min = z
		}
	}
	return min
}

// MaxZ returns the highest height.
func (p Profile) MaxZ() float64 {
	if len(p.Z) == 0 {
		return 0
	}
	max := p.Z[0]
	for _, z := range p.Z[1:] {
		if z > max {
			max = z
		}
	}
	return max
}

// OuterRadiusAt returns the largest radius of the polygon boundary at
// height z, or 0 when the profile does not reach that height. Nesting
// checks compare these radii between inner and outer profiles.
func (p Profile) OuterRadiusAt(z float64) float64 {
	n := len(p.R)
	if n == 0 {
		return 0
	}
	var max float64
	found := false
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		z0, z1 := p.Z[i], p.Z[j]
		r0, r1 := p.R[i], p.R[j]
		lo, hi := math.Min(z0, z1), math.Max(z0, z1)
		if z < lo || z > hi {
			continue
		}
		found = true
		var r float64
		if z0 == z1 {
			r = math.Max(r0, r1)
		} else {
			t := (z - z0) / (z1 - z0)
			r = r0 + t*(r1-r0)
		}
		if r > max {
			max = r
		}
	}
	if !found {
		return 0
	}
	return max
}

// Vertices returns the polygon vertices as (r, z) pairs.
func (p Profile) Vertices() [][2]float64 {
	out := make([][2]float64, len(p.R))
	for i := range p.R {
		out[i] = [2]float64{p.R[i], p.Z[i]}
	}
	return out
}
