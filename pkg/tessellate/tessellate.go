// Package tessellate converts a constructed geometry into triangle
// meshes for visualization. The placement tree is walked from the
// world volume with an accumulated transform stack, producing one mesh
// per placement in world coordinates. A logical volume placed several
// times yields one mesh per placement.
package tessellate

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/kernel"
)

// transformStack accumulates placement transforms during the tree
// walk. Each level holds the transform from one volume's frame into
// its mother's frame.
type transformStack struct {
	translations []geom.Vec3
	rotations    []geom.Vec3
}

func (ts *transformStack) push(t, r geom.Vec3) {
	ts.translations = append(ts.translations, t)
	ts.rotations = append(ts.rotations, r)
}

func (ts *transformStack) pop() {
	ts.translations = ts.translations[:len(ts.translations)-1]
	ts.rotations = ts.rotations[:len(ts.rotations)-1]
}

// apply maps a point from the innermost frame to the world frame,
// rotating then translating at every level on the way out.
func (ts *transformStack) apply(v [3]float64) [3]float64 {
	for i := len(ts.translations) - 1; i >= 0; i-- {
		v = rotateEuler(v, ts.rotations[i])
		v[0] += ts.translations[i].X
		v[1] += ts.translations[i].Y
		v[2] += ts.translations[i].Z
	}
	return v
}

// applyDirection maps a direction to the world frame, ignoring
// translations.
func (ts *transformStack) applyDirection(v [3]float64) [3]float64 {
	for i := len(ts.rotations) - 1; i >= 0; i-- {
		v = rotateEuler(v, ts.rotations[i])
	}
	return v
}

// rotateEuler applies rotations about x, y and z in order, matching
// the placement convention.
func rotateEuler(v [3]float64, r geom.Vec3) [3]float64 {
	if r == (geom.Vec3{}) {
		return v
	}
	x, y, z := v[0], v[1], v[2]
	if r.X != 0 {
		s, c := math.Sincos(r.X)
		y, z = y*c-z*s, y*s+z*c
	}
	if r.Y != 0 {
		s, c := math.Sincos(r.Y)
		x, z = x*c+z*s, z*c-x*s
	}
	if r.Z != 0 {
		s, c := math.Sincos(r.Z)
		x, y = x*c-y*s, x*s+y*c
	}
	return [3]float64{x, y, z}
}

// Tessellate meshes every placement reachable from the world volume
// through the registry's kernel. Vertices come out in world
// coordinates and each mesh is named after its placement. The world
// volume itself is not meshed.
func Tessellate(reg *geom.Registry) ([]*kernel.Mesh, error) {
	if reg == nil || reg.World() == nil {
		return nil, fmt.Errorf("no world volume to tessellate")
	}
	k := reg.Kernel()

	placements := make(map[string][]*geom.PhysicalVolume)
	for _, pv := range reg.PhysicalVolumes() {
		if pv.Mother == nil {
			continue
		}
		placements[pv.Mother.Name] = append(placements[pv.Mother.Name], pv)
	}

	var meshes []*kernel.Mesh
	ts := &transformStack{}
	var walk func(lv *geom.LogicalVolume) error
	walk = func(lv *geom.LogicalVolume) error {
		for _, pv := range placements[lv.Name] {
			ts.push(pv.Translation, pv.Rotation)
			mesh, err := k.ToMesh(pv.Volume.Solid.Handle)
			if err != nil {
				ts.pop()
				return fmt.Errorf("mesh %s: %w", pv.Name, err)
			}
			mesh.Name = pv.Name
			transformMesh(mesh, ts)
			meshes = append(meshes, mesh)

			if err := walk(pv.Volume); err != nil {
				ts.pop()
				return err
			}
			ts.pop()
		}
		return nil
	}
	if err := walk(reg.World()); err != nil {
		return nil, err
	}
	return meshes, nil
}

// transformMesh moves mesh vertices and normals into the world frame.
func transformMesh(m *kernel.Mesh, ts *transformStack) {
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		v := ts.apply([3]float64{
			float64(m.Vertices[i]),
			float64(m.Vertices[i+1]),
			float64(m.Vertices[i+2]),
		})
		m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2] = float32(v[0]), float32(v[1]), float32(v[2])
	}
	for i := 0; i+2 < len(m.Normals); i += 3 {
		n := ts.applyDirection([3]float64{
			float64(m.Normals[i]),
			float64(m.Normals[i+1]),
			float64(m.Normals[i+2]),
		})
		m.Normals[i], m.Normals[i+1], m.Normals[i+2] = float32(n[0]), float32(n[1]), float32(n[2])
	}
}

// WriteFile writes the meshes as one JSON document.
func WriteFile(path string, meshes []*kernel.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := json.NewEncoder(f).Encode(meshes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
