// Package geom defines the geometry description model for geomscarf.
// A Registry owns named solids, materials, logical volumes, physical
// volume placements and optical surfaces, and binds solid construction
// to a kernel backend. Placements form a strict tree under a single
// world volume, mirroring the structure a particle-transport engine
// consumes.
package geom
