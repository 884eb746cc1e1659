package geom

import (
	"fmt"
	"strings"
)

// childrenOf returns the placements whose mother is lv, in
// registration order.
func (r *Registry) childrenOf(lv *LogicalVolume) []*PhysicalVolume {
	var out []*PhysicalVolume
	for _, name := range r.physicalOrder {
		pv := r.physicals[name]
		if pv.Mother == lv {
			out = append(out, pv)
		}
	}
	return out
}

// Walk visits every placement reachable from the world volume,
// depth-first in registration order. Depth 0 is a direct child of the
// world. Returning an error from fn stops the walk.
func (r *Registry) Walk(fn func(pv *PhysicalVolume, depth int) error) error {
	if r.world == nil {
		return fmt.Errorf("world volume not set")
	}
	var visit func(lv *LogicalVolume, depth int) error
	visit = func(lv *LogicalVolume, depth int) error {
		for _, pv := range r.childrenOf(lv) {
			if err := fn(pv, depth); err != nil {
				return err
			}
			if err := visit(pv.Volume, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(r.world, 0)
}

// TreeString renders the placement tree rooted at the world volume,
// one line per placement with its logical volume and material.
func (r *Registry) TreeString() (string, error) {
	if r.world == nil {
		return "", fmt.Errorf("world volume not set")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.world.Name)
	err := r.Walk(func(pv *PhysicalVolume, depth int) error {
		mat := "?"
		if pv.Volume.Material != nil {
			mat = pv.Volume.Material.Name
		}
		fmt.Fprintf(&b, "%s- %s  [LV=%s, material=%s]\n",
			strings.Repeat("  ", depth), pv.Name, pv.Volume.Name, mat)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Ancestry returns the names of the placements enclosing the named
// placement, innermost first, ending at the outermost placement whose
// mother is the world volume. A logical volume placed more than once
// resolves through its first placement.
func (r *Registry) Ancestry(pvName string) ([]string, error) {
	pv, err := r.PhysicalVolume(pvName)
	if err != nil {
		return nil, err
	}
	var chain []string
	current := pv
	for {
		mother := current.Mother
		if mother == nil || mother == r.world {
			return chain, nil
		}
		next := r.firstPlacementOf(mother)
		if next == nil {
			return chain, fmt.Errorf("volume %q is not placed", mother.Name)
		}
		chain = append(chain, next.Name)
		current = next
	}
}

// firstPlacementOf returns the earliest-registered placement of lv.
func (r *Registry) firstPlacementOf(lv *LogicalVolume) *PhysicalVolume {
	for _, name := range r.physicalOrder {
		if pv := r.physicals[name]; pv.Volume == lv {
			return pv
		}
	}
	return nil
}
