package geom

import (
	"errors"
	"fmt"

	"github.com/scarf-exp/geomscarf/pkg/kernel"
)

// Sentinel errors for registry operations. They are always wrapped
// with the class and name of the object involved.
var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrNotFound      = errors.New("not found")
)

// Registry is the single ownership root of a geometry description.
// Every solid, material, volume, placement and surface is registered
// here under a name unique within its class. Iteration order of the
// accessor methods is registration order, which keeps construction
// deterministic across runs.
type Registry struct {
	kernel kernel.Kernel
	world  *LogicalVolume

	solids    map[string]*Solid
	materials map[string]*Material
	logicals  map[string]*LogicalVolume
	physicals map[string]*PhysicalVolume
	surfaces  map[string]*OpticalSurface
	borders   map[string]*BorderSurface
	skins     map[string]*SkinSurface

	solidOrder    []string
	materialOrder []string
	logicalOrder  []string
	physicalOrder []string
	surfaceOrder  []string
	borderOrder   []string
	skinOrder     []string
}

// New creates an empty registry bound to the given kernel.
func New(k kernel.Kernel) *Registry {
	return &Registry{
		kernel:    k,
		solids:    make(map[string]*Solid),
		materials: make(map[string]*Material),
		logicals:  make(map[string]*LogicalVolume),
		physicals: make(map[string]*PhysicalVolume),
		surfaces:  make(map[string]*OpticalSurface),
		borders:   make(map[string]*BorderSurface),
		skins:     make(map[string]*SkinSurface),
	}
}

// Kernel returns the kernel this registry binds solids through.
func (r *Registry) Kernel() kernel.Kernel { return r.kernel }

func dupErr(class, name string) error {
	return fmt.Errorf("%s %q: %w", class, name, ErrDuplicateName)
}

func notFoundErr(class, name string) error {
	return fmt.Errorf("%s %q: %w", class, name, ErrNotFound)
}

// ---------------------------------------------------------------------------
// Solids
// ---------------------------------------------------------------------------

func (r *Registry) checkSolidName(name string) error {
	if name == "" {
		return fmt.Errorf("solid name must not be empty")
	}
	if _, ok := r.solids[name]; ok {
		return dupErr("solid", name)
	}
	return nil
}

func (r *Registry) addSolid(name string, spec SolidSpec, h kernel.Solid) *Solid {
	s := &Solid{Name: name, Spec: spec, Handle: h}
	r.solids[name] = s
	r.solidOrder = append(r.solidOrder, name)
	return s
}

// NewBox registers a box solid. Kernel errors are returned unmodified.
func (r *Registry) NewBox(name string, x, y, z float64) (*Solid, error) {
	if err := r.checkSolidName(name); err != nil {
		return nil, err
	}
	h, err := r.kernel.Box(x, y, z)
	if err != nil {
		return nil, err
	}
	return r.addSolid(name, BoxSpec{X: x, Y: y, Z: z}, h), nil
}

// NewTube registers a cylindrical shell solid.
func (r *Registry) NewTube(name string, rmin, rmax, height, startPhi, deltaPhi float64) (*Solid, error) {
	if err := r.checkSolidName(name); err != nil {
		return nil, err
	}
	h, err := r.kernel.Tube(rmin, rmax, height, startPhi, deltaPhi)
	if err != nil {
		return nil, err
	}
	spec := TubeSpec{Rmin: rmin, Rmax: rmax, Height: height, StartPhi: startPhi, DeltaPhi: deltaPhi}
	return r.addSolid(name, spec, h), nil
}

// NewSphere registers a spherical shell solid.
func (r *Registry) NewSphere(name string, rmin, rmax, startTheta, deltaTheta float64) (*Solid, error) {
	if err := r.checkSolidName(name); err != nil {
		return nil, err
	}
	h, err := r.kernel.Sphere(rmin, rmax, startTheta, deltaTheta)
	if err != nil {
		return nil, err
	}
	spec := SphereSpec{Rmin: rmin, Rmax: rmax, StartTheta: startTheta, DeltaTheta: deltaTheta}
	return r.addSolid(name, spec, h), nil
}

// NewPolycone registers a revolved-profile solid. The radii and
// heights describe a closed polygon in the r-z half plane.
func (r *Registry) NewPolycone(name string, radii, heights []float64) (*Solid, error) {
	if err := r.checkSolidName(name); err != nil {
		return nil, err
	}
	h, err := r.kernel.Polycone(radii, heights)
	if err != nil {
		return nil, err
	}
	rs := make([]float64, len(radii))
	copy(rs, radii)
	zs := make([]float64, len(heights))
	copy(zs, heights)
	return r.addSolid(name, PolyconeSpec{R: rs, Z: zs}, h), nil
}

// NewUnion registers the union of two registered solids, with b
// shifted by shift before the operation.
func (r *Registry) NewUnion(name string, a, b *Solid, shift Vec3) (*Solid, error) {
	return r.newBoolean(name, BoolUnion, a, b, shift)
}

// NewSubtraction registers a minus b, with b shifted by shift.
func (r *Registry) NewSubtraction(name string, a, b *Solid, shift Vec3) (*Solid, error) {
	return r.newBoolean(name, BoolSubtraction, a, b, shift)
}

func (r *Registry) newBoolean(name string, op BoolOp, a, b *Solid, shift Vec3) (*Solid, error) {
	if err := r.checkSolidName(name); err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s %q: operands must not be nil", op, name)
	}
	if _, ok := r.solids[a.Name]; !ok {
		return nil, notFoundErr("solid", a.Name)
	}
	if _, ok := r.solids[b.Name]; !ok {
		return nil, notFoundErr("solid", b.Name)
	}
	var h kernel.Solid
	var err error
	switch op {
	case BoolUnion:
		h, err = r.kernel.Union(a.Handle, b.Handle, shift.X, shift.Y, shift.Z)
	case BoolSubtraction:
		h, err = r.kernel.Subtraction(a.Handle, b.Handle, shift.X, shift.Y, shift.Z)
	default:
		return nil, fmt.Errorf("unknown boolean operation %d", op)
	}
	if err != nil {
		return nil, err
	}
	return r.addSolid(name, BooleanSpec{Op: op, A: a, B: b, Shift: shift}, h), nil
}

// Solid returns the registered solid with the given name.
func (r *Registry) Solid(name string) (*Solid, error) {
	s, ok := r.solids[name]
	if !ok {
		return nil, notFoundErr("solid", name)
	}
	return s, nil
}

// Solids returns all solids in registration order.
func (r *Registry) Solids() []*Solid {
	out := make([]*Solid, len(r.solidOrder))
	for i, name := range r.solidOrder {
		out[i] = r.solids[name]
	}
	return out
}

// ---------------------------------------------------------------------------
// Materials
// ---------------------------------------------------------------------------

// AddMaterial registers a material under its name.
func (r *Registry) AddMaterial(m *Material) error {
	if m == nil || m.Name == "" {
		return fmt.Errorf("material must have a name")
	}
	if _, ok := r.materials[m.Name]; ok {
		return dupErr("material", m.Name)
	}
	r.materials[m.Name] = m
	r.materialOrder = append(r.materialOrder, m.Name)
	return nil
}

// Material returns the registered material with the given name.
func (r *Registry) Material(name string) (*Material, error) {
	m, ok := r.materials[name]
	if !ok {
		return nil, notFoundErr("material", name)
	}
	return m, nil
}

// Materials returns all materials in registration order.
func (r *Registry) Materials() []*Material {
	out := make([]*Material, len(r.materialOrder))
	for i, name := range r.materialOrder {
		out[i] = r.materials[name]
	}
	return out
}

// ---------------------------------------------------------------------------
// Logical volumes
// ---------------------------------------------------------------------------

// NewLogicalVolume registers a volume template pairing a registered
// solid with a registered material. The color tag can be set on the
// returned value before the volume is placed.
func (r *Registry) NewLogicalVolume(name string, s *Solid, m *Material) (*LogicalVolume, error) {
	if name == "" {
		return nil, fmt.Errorf("logical volume name must not be empty")
	}
	if _, ok := r.logicals[name]; ok {
		return nil, dupErr("logical volume", name)
	}
	if s == nil {
		return nil, fmt.Errorf("logical volume %q: solid must not be nil", name)
	}
	if _, ok := r.solids[s.Name]; !ok {
		return nil, notFoundErr("solid", s.Name)
	}
	if m == nil {
		return nil, fmt.Errorf("logical volume %q: material must not be nil", name)
	}
	if _, ok := r.materials[m.Name]; !ok {
		return nil, notFoundErr("material", m.Name)
	}
	lv := &LogicalVolume{Name: name, Solid: s, Material: m}
	r.logicals[name] = lv
	r.logicalOrder = append(r.logicalOrder, name)
	return lv, nil
}

// SetWorld marks a registered logical volume as the world volume. All
// placement chains terminate at the world.
func (r *Registry) SetWorld(lv *LogicalVolume) error {
	if lv == nil {
		return fmt.Errorf("world volume must not be nil")
	}
	if _, ok := r.logicals[lv.Name]; !ok {
		return notFoundErr("logical volume", lv.Name)
	}
	r.world = lv
	return nil
}

// World returns the world volume, or nil when none is set.
func (r *Registry) World() *LogicalVolume { return r.world }

// LogicalVolume returns the registered logical volume with the given name.
func (r *Registry) LogicalVolume(name string) (*LogicalVolume, error) {
	lv, ok := r.logicals[name]
	if !ok {
		return nil, notFoundErr("logical volume", name)
	}
	return lv, nil
}

// LogicalVolumes returns all logical volumes in registration order.
func (r *Registry) LogicalVolumes() []*LogicalVolume {
	out := make([]*LogicalVolume, len(r.logicalOrder))
	for i, name := range r.logicalOrder {
		out[i] = r.logicals[name]
	}
	return out
}

// ---------------------------------------------------------------------------
// Placements
// ---------------------------------------------------------------------------

// Place creates a physical volume placing child inside mother at the
// given translation with identity rotation. An empty name defaults to
// the child volume's name; a second placement of the same volume needs
// an explicit distinct name.
func (r *Registry) Place(name string, child, mother *LogicalVolume, at Vec3) (*PhysicalVolume, error) {
	return r.PlaceRotated(name, child, mother, at, Vec3{})
}

// PlaceRotated is Place with Euler rotation angles in radians, applied
// about x, y, z in order.
func (r *Registry) PlaceRotated(name string, child, mother *LogicalVolume, at, rot Vec3) (*PhysicalVolume, error) {
	if r.world == nil {
		return nil, fmt.Errorf("cannot place %q: world volume not set", name)
	}
	if child == nil {
		return nil, fmt.Errorf("cannot place %q: volume must not be nil", name)
	}
	if name == "" {
		name = child.Name
	}
	if _, ok := r.physicals[name]; ok {
		return nil, dupErr("physical volume", name)
	}
	if _, ok := r.logicals[child.Name]; !ok {
		return nil, notFoundErr("logical volume", child.Name)
	}
	if mother == nil {
		return nil, fmt.Errorf("cannot place %q: mother must not be nil", name)
	}
	if _, ok := r.logicals[mother.Name]; !ok {
		return nil, notFoundErr("logical volume", mother.Name)
	}
	if child == mother {
		return nil, fmt.Errorf("cannot place %q inside itself", child.Name)
	}
	if child == r.world {
		return nil, fmt.Errorf("cannot place the world volume %q", child.Name)
	}
	if r.isAncestor(child, mother) {
		return nil, fmt.Errorf("cannot place %q inside %q: placement would create a cycle",
			child.Name, mother.Name)
	}
	pv := &PhysicalVolume{
		Name:        name,
		Volume:      child,
		Mother:      mother,
		Translation: at,
		Rotation:    rot,
	}
	r.physicals[name] = pv
	r.physicalOrder = append(r.physicalOrder, name)
	return pv, nil
}

// isAncestor reports whether candidate appears on any mother chain
// starting at lv.
func (r *Registry) isAncestor(candidate, lv *LogicalVolume) bool {
	seen := make(map[*LogicalVolume]bool)
	queue := []*LogicalVolume{lv}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == candidate {
			return true
		}
		if seen[current] {
			continue
		}
		seen[current] = true
		for _, name := range r.physicalOrder {
			pv := r.physicals[name]
			if pv.Volume == current && pv.Mother != nil {
				queue = append(queue, pv.Mother)
			}
		}
	}
	return false
}

// PhysicalVolume returns the registered placement with the given name.
func (r *Registry) PhysicalVolume(name string) (*PhysicalVolume, error) {
	pv, ok := r.physicals[name]
	if !ok {
		return nil, notFoundErr("physical volume", name)
	}
	return pv, nil
}

// PhysicalVolumes returns all placements in registration order.
func (r *Registry) PhysicalVolumes() []*PhysicalVolume {
	out := make([]*PhysicalVolume, len(r.physicalOrder))
	for i, name := range r.physicalOrder {
		out[i] = r.physicals[name]
	}
	return out
}

// ---------------------------------------------------------------------------
// Optical surfaces
// ---------------------------------------------------------------------------

// NewOpticalSurface registers an optical surface description.
func (r *Registry) NewOpticalSurface(name string, model SurfaceModel, finish SurfaceFinish, typ SurfaceType, value float64) (*OpticalSurface, error) {
	if name == "" {
		return nil, fmt.Errorf("optical surface name must not be empty")
	}
	if _, ok := r.surfaces[name]; ok {
		return nil, dupErr("optical surface", name)
	}
	s := &OpticalSurface{Name: name, Model: model, Finish: finish, Type: typ, Value: value}
	r.surfaces[name] = s
	r.surfaceOrder = append(r.surfaceOrder, name)
	return s, nil
}

// Surface returns the registered optical surface with the given name.
func (r *Registry) Surface(name string) (*OpticalSurface, error) {
	s, ok := r.surfaces[name]
	if !ok {
		return nil, notFoundErr("optical surface", name)
	}
	return s, nil
}

// Surfaces returns all optical surfaces in registration order.
func (r *Registry) Surfaces() []*OpticalSurface {
	out := make([]*OpticalSurface, len(r.surfaceOrder))
	for i, name := range r.surfaceOrder {
		out[i] = r.surfaces[name]
	}
	return out
}

// AttachBorder applies an optical surface to the directed boundary
// from one placement into another. Both placements are looked up by
// name and must already exist: annotation never precedes placement.
func (r *Registry) AttachBorder(name, fromPV, toPV string, surf *OpticalSurface) (*BorderSurface, error) {
	if name == "" {
		return nil, fmt.Errorf("border surface name must not be empty")
	}
	if _, ok := r.borders[name]; ok {
		return nil, dupErr("border surface", name)
	}
	from, ok := r.physicals[fromPV]
	if !ok {
		return nil, notFoundErr("physical volume", fromPV)
	}
	to, ok := r.physicals[toPV]
	if !ok {
		return nil, notFoundErr("physical volume", toPV)
	}
	if surf == nil {
		return nil, fmt.Errorf("border surface %q: optical surface must not be nil", name)
	}
	if _, ok := r.surfaces[surf.Name]; !ok {
		return nil, notFoundErr("optical surface", surf.Name)
	}
	b := &BorderSurface{Name: name, From: from, To: to, Surface: surf}
	r.borders[name] = b
	r.borderOrder = append(r.borderOrder, name)
	return b, nil
}

// Borders returns all border surfaces in registration order.
func (r *Registry) Borders() []*BorderSurface {
	out := make([]*BorderSurface, len(r.borderOrder))
	for i, name := range r.borderOrder {
		out[i] = r.borders[name]
	}
	return out
}

// AttachSkin applies an optical surface to every boundary of a
// registered logical volume.
func (r *Registry) AttachSkin(name, volume string, surf *OpticalSurface) (*SkinSurface, error) {
	if name == "" {
		return nil, fmt.Errorf("skin surface name must not be empty")
	}
	if _, ok := r.skins[name]; ok {
		return nil, dupErr("skin surface", name)
	}
	lv, ok := r.logicals[volume]
	if !ok {
		return nil, notFoundErr("logical volume", volume)
	}
	if surf == nil {
		return nil, fmt.Errorf("skin surface %q: optical surface must not be nil", name)
	}
	if _, ok := r.surfaces[surf.Name]; !ok {
		return nil, notFoundErr("optical surface", surf.Name)
	}
	s := &SkinSurface{Name: name, Volume: lv, Surface: surf}
	r.skins[name] = s
	r.skinOrder = append(r.skinOrder, name)
	return s, nil
}

// Skins returns all skin surfaces in registration order.
func (r *Registry) Skins() []*SkinSurface {
	out := make([]*SkinSurface, len(r.skinOrder))
	for i, name := range r.skinOrder {
		out[i] = r.skins[name]
	}
	return out
}
