package materials

import (
	"fmt"

	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/optics"
)

// surface returns the cached optical surface under name, building and
// registering it on first use.
func (s *Store) surface(name string, build func() (*geom.OpticalSurface, error)) (*geom.OpticalSurface, error) {
	if surf, ok := s.surfaces[name]; ok {
		return surf, nil
	}
	surf, err := build()
	if err != nil {
		return nil, fmt.Errorf("surface %s: %w", name, err)
	}
	s.surfaces[name] = surf
	return surf, nil
}

// SurfaceToSteel returns the reflective model of the steel vessel
// walls. The reflectivity curve is that of copper, which is close
// enough for the polished inner wall.
func (s *Store) SurfaceToSteel() (*geom.OpticalSurface, error) {
	return s.surface("surface_to_steel", func() (*geom.OpticalSurface, error) {
		surf, err := s.reg.NewOpticalSurface("surface_to_steel",
			geom.ModelUnified, geom.FinishGround, geom.DielectricMetal, 0.5)
		if err != nil {
			return nil, err
		}
		optics.AttachCopperReflectivity(surf)
		return surf, nil
	})
}

// SurfaceToGermanium returns the reflective model of the detector
// crystal surfaces.
func (s *Store) SurfaceToGermanium() (*geom.OpticalSurface, error) {
	return s.surface("surface_to_germanium", func() (*geom.OpticalSurface, error) {
		surf, err := s.reg.NewOpticalSurface("surface_to_germanium",
			geom.ModelUnified, geom.FinishGround, geom.DielectricMetal, 0.3)
		if err != nil {
			return nil, err
		}
		optics.AttachGermaniumReflectivity(surf)
		return surf, nil
	})
}

// LArToTPB returns the rough interface between argon and the shroud
// coating used in the simplified shroud.
func (s *Store) LArToTPB() (*geom.OpticalSurface, error) {
	return s.surface("surface_lar_to_tpb", func() (*geom.OpticalSurface, error) {
		return s.reg.NewOpticalSurface("surface_lar_to_tpb",
			geom.ModelUnified, geom.FinishGround, geom.DielectricDielectric, 0.3)
	})
}

// SurfaceToFiberCore returns the fully absorbing surface that makes
// the fiber core a photon counter.
func (s *Store) SurfaceToFiberCore() (*geom.OpticalSurface, error) {
	return s.surface("surface_to_fiber_core", func() (*geom.OpticalSurface, error) {
		surf, err := s.reg.NewOpticalSurface("surface_to_fiber_core",
			geom.ModelUnified, geom.FinishGround, geom.DielectricMetal, 0.05)
		if err != nil {
			return nil, err
		}
		optics.AttachFiberCoreSensitivity(surf)
		return surf, nil
	})
}

// OSLArTPB returns the unified-model argon/coating interface of the
// detailed shroud, with explicit lobe constants.
func (s *Store) OSLArTPB() (*geom.OpticalSurface, error) {
	return s.surface("os_lar_tpb", func() (*geom.OpticalSurface, error) {
		surf, err := s.reg.NewOpticalSurface("os_lar_tpb",
			geom.ModelUnified, geom.FinishGround, geom.DielectricDielectric, 1.0)
		if err != nil {
			return nil, err
		}
		optics.AttachRoughLobes(surf)
		return surf, nil
	})
}

// OSLArSiPM returns the photon detection surface of the SiPMs.
func (s *Store) OSLArSiPM() (*geom.OpticalSurface, error) {
	return s.surface("os_lar_sipm", func() (*geom.OpticalSurface, error) {
		surf, err := s.reg.NewOpticalSurface("os_lar_sipm",
			geom.ModelUnified, geom.FinishPolished, geom.DielectricMetal, 0)
		if err != nil {
			return nil, err
		}
		optics.AttachSiPMSensitivity(surf)
		return surf, nil
	})
}

// OSFibers returns the polished coating/core interface of the
// detailed shroud.
func (s *Store) OSFibers() (*geom.OpticalSurface, error) {
	return s.surface("os_fibers", func() (*geom.OpticalSurface, error) {
		return s.reg.NewOpticalSurface("os_fibers",
			geom.ModelUnified, geom.FinishPolished, geom.DielectricDielectric, 1.0)
	})
}

// PENSurface returns the rough skin of the PEN enclosures.
func (s *Store) PENSurface() (*geom.OpticalSurface, error) {
	return s.surface("PEN_surface", func() (*geom.OpticalSurface, error) {
		return s.reg.NewOpticalSurface("PEN_surface",
			geom.ModelUnified, geom.FinishGround, geom.DielectricDielectric, 0.1)
	})
}
