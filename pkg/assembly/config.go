package assembly

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scarf-exp/geomscarf/pkg/profile"
)

//go:embed configs
var builtinConfigs embed.FS

// Fiber shroud construction modes.
const (
	FiberSimplified = "simplified"
	FiberDetailed   = "detailed"
)

// Defaults filled into optional configuration blocks before
// construction. Missing required keys are not defaulted; they fail
// validation instead.
const (
	DefaultShroudHeight   = 1000.0 // mm
	DefaultShroudRadius   = 115.0  // mm
	DefaultFiberUID       = 100
	DefaultSourceRadius   = 100.0 // mm, radial position in the world
	DefaultModuleCount    = 6
	DefaultModulePrefix   = "IB"
	DefaultChannelTop     = "sipm_top_"
	DefaultChannelBottom  = "sipm_bot_"
	DefaultBaseRawID      = 1000
	DefaultTPBThicknessNM = 150.0
)

// Config selects which subsystems to build and with which parameters.
// Every block is optional; the cryostat is always constructed, from
// the built-in dimension set unless a cryostat block overrides it.
type Config struct {
	HPGes       []HPGeEntry         `yaml:"hpges,omitempty" json:"hpges,omitempty"`
	FiberShroud *FiberShroudConfig  `yaml:"fiber_shroud,omitempty" json:"fiber_shroud,omitempty"`
	Source      *SourceConfig       `yaml:"source,omitempty" json:"source,omitempty"`
	Cavern      *CavernConfig       `yaml:"cavern,omitempty" json:"cavern,omitempty"`
	Cryostat    *profile.Dimensions `yaml:"cryostat,omitempty" json:"cryostat,omitempty"`
}

// HPGeEntry selects one detector from the metadata catalogue and
// positions it on the string. The offset runs from the centre of the
// liquid argon column to the p+ contact of the crystal.
type HPGeEntry struct {
	Name      string  `yaml:"name" json:"name"`
	Offset    float64 `yaml:"pplus_pos_from_lar_center" json:"pplus_pos_from_lar_center"`
	UID       *int    `yaml:"uid,omitempty" json:"uid,omitempty"`
	Enclosure bool    `yaml:"enclosure,omitempty" json:"enclosure,omitempty"`
}

// FiberShroudConfig describes the wavelength-shifting fiber barrel
// around the detector strings. The simplified mode collapses all
// fibers into one thin coated cylinder; the detailed mode builds
// per-module wedges read out by SiPM channels at both ends.
type FiberShroudConfig struct {
	Mode    string         `yaml:"mode,omitempty" json:"mode,omitempty"`
	Height  float64        `yaml:"height_in_mm,omitempty" json:"height_in_mm,omitempty"`
	Radius  float64        `yaml:"radius_in_mm,omitempty" json:"radius_in_mm,omitempty"`
	Offset  float64        `yaml:"center_pos_from_lar_center" json:"center_pos_from_lar_center"`
	UID     *int           `yaml:"uid,omitempty" json:"uid,omitempty"`
	Modules *ModulesConfig `yaml:"modules,omitempty" json:"modules,omitempty"`
}

// ModulesConfig tunes the detailed fiber mode: how many wedges, how
// they and their readout channels are named, and where the channel
// identifiers start.
type ModulesConfig struct {
	Count               int     `yaml:"count,omitempty" json:"count,omitempty"`
	NamePrefix          string  `yaml:"name_prefix,omitempty" json:"name_prefix,omitempty"`
	TPBThicknessNM      float64 `yaml:"tpb_thickness_nm,omitempty" json:"tpb_thickness_nm,omitempty"`
	ChannelTopPrefix    string  `yaml:"channel_top_prefix,omitempty" json:"channel_top_prefix,omitempty"`
	ChannelBottomPrefix string  `yaml:"channel_bottom_prefix,omitempty" json:"channel_bottom_prefix,omitempty"`
	BaseRawID           int     `yaml:"base_rawid,omitempty" json:"base_rawid,omitempty"`
}

// SourceConfig positions the calibration source capsule in the world
// frame.
type SourceConfig struct {
	Offset float64 `yaml:"z_pos_in_mm" json:"z_pos_in_mm"`
	Radius float64 `yaml:"radial_pos_in_mm,omitempty" json:"radial_pos_in_mm,omitempty"`
}

// CavernConfig sizes the rock dome above the experiment.
type CavernConfig struct {
	InnerRadius float64 `yaml:"inner_radius_in_mm" json:"inner_radius_in_mm"`
	OuterRadius float64 `yaml:"outer_radius_in_mm" json:"outer_radius_in_mm"`
}

// ConfigError reports a fatal problem with the geometry
// configuration, naming the offending key path.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Reason)
}

// Load reads a geometry configuration. The argument is either a path
// to a user-provided file or the name of a configuration shipped with
// the package, tried in that order.
func Load(name string) (*Config, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		embedded, embErr := builtinConfigs.ReadFile(path.Join("configs", name))
		if embErr != nil {
			return nil, fmt.Errorf("geometry config not found: %s", name)
		}
		raw = embedded
	}
	return Parse(raw, filepath.Ext(name))
}

// Parse decodes a geometry configuration. The extension selects the
// decoder; anything but .json is treated as yaml.
func Parse(raw []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse geometry config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse geometry config: %w", err)
		}
	}
	return &cfg, nil
}

// Merge overlays extra on base block by block. Blocks set in extra
// replace the corresponding block of base entirely; a nil extra
// returns base unchanged.
func Merge(base, extra *Config) *Config {
	if base == nil {
		base = &Config{}
	}
	if extra == nil {
		return base
	}
	out := *base
	if extra.HPGes != nil {
		out.HPGes = extra.HPGes
	}
	if extra.FiberShroud != nil {
		out.FiberShroud = extra.FiberShroud
	}
	if extra.Source != nil {
		out.Source = extra.Source
	}
	if extra.Cavern != nil {
		out.Cavern = extra.Cavern
	}
	if extra.Cryostat != nil {
		out.Cryostat = extra.Cryostat
	}
	return &out
}

// DefaultDimensions returns the cryostat dimension set shipped with
// the package.
func DefaultDimensions() (profile.Dimensions, error) {
	raw, err := builtinConfigs.ReadFile("configs/cryostat.yaml")
	if err != nil {
		return profile.Dimensions{}, fmt.Errorf("builtin cryostat dimensions: %w", err)
	}
	var dims profile.Dimensions
	if err := yaml.Unmarshal(raw, &dims); err != nil {
		return profile.Dimensions{}, fmt.Errorf("builtin cryostat dimensions: %w", err)
	}
	return dims, nil
}

// mergeDimensions overlays the nonzero fields of over onto base. A
// config may override single dimensions; everything it leaves at zero
// keeps the builtin value. Negative overrides pass through so that
// validation can report them.
func mergeDimensions(base, over profile.Dimensions) profile.Dimensions {
	merge := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	merge(&base.Inner.Radius, over.Inner.Radius)
	merge(&base.Inner.Upper.Thickness, over.Inner.Upper.Thickness)
	merge(&base.Inner.Upper.Height, over.Inner.Upper.Height)
	merge(&base.Inner.Lower.Thickness, over.Inner.Lower.Thickness)
	merge(&base.Inner.Lower.Height, over.Inner.Lower.Height)
	merge(&base.Outer.Radius, over.Outer.Radius)
	merge(&base.Outer.Height, over.Outer.Height)
	merge(&base.Outer.Thickness, over.Outer.Thickness)
	merge(&base.Top.Radius, over.Top.Radius)
	merge(&base.Top.Height, over.Top.Height)
	merge(&base.GasArgon.Height, over.GasArgon.Height)
	merge(&base.Lead.AirGap, over.Lead.AirGap)
	merge(&base.Lead.Thickness, over.Lead.Thickness)
	return base
}

// withDefaults returns a copy of the configuration with optional
// fields of the present blocks filled in. The receiver is not
// modified.
func (c *Config) withDefaults() *Config {
	out := *c
	if out.FiberShroud != nil {
		fs := *out.FiberShroud
		if fs.Mode == "" {
			fs.Mode = FiberSimplified
		}
		if fs.Height == 0 {
			fs.Height = DefaultShroudHeight
		}
		if fs.Radius == 0 {
			fs.Radius = DefaultShroudRadius
		}
		if fs.Mode == FiberDetailed {
			var mod ModulesConfig
			if fs.Modules != nil {
				mod = *fs.Modules
			}
			if mod.Count == 0 {
				mod.Count = DefaultModuleCount
			}
			if mod.NamePrefix == "" {
				mod.NamePrefix = DefaultModulePrefix
			}
			if mod.TPBThicknessNM == 0 {
				mod.TPBThicknessNM = DefaultTPBThicknessNM
			}
			if mod.ChannelTopPrefix == "" {
				mod.ChannelTopPrefix = DefaultChannelTop
			}
			if mod.ChannelBottomPrefix == "" {
				mod.ChannelBottomPrefix = DefaultChannelBottom
			}
			if mod.BaseRawID == 0 {
				mod.BaseRawID = DefaultBaseRawID
			}
			fs.Modules = &mod
		}
		out.FiberShroud = &fs
	}
	if out.Source != nil {
		src := *out.Source
		if src.Radius == 0 {
			src.Radius = DefaultSourceRadius
		}
		out.Source = &src
	}
	return &out
}

// Validate checks the configuration for problems that construction
// could only hit halfway through. It expects defaults to be applied
// already.
func (c *Config) Validate() error {
	for i, entry := range c.HPGes {
		if entry.Name == "" {
			return &ConfigError{
				Path:   fmt.Sprintf("hpges[%d].name", i),
				Reason: "missing detector name",
			}
		}
	}
	if fs := c.FiberShroud; fs != nil {
		if fs.Mode != FiberSimplified && fs.Mode != FiberDetailed {
			return &ConfigError{
				Path:   "fiber_shroud.mode",
				Reason: fmt.Sprintf("unknown mode %q", fs.Mode),
			}
		}
		if fs.Height <= 0 {
			return &ConfigError{Path: "fiber_shroud.height_in_mm", Reason: "must be positive"}
		}
		if fs.Radius <= 0 {
			return &ConfigError{Path: "fiber_shroud.radius_in_mm", Reason: "must be positive"}
		}
		if fs.Mode == FiberDetailed && fs.Modules.Count <= 0 {
			return &ConfigError{Path: "fiber_shroud.modules.count", Reason: "must be positive"}
		}
	}
	if src := c.Source; src != nil && src.Radius < 0 {
		return &ConfigError{Path: "source.radial_pos_in_mm", Reason: "must not be negative"}
	}
	if cav := c.Cavern; cav != nil {
		if cav.InnerRadius <= 0 {
			return &ConfigError{Path: "cavern.inner_radius_in_mm", Reason: "must be positive"}
		}
		if cav.OuterRadius <= cav.InnerRadius {
			return &ConfigError{
				Path:   "cavern.outer_radius_in_mm",
				Reason: "must exceed inner_radius_in_mm",
			}
		}
	}
	if c.Cryostat != nil {
		if err := c.Cryostat.Validate(); err != nil {
			return &ConfigError{Path: "cryostat", Reason: err.Error()}
		}
	}
	return nil
}
