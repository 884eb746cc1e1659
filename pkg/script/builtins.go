package script

import (
	"fmt"
	"slices"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/scarf-exp/geomscarf/pkg/assembly"
	"github.com/scarf-exp/geomscarf/pkg/profile"
)

// registerBuiltins installs the geometry declaration forms. Each form
// fills its block of cfg during evaluation; the resulting
// configuration goes through the same validation as one loaded from
// YAML, so the builtins only check shape, not values.
func registerBuiltins(env *zygo.Zlisp, cfg *assembly.Config) {

	// (cryostat :inner-radius 450 :gas-argon-height 150 ...)
	// Named dimensions override the builtin defaults, the rest keep
	// their values.
	env.AddFunction("cryostat", func(env *zygo.Zlisp, name string, raw []zygo.Sexp) (zygo.Sexp, error) {
		if cfg.Cryostat != nil {
			return zygo.SexpNull, fmt.Errorf("cryostat: already declared")
		}
		pa := parseArgs(raw)
		dims := &profile.Dimensions{}
		fields := map[string]*float64{
			"inner-radius":          &dims.Inner.Radius,
			"inner-upper-thickness": &dims.Inner.Upper.Thickness,
			"inner-upper-height":    &dims.Inner.Upper.Height,
			"inner-lower-thickness": &dims.Inner.Lower.Thickness,
			"inner-lower-height":    &dims.Inner.Lower.Height,
			"outer-radius":          &dims.Outer.Radius,
			"outer-height":          &dims.Outer.Height,
			"outer-thickness":       &dims.Outer.Thickness,
			"top-radius":            &dims.Top.Radius,
			"top-height":            &dims.Top.Height,
			"gas-argon-height":      &dims.GasArgon.Height,
			"lead-air-gap":          &dims.Lead.AirGap,
			"lead-thickness":        &dims.Lead.Thickness,
		}
		for key, val := range pa.kw {
			dst, ok := fields[key]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("cryostat: unknown dimension :%s", key)
			}
			f, err := toFloat(val)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cryostat: %s: %w", key, err)
			}
			*dst = f
		}
		cfg.Cryostat = dims
		return zygo.SexpNull, nil
	})

	// (hpge "V09999A" :offset 120 :uid 7 :enclosure true)
	// Repeatable; each call appends one detector to the string.
	env.AddFunction("hpge", func(env *zygo.Zlisp, name string, raw []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(raw)
		if err := rejectUnknown("hpge", pa, "offset", "uid", "enclosure"); err != nil {
			return zygo.SexpNull, err
		}
		if len(pa.pos) != 1 {
			return zygo.SexpNull, fmt.Errorf("hpge: expected a detector name")
		}
		detName, err := toString(pa.pos[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("hpge: name: %w", err)
		}

		entry := assembly.HPGeEntry{Name: detName}
		if v, ok := pa.kw["offset"]; ok {
			if entry.Offset, err = toFloat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("hpge %s: offset: %w", detName, err)
			}
		}
		if v, ok := pa.kw["uid"]; ok {
			uid, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hpge %s: uid: %w", detName, err)
			}
			entry.UID = &uid
		}
		if v, ok := pa.kw["enclosure"]; ok {
			if entry.Enclosure, err = toBool(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("hpge %s: enclosure: %w", detName, err)
			}
		}
		cfg.HPGes = append(cfg.HPGes, entry)
		return zygo.SexpNull, nil
	})

	// (source :offset 150 :radius 100)
	env.AddFunction("source", func(env *zygo.Zlisp, name string, raw []zygo.Sexp) (zygo.Sexp, error) {
		if cfg.Source != nil {
			return zygo.SexpNull, fmt.Errorf("source: already declared")
		}
		pa := parseArgs(raw)
		if err := rejectUnknown("source", pa, "offset", "radius"); err != nil {
			return zygo.SexpNull, err
		}
		src := &assembly.SourceConfig{}
		var err error
		if v, ok := pa.kw["offset"]; ok {
			if src.Offset, err = toFloat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("source: offset: %w", err)
			}
		}
		if v, ok := pa.kw["radius"]; ok {
			if src.Radius, err = toFloat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("source: radius: %w", err)
			}
		}
		cfg.Source = src
		return zygo.SexpNull, nil
	})

	// (fiber-shroud :mode :detailed :height 1000 :radius 115 :offset 0
	//               :uid 100 :modules 6)
	// The preprocessor rewrites the hyphen, so the form registers
	// under fiber_shroud.
	env.AddFunction("fiber_shroud", func(env *zygo.Zlisp, name string, raw []zygo.Sexp) (zygo.Sexp, error) {
		if cfg.FiberShroud != nil {
			return zygo.SexpNull, fmt.Errorf("fiber-shroud: already declared")
		}
		pa := parseArgs(raw)
		if err := rejectUnknown("fiber-shroud", pa, "mode", "height", "radius", "offset", "uid", "modules"); err != nil {
			return zygo.SexpNull, err
		}
		fs := &assembly.FiberShroudConfig{}
		var err error
		if v, ok := pa.kw["mode"]; ok {
			if fs.Mode, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("fiber-shroud: mode: %w", err)
			}
		}
		if v, ok := pa.kw["height"]; ok {
			if fs.Height, err = toFloat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("fiber-shroud: height: %w", err)
			}
		}
		if v, ok := pa.kw["radius"]; ok {
			if fs.Radius, err = toFloat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("fiber-shroud: radius: %w", err)
			}
		}
		if v, ok := pa.kw["offset"]; ok {
			if fs.Offset, err = toFloat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("fiber-shroud: offset: %w", err)
			}
		}
		if v, ok := pa.kw["uid"]; ok {
			uid, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fiber-shroud: uid: %w", err)
			}
			fs.UID = &uid
		}
		if v, ok := pa.kw["modules"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fiber-shroud: modules: %w", err)
			}
			fs.Modules = &assembly.ModulesConfig{Count: n}
		}
		cfg.FiberShroud = fs
		return zygo.SexpNull, nil
	})

	// (cavern :inner-radius 10000 :outer-radius 20000)
	env.AddFunction("cavern", func(env *zygo.Zlisp, name string, raw []zygo.Sexp) (zygo.Sexp, error) {
		if cfg.Cavern != nil {
			return zygo.SexpNull, fmt.Errorf("cavern: already declared")
		}
		pa := parseArgs(raw)
		if err := rejectUnknown("cavern", pa, "inner-radius", "outer-radius"); err != nil {
			return zygo.SexpNull, err
		}
		cav := &assembly.CavernConfig{}
		var err error
		if v, ok := pa.kw["inner-radius"]; ok {
			if cav.InnerRadius, err = toFloat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cavern: inner-radius: %w", err)
			}
		}
		if v, ok := pa.kw["outer-radius"]; ok {
			if cav.OuterRadius, err = toFloat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cavern: outer-radius: %w", err)
			}
		}
		cfg.Cavern = cav
		return zygo.SexpNull, nil
	})
}

// rejectUnknown fails on keyword options no form defines, so typos in
// scripts surface instead of being dropped.
func rejectUnknown(form string, pa args, known ...string) error {
	for key := range pa.kw {
		if !slices.Contains(known, key) {
			return fmt.Errorf("%s: unknown option :%s", form, key)
		}
	}
	return nil
}
