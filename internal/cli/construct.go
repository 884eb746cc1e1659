package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scarf-exp/geomscarf/pkg/assembly"
	"github.com/scarf-exp/geomscarf/pkg/gdml"
	"github.com/scarf-exp/geomscarf/pkg/geom"
	"github.com/scarf-exp/geomscarf/pkg/script"
	"github.com/scarf-exp/geomscarf/pkg/tessellate"
)

// newConstructCmd builds geometry from a configuration and reports it.
func newConstructCmd() *cobra.Command {
	var (
		configPath string
		publicData bool
		gdmlOut    string
		svgOut     string
		meshOut    string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "construct",
		Short: "Construct the geometry and print its volume tree",
		Long: `Construct the full geometry described by a configuration file.

The configuration may be YAML, JSON or a Lisp script (.lisp/.zy).
Without a config the builtin default setup is constructed: the bare
cryostat with its argon fill. The volume tree and the detector channel
table go to stdout; --gdml, --profiles and --meshes write the
serialized geometry, the cross-section sketch and the visualization
meshes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			b := &assembly.Builder{
				PublicData: publicData,
				Logger:     logger,
			}
			if svgOut != "" && !dryRun {
				b.ProfileSVGPath = svgOut
			}

			prog := newProgress(logger)
			reg, err := b.Construct(cfg)
			if err != nil {
				return fmt.Errorf("construct geometry: %w", err)
			}
			prog.done(fmt.Sprintf("Constructed %d volumes", len(reg.PhysicalVolumes())))

			if gdmlOut != "" && !dryRun {
				if err := gdml.WriteFile(gdmlOut, reg); err != nil {
					return fmt.Errorf("write %s: %w", gdmlOut, err)
				}
				logger.Info("wrote geometry description", "path", gdmlOut)
			}
			if meshOut != "" && !dryRun {
				meshes, err := tessellate.Tessellate(reg)
				if err != nil {
					return fmt.Errorf("tessellate geometry: %w", err)
				}
				if err := tessellate.WriteFile(meshOut, meshes); err != nil {
					return fmt.Errorf("write %s: %w", meshOut, err)
				}
				logger.Info("wrote visualization meshes", "path", meshOut, "meshes", len(meshes))
			}

			out := cmd.OutOrStdout()
			printTree(out, reg)
			printDetectors(out, reg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "geometry configuration (yaml, json, lisp)")
	cmd.Flags().BoolVar(&publicData, "public-data", false, "construct from the bundled sample records")
	cmd.Flags().StringVar(&gdmlOut, "gdml", "", "write the geometry description to this file")
	cmd.Flags().StringVar(&svgOut, "profiles", "", "write the cryostat cross-section sketch to this file")
	cmd.Flags().StringVar(&meshOut, "meshes", "", "write visualization meshes as JSON to this file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "construct and report, write no files")

	return cmd
}

// loadConfig reads a geometry configuration, dispatching on the file
// extension. Lisp scripts evaluate in the sandboxed engine. An empty
// path selects the builtin default geometry.
func loadConfig(path string) (*assembly.Config, error) {
	if path == "" {
		return nil, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lisp", ".zy":
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read script %s: %w", path, err)
		}
		cfg, err := script.Evaluate(string(src))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	default:
		return assembly.Load(path)
	}
}

// printTree writes the placement hierarchy, one volume per line.
func printTree(w io.Writer, reg *geom.Registry) {
	world := reg.World()
	if world == nil {
		return
	}
	children := make(map[string][]*geom.PhysicalVolume)
	for _, pv := range reg.PhysicalVolumes() {
		children[pv.Mother.Name] = append(children[pv.Mother.Name], pv)
	}

	fmt.Fprintf(w, "%s (%s)\n", world.Name, world.Material.Name)
	var walk func(lv *geom.LogicalVolume, depth int)
	walk = func(lv *geom.LogicalVolume, depth int) {
		for _, pv := range children[lv.Name] {
			pos := fmt.Sprintf("z=%g", pv.Translation.Z)
			if pv.Translation.X != 0 || pv.Translation.Y != 0 {
				pos = fmt.Sprintf("at (%g, %g, %g)",
					pv.Translation.X, pv.Translation.Y, pv.Translation.Z)
			}
			tag := ""
			if pv.Detector != nil {
				tag = fmt.Sprintf("  [%s %d]", pv.Detector.Kind, pv.Detector.UID)
			}
			fmt.Fprintf(w, "%s%s (%s) %s%s\n",
				strings.Repeat("  ", depth+1), pv.Name, pv.Volume.Material.Name, pos, tag)
			walk(pv.Volume, depth+1)
		}
	}
	walk(world, 0)
}

// printDetectors writes the channel table for tagged placements.
func printDetectors(w io.Writer, reg *geom.Registry) {
	var tagged []*geom.PhysicalVolume
	for _, pv := range reg.PhysicalVolumes() {
		if pv.Detector != nil {
			tagged = append(tagged, pv)
		}
	}
	if len(tagged) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%-6s %-13s %s\n", "UID", "KIND", "VOLUME")
	for _, pv := range tagged {
		fmt.Fprintf(w, "%-6d %-13s %s\n", pv.Detector.UID, pv.Detector.Kind, pv.Name)
	}
}
