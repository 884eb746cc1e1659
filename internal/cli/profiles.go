package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scarf-exp/geomscarf/pkg/assembly"
)

// newProfilesCmd renders the cryostat cross-section without building
// the full setup.
func newProfilesCmd() *cobra.Command {
	var (
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Render the cryostat cross-section sketch",
		Long: `Render the cryostat profiles to an SVG sketch.

Only the cryostat block of the configuration is used, so no detector
metadata is required. The sketch shows the vessel walls, the argon
fill, the vapor gap, lid and shield as layered cut profiles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			sketch := &assembly.Config{}
			if cfg != nil {
				sketch.Cryostat = cfg.Cryostat
			}

			b := &assembly.Builder{
				ProfileSVGPath: output,
				Logger:         logger,
			}
			if _, err := b.Construct(sketch); err != nil {
				return fmt.Errorf("render profiles: %w", err)
			}
			logger.Info("wrote profile sketch", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "geometry configuration (yaml, json, lisp)")
	cmd.Flags().StringVarP(&output, "output", "o", "profiles.svg", "output SVG file")

	return cmd
}
