package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion records the build information displayed by --version.
// main calls this with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the geomscarf CLI. The logger is attached to the
// context and reaches all commands via loggerFromContext; --verbose
// raises it to debug level.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:   "geomscarf",
		Short: "geomscarf constructs the experiment geometry for particle transport",
		Long: `geomscarf builds the hierarchical solid geometry of the experiment:
cryostat vessels, the liquid argon fill with its vapor gap, germanium
detector strings, the fiber shroud, calibration source and cavern.
The constructed volume tree can be inspected, rendered as a
cross-section sketch, or serialized to GDML for the transport engine.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("geomscarf %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newConstructCmd())
	root.AddCommand(newProfilesCmd())

	return root.ExecuteContext(ctx)
}
