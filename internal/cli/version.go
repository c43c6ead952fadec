package cli

import (
	"fmt"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
)

const modulePath = "github.com/petar-djukic/foodblog"

var version = semver.Version{
	Major: 0,
	Minor: 3,
	Patch: 0,
	Build: semver.Commit(),
}

// Version returns the foodblog release.
func Version() semver.Version {
	return version
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the foodblog version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "foodblog v%s\nmodule: %s\n", version, modulePath)
			return nil
		},
	}
}
