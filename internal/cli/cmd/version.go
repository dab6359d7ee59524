package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reklai/harpoon-telescope/internal/domain/build"
)

var (
	buildInfo   build.Info
	versionJSON bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if versionJSON {
			return printJSON(buildInfo)
		}
		fmt.Println(buildInfo.String())
		fmt.Println(build.RepoURL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output as JSON")
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
