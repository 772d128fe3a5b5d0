package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover-cli/utils"
)

// used in main.go to set version info
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the client version and the master's protocol version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("drover-cli %s\n", rootCmd.Version)

		// only ask the master when a config is in place
		if _, err := utils.InitDroverConfig(); err != nil {
			return
		}
		r := buildRunner()
		fmt.Printf("master protocol version %d\n", r.api.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
