package cmd

import (
	"github.com/spf13/cobra"
)

var osCmd = &cobra.Command{
	Use:   "os",
	Short: "Operating system definitions on the cluster",
	Args:  cobra.ArbitraryArgs,
}

var osListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List operating systems installable on the cluster",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		oses, err := r.api.GetOperatingSystems()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not list operating systems")
		}
		if err := r.printStrings(oses); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render operating systems")
		}
	},
}

func init() {
	rootCmd.AddCommand(osCmd)
	osCmd.AddCommand(osListCmd)
}
