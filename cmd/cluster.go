package cmd

import (
	"github.com/spf13/cobra"

	"github.com/droverhq/drover-cli/pkg/flags"
)

var dryRun bool

// Parent cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Inspect and manage cluster-wide state",
	Args:  cobra.ArbitraryArgs,
}

var clusterInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cluster-wide configuration and state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		info, err := r.api.GetInfo()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not get cluster info")
		}
		if err := r.printResource(info); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render cluster info")
		}
	},
}

var clusterRedistributeCmd = &cobra.Command{
	Use:   "redistribute-config",
	Short: "Push the cluster configuration out to all nodes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.RedistributeConfig()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not redistribute config")
		}
		r.ackJob("cluster redistribute-config", "cluster", jobID)
	},
}

var clusterTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List cluster tags",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		tags, err := r.api.GetClusterTags()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not get cluster tags")
		}
		if err := r.printStrings(tags); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render cluster tags")
		}
	},
}

var clusterAddTagsCmd = &cobra.Command{
	Use:   "add-tags TAG...",
	Short: "Add tags to the cluster",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.AddClusterTags(args, dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not add cluster tags")
		}
		r.ackJob("cluster add-tags", "cluster", jobID)
	},
}

var clusterRemoveTagsCmd = &cobra.Command{
	Use:   "remove-tags TAG...",
	Short: "Remove tags from the cluster",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.DeleteClusterTags(args, dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not remove cluster tags")
		}
		r.ackJob("cluster remove-tags", "cluster", jobID)
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)
	clusterCmd.AddCommand(clusterInfoCmd)
	clusterCmd.AddCommand(clusterRedistributeCmd)
	clusterCmd.AddCommand(clusterTagsCmd)
	clusterCmd.AddCommand(clusterAddTagsCmd)
	clusterCmd.AddCommand(clusterRemoveTagsCmd)

	clusterAddTagsCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")
	clusterRemoveTagsCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")
}
