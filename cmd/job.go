package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/droverhq/drover-cli/client"
	"github.com/droverhq/drover-cli/pkg/flags"
)

var (
	watchInterval time.Duration
	purgeHistory  bool
)

// the jobs listing carries ids and uris only; job get has the full record
var jobListColumns = []string{"id", "uri"}

// Parent job command
var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect jobs queued on the master",
	Args:  cobra.ArbitraryArgs,
}

var jobListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List jobs on the master",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobs, err := r.api.GetJobs()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not list jobs")
		}
		if err := r.printResourceList(jobs, jobListColumns); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render jobs")
		}
	},
}

var jobGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		job, err := r.api.GetJob(args[0])
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not get job")
		}
		if err := r.printResource(job); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render job")
		}
	},
}

var jobCancelCmd = &cobra.Command{
	Use:   "cancel ID",
	Short: "Cancel a queued or waiting job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		reply, err := r.api.CancelJob(args[0], dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not cancel job")
		}
		fmt.Println(reply)
	},
}

var jobWatchCmd = &cobra.Command{
	Use:   "watch ID",
	Short: "Poll a job until it reaches a final status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		last := ""
		for {
			job, err := r.api.GetJob(args[0])
			if err != nil {
				r.logger.Fatal().Err(err).Msg("could not get job")
			}
			status := job.GetString("status")
			if status != last {
				fmt.Printf("job %s: %s\n", args[0], status)
				last = status
			}
			if client.JobFinished(status) {
				r.updateSubmission(args[0], status)
				if status != client.JobStatusSuccess {
					r.logger.Fatal().Msgf("job %s ended with status %s", args[0], status)
				}
				return
			}
			time.Sleep(watchInterval)
		}
	},
}

var jobHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show jobs submitted from this machine",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		ledger, err := r.openLedger()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not open job ledger")
		}

		if purgeHistory {
			if err := ledger.PurgeSubmissions(); err != nil {
				r.logger.Fatal().Err(err).Msg("could not purge job ledger")
			}
			fmt.Println("Job history purged")
			return
		}

		subs, err := ledger.GetSubmissions()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not read job ledger")
		}

		if r.outputFormat() == "json" {
			if err := printJSON(subs); err != nil {
				r.logger.Fatal().Err(err).Msg("could not render job history")
			}
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Submitted", "Op", "Target", "Job", "Status"})
		for _, s := range subs {
			table.Append([]string{
				s.CreatedAt.Format(time.RFC3339),
				s.Op,
				s.Target,
				s.JobID,
				s.Status,
			})
		}
		table.Render()
	},
}

// updateSubmission stores a job's final status in the ledger. Jobs that
// were not submitted from this machine have no row to update.
func (r *Runner) updateSubmission(jobID, status string) {
	ledger, err := r.openLedger()
	if err != nil {
		r.logger.Warn().Err(err).Msg("could not open job ledger")
		return
	}
	if err := ledger.UpdateSubmissionStatus(jobID, status); err != nil {
		r.logger.Warn().Err(err).Msg("could not update submission status")
	}
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(jobListCmd)
	jobCmd.AddCommand(jobGetCmd)
	jobCmd.AddCommand(jobCancelCmd)
	jobCmd.AddCommand(jobWatchCmd)
	jobCmd.AddCommand(jobHistoryCmd)

	jobCancelCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the cancellation in dry-run mode")
	jobWatchCmd.Flags().DurationVar(&watchInterval, flags.IntervalFlag.Full, 5*time.Second, "how often to poll the master")
	jobHistoryCmd.Flags().BoolVar(&purgeHistory, flags.PurgeFlag.Full, false, "clear the local job history")
}
