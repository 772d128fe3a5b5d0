package cmd

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"k8s.io/utils/strings/slices"

	"github.com/droverhq/drover-cli/client"
	"github.com/droverhq/drover-cli/db"
	"github.com/droverhq/drover-cli/pkg/flags"
	"github.com/droverhq/drover-cli/utils"
)

var (
	droverConfigFile string
	outputFormat     string
)

var (
	rootCmd = &cobra.Command{
		Use:   "drover-cli",
		Short: "Command-line client for the drover cluster master",
		Long: ` ____   ____    ___   __     __ _____  ____
|  _ \ |  _ \  / _ \  \ \   / /| ____||  _ \
| | | || |_) || | | |  \ \ / / |  _|  | |_) |
| |_| ||  _ < | |_| |   \ V /  | |___ |  _ <
|____/ |_| \_\ \___/     \_/   |_____||_| \_\
                                             ` +
			"\n Instance and node management for drover clusters." +
			"\n Talks to the drover master over its management API.",
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&droverConfigFile, flags.ConfigFlag.Full, "", "path to drover config json file, including file name (ex. --config /Users/me/.drover/myconfig.json)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, flags.OutputFlag.Full, flags.OutputFlag.Short, "", "output format for list/get commands (table, json)")
}

func initConfig() {
	if droverConfigFile != "" {
		utils.SetConfigFile(droverConfigFile)
	}
}

// Runner carries everything a command needs to talk to the master. Built
// fresh per invocation; commands that never touch the master (configure)
// build their own state instead.
type Runner struct {
	cfg    *utils.DroverConfig
	logger *zerolog.Logger
	api    *client.Client
}

func buildRunner() *Runner {
	l := utils.GetLogger()

	config, err := utils.InitDroverConfig()
	if err != nil {
		l.Fatal().Err(err).Msg("could not set up config")
	}

	opts := []client.Option{client.WithLogger(l)}
	if config.Connection.Insecure {
		opts = append(opts, client.WithInsecureTLS())
	}
	if config.Connection.CAFile != "" {
		opts = append(opts, client.WithCAFile(config.Connection.CAFile))
	}

	api, err := client.New(
		config.Connection.Host,
		config.Connection.Port,
		config.Connection.Username,
		config.Connection.Password,
		opts...,
	)
	if err != nil {
		l.Fatal().Err(err).Msg("could not connect to drover master")
	}

	return &Runner{
		cfg:    config,
		logger: &l,
		api:    api,
	}
}

// outputFormat resolves the rendering for this invocation: the -o flag
// wins over the config file, and tables are the default.
func (r *Runner) outputFormat() string {
	format := outputFormat
	if format == "" {
		format = r.cfg.OutputFormat
	}
	if format == "" {
		return "table"
	}
	if !slices.Contains(utils.ValidOutputFormats, format) {
		r.logger.Fatal().Msgf("unknown output format %q, must be one of: %s", format, strings.Join(utils.ValidOutputFormats, ", "))
	}
	return format
}

// openLedger opens the local submission ledger at the configured path.
func (r *Runner) openLedger() (*db.DB, error) {
	return db.NewDB(r.cfg.JobDBPath)
}

// recordSubmission writes a ledger row for a submitted job. Ledger
// trouble never fails the command that submitted the job.
func (r *Runner) recordSubmission(op, target, jobID string) {
	if jobID == "" {
		return
	}
	ledger, err := r.openLedger()
	if err != nil {
		r.logger.Warn().Err(err).Msg("could not open job ledger")
		return
	}
	if _, err := ledger.RecordSubmission(op, target, jobID); err != nil {
		r.logger.Warn().Err(err).Msg("could not record submission")
	}
}
