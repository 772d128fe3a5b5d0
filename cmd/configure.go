package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/droverhq/drover-cli/client"
	"github.com/droverhq/drover-cli/utils"
)

// Set up drover-cli for a cluster
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set up host for drover usage",
	Long:  "",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.GetLogger()
		c := &Configure{
			l: &logger,
		}

		err := c.createConfig()
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create config")
		}
		err = c.promptConnection()
		if err != nil {
			logger.Fatal().Err(err).Msg("could not set connection details in config")
		}
		err = c.promptOutputFormat()
		if err != nil {
			logger.Fatal().Err(err).Msg("could not set output format in config")
		}
		c.probeMaster()

		return nil
	},
}

type Configure struct {
	l *zerolog.Logger
}

func (c *Configure) createConfig() error {
	configDir, err := utils.ConfigDir()
	if err != nil {
		return err
	}
	// check that the config folder exists - create if it doesn't
	_, err = os.Stat(configDir)
	if err != nil {
		c.l.Info().Msg("config folder doesn't exist, creating...")
		err = os.Mkdir(configDir, 0o755)
		if err != nil {
			c.l.Fatal().Err(err).Msg("could not create config folder")
		}
	}

	c.l.Info().Msg("checking for config...")
	_, err = os.OpenFile(filepath.Join(configDir, "drover_config.json"), 0, 0o644)
	if errors.Is(err, os.ErrNotExist) {
		c.l.Info().Msg("drover_config.json does not exist, creating template")
		// copy template, use viper to set programatically
		err = utils.CreateDroverConfig(filepath.Join(configDir, "drover_config.json"))
		if err != nil {
			c.l.Fatal().Err(err).Msg("could not create drover_config")
		}
	}
	return nil
}

func (c *Configure) promptConnection() error {
	if _, err := utils.InitDroverConfig(); err != nil {
		c.l.Fatal().Err(err).Msg("error initializing config")
	}

	hostPrompt := promptui.Prompt{
		Label: "Hostname of the drover master",
	}
	host, err := hostPrompt.Run()
	if err != nil {
		return err
	}

	portPrompt := promptui.Prompt{
		Label:   "Port the master listens on",
		Default: strconv.Itoa(client.DefaultPort),
		Validate: func(input string) error {
			_, err := strconv.Atoi(input)
			return err
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	userPrompt := promptui.Prompt{
		Label: "Username for the management API",
	}
	username, err := userPrompt.Run()
	if err != nil {
		return err
	}

	passPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
	}
	password, err := passPrompt.Run()
	if err != nil {
		return err
	}

	verifyPrompt := promptui.Select{
		Label: "Verify the master's TLS certificate? [Y/n]",
		Items: []string{"Y", "n"},
	}
	_, verify, err := verifyPrompt.Run()
	if err != nil {
		return err
	}

	caFile := ""
	if verify == "Y" {
		caPrompt := promptui.Prompt{
			Label: "Path to CA certificate bundle (empty for system roots)",
		}
		caFile, err = caPrompt.Run()
		if err != nil {
			return err
		}
	}

	viper.Set("connection.host", host)
	viper.Set("connection.port", port)
	viper.Set("connection.username", username)
	viper.Set("connection.password", password)
	viper.Set("connection.insecure", verify == "n")
	viper.Set("connection.ca_file", caFile)
	err = viper.WriteConfig()
	if err != nil {
		c.l.Fatal().Err(err).Msg("error writing config")
		return err
	}

	return nil
}

func (c *Configure) promptOutputFormat() error {
	prompt := promptui.Select{
		Label: "Default output format",
		Items: utils.ValidOutputFormats,
	}
	_, format, err := prompt.Run()
	if err != nil {
		return err
	}

	viper.Set("output_format", format)
	err = viper.WriteConfig()
	if err != nil {
		c.l.Fatal().Err(err).Msg("error writing config")
		return err
	}

	return nil
}

// probeMaster checks the saved connection details against the master. A
// failure leaves the config in place; the details can be fixed by running
// configure again.
func (c *Configure) probeMaster() {
	config, err := utils.InitDroverConfig()
	if err != nil {
		c.l.Fatal().Err(err).Msg("error initializing config")
	}

	opts := []client.Option{}
	if config.Connection.Insecure {
		opts = append(opts, client.WithInsecureTLS())
	}
	if config.Connection.CAFile != "" {
		opts = append(opts, client.WithCAFile(config.Connection.CAFile))
	}

	c.l.Info().Msg("checking connection to the drover master...")
	api, err := client.New(
		config.Connection.Host,
		config.Connection.Port,
		config.Connection.Username,
		config.Connection.Password,
		opts...,
	)
	if err != nil {
		c.l.Warn().Err(err).Msg("could not reach the drover master with the saved details. Fix them by running configure again.")
		return
	}
	c.l.Info().Msgf("connected to the drover master, protocol version %d", api.Version())

	fmt.Println("drover-cli is configured and ready to use.")
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
