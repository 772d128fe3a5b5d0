package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/viper"
	"k8s.io/utils/strings/slices"
)

var ValidOutputFormats = []string{
	"table",
	"json",
}

type DroverConfig struct {
	Connection Connection `json:"connection" mapstructure:"connection"`
	// rendering used by list/get commands unless -o overrides it
	OutputFormat string `json:"output_format" mapstructure:"output_format"`
	// where the CLI keeps its submission ledger; empty means the default
	// next to the config file
	JobDBPath string `json:"job_db_path" mapstructure:"job_db_path"`
}

type Connection struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Insecure bool   `json:"insecure" mapstructure:"insecure"`
	CAFile   string `json:"ca_file" mapstructure:"ca_file"`
}

var configFile string

// SetConfigFile overrides the search path with an explicit config file.
func SetConfigFile(path string) {
	configFile = path
}

// ConfigDir returns the directory drover-cli keeps its state in. When run
// under sudo the invoking user's home wins over root's.
func ConfigDir() (string, error) {
	username := os.Getenv("SUDO_USER")
	if username == "" {
		username = os.Getenv("USER")
	}
	if username != "" {
		if u, err := user.Lookup(username); err == nil {
			return filepath.Join(u.HomeDir, ".drover"), nil
		}
	}
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homedir, ".drover"), nil
}

func InitDroverConfig() (*DroverConfig, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		viper.AddConfigPath(dir)
		viper.SetConfigType("json")
		// dev environments keep a separate config
		if os.Getenv("DROVER_ENV") == "dev" {
			viper.SetConfigName("drover_config_dev")
		} else {
			viper.SetConfigName("drover_config")
		}
	}

	viper.AutomaticEnv()

	var config DroverConfig
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error loading config file: %v. Make sure that config exists and that it's formatted correctly!", err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := isOutputFormatValid(config); err != nil {
		return nil, err
	}

	return &config, nil
}

func isOutputFormatValid(config DroverConfig) error {
	if config.OutputFormat == "" {
		return nil
	}
	if !slices.Contains(ValidOutputFormats, config.OutputFormat) {
		return fmt.Errorf("invalid output format %q, must be one of %v", config.OutputFormat, ValidOutputFormats)
	}
	return nil
}

// CreateDroverConfig writes a placeholder config for the configure flow to
// fill in.
func CreateDroverConfig(path string) error {
	sc := &DroverConfig{
		Connection: Connection{
			Host: "master.example.com",
			Port: 5080,
		},
		OutputFormat: "table",
	}

	b, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("err: %v, could not marshal config struct to file", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("err: %v, could not create config directory", err)
	}
	err = os.WriteFile(path, b, 0o644)
	if err != nil {
		return fmt.Errorf("err: %v, could not write file to path %s", err, path)
	}

	return err
}
