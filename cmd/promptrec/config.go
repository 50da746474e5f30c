package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"promptrec/pkg/config"
	"promptrec/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage promptrec configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (PROMPTREC_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'promptrec.yaml'
unless a different path is specified with the --config flag.`,
	RunE: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values`,
	RunE: runConfigShow,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Audio format values
  - Output and log path accessibility`,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

const exampleConfig = `# promptrec configuration file
#
# Every option can also be set with an environment variable prefixed with
# PROMPTREC_, for example PROMPTREC_OUTPUT_DIR or PROMPTREC_LOG_LEVEL.

# Expected format of recordings. Imported clips that differ are stored
# with a warning.
audio:
  # Samples per second
  sample_rate: 16000

  # 1 for mono, 2 for stereo
  channels: 1

  # 8, 16, 24 or 32
  bit_depth: 16

# Where recordings and progress files are kept
output:
  # Each script gets its own directory below this one, named after the
  # script file without its extension
  base_directory: "./recordings"

  # Name of the progress file inside each project directory
  progress_file: "progress.json"

  # Create project directories when they do not exist
  create_directories: true

# Desktop notifications
notifications:
  enabled: true

  # Notify when the last prompt of a script has been passed
  on_complete: true

# Logging configuration
logging:
  # Log level: debug, info, warn, error, disabled
  level: "info"

  # Log file path (optional)
  # Leave empty to log to stderr only
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = "promptrec.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s (remove it first to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	ui.PrintPlain("\nNext steps:")
	ui.PrintPlain("1. Adjust the audio format and output directory")
	ui.PrintPlain("2. Run 'promptrec config validate' to check the configuration")
	ui.PrintPlain("3. Run 'promptrec status <script>' to open a project")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	ui.PrintPlain("")
	ui.PrintPlain(string(data))

	ui.PrintPlain("Configuration sources (in order of priority):")
	ui.PrintPlain("1. Command line flags")
	ui.PrintPlain("2. Environment variables (PROMPTREC_*)")
	if path := resolvedConfigFile(); path != "" {
		ui.PrintPlain("3. Configuration file: " + path)
	} else {
		ui.PrintPlain("3. Configuration file: (not found)")
	}
	ui.PrintPlain("4. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := resolvedConfigFile()
	if path == "" {
		return fmt.Errorf("no configuration file found; specify one with --config")
	}

	ui.PrintInfo("Validating configuration", path)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var problems []string
	if cfg.Output.CreateDirectories {
		if err := os.MkdirAll(cfg.Output.BaseDirectory, 0755); err != nil {
			problems = append(problems, fmt.Sprintf("cannot create output directory: %v", err))
		}
	} else if _, err := os.Stat(cfg.Output.BaseDirectory); err != nil {
		problems = append(problems, fmt.Sprintf("output directory is not accessible: %v", err))
	}

	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			problems = append(problems, fmt.Sprintf("cannot create log directory: %v", err))
		}
	}

	if len(problems) > 0 {
		ui.PrintError("Configuration has errors:")
		for _, p := range problems {
			ui.PrintError("  - " + p)
		}
		return fmt.Errorf("configuration is invalid")
	}

	ui.PrintSuccess("Configuration is valid")

	ui.PrintPlain("\nConfiguration summary:")
	ui.PrintPlain(fmt.Sprintf("  Output directory: %s", cfg.Output.BaseDirectory))
	ui.PrintPlain(fmt.Sprintf("  Progress file: %s", cfg.Output.ProgressFile))
	ui.PrintPlain(fmt.Sprintf("  Audio: %d Hz, %d channel(s), %d-bit",
		cfg.Audio.SampleRate, cfg.Audio.Channels, cfg.Audio.BitDepth))
	ui.PrintPlain(fmt.Sprintf("  Log level: %s", cfg.Logging.Level))
	return nil
}

func resolvedConfigFile() string {
	if configFile != "" {
		return configFile
	}
	return config.FindConfigFile()
}
