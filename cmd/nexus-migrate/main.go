package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/harness/nexus-migrate/config"
	"github.com/harness/nexus-migrate/internal/style"
	"github.com/harness/nexus-migrate/internal/terminal"
	"github.com/harness/nexus-migrate/internal/tui"
	"github.com/harness/nexus-migrate/module/migrate/types"

	"github.com/MakeNowJust/heredoc"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// PersistentPostRunE is skipped when a command fails
		_ = flushProfiling()
		termInfo := terminal.Detect(config.Global.NoColor)
		if termInfo.StderrIsTerminal && termInfo.ColorEnabled {
			fmt.Fprintln(os.Stderr, style.Error.Render("Error: "+err.Error()))
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(os.Stderr, style.Hint("Point --config at the migration YAML file."))
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nexus-migrate",
		Short:         "Copy artifacts from a Nexus 2 repository into Nexus 3",
		SilenceUsage:  true,
		SilenceErrors: true, //prevent duplicate printing of errors
		Long: heredoc.Doc(`
			nexus-migrate crawls the HTML listing of a Nexus 2 hosted repository and
			uploads every artifact the Nexus 3 destination does not have yet.

			Maven 2 and NuGet repositories are supported. Settings are read from a
			YAML file, see --config.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch config.Global.Output {
			case "table":
				pterm.EnableOutput()
			case "json":
				// keep stdout parseable
				pterm.DisableOutput()
			default:
				return fmt.Errorf("invalid output format %q, must be 'table' or 'json'", config.Global.Output)
			}

			termInfo := terminal.Detect(config.Global.NoColor)
			style.Init(termInfo.ColorEnabled)
			setupLogging(config.Global.Verbose, !termInfo.ColorEnabled)
			return initProfiling()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return flushProfiling()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&config.Global.ConfigPath, "config", "c", "config.yaml", "Path to configuration file")
	flags.StringVar(&config.Global.Format, "format", "", "Repository format, maven2 or nuget (overrides config)")
	flags.BoolVarP(&config.Global.Verbose, "verbose", "v", false, "Enable verbose logging to console")
	flags.BoolVar(&config.Global.NoColor, "no-color", false,
		"Disable colour output (also respects NO_COLOR env)")
	flags.StringVarP(&config.Global.Output, "output", "o", "table", "Format of the result, table or json")
	addProfilingFlags(flags)

	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(crawlCmd())
	rootCmd.AddCommand(versionCmd())

	// Apply styled help text when running in a colour-capable terminal
	style.Init(terminal.Detect(config.Global.NoColor).ColorEnabled)
	if helpTpl := tui.StyledHelpTemplate(); helpTpl != "" {
		rootCmd.SetUsageTemplate(helpTpl)
	}
	return rootCmd
}

// setupLogging installs the global logger. Without --verbose only error level
// events survive, and those are printed through pterm by the error hook.
func setupLogging(verbose, noColor bool) {
	if verbose {
		logWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    noColor,
		}
		log.Logger = zerolog.New(logWriter).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(io.Discard).Level(zerolog.ErrorLevel).Hook(types.ErrorHook{})
}

// loadConfig reads the config file and applies the command line overrides.
func loadConfig() (*types.Config, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Complete(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadSourceConfig is loadConfig for commands that never write to the
// destination.
func loadSourceConfig() (*types.Config, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.CompleteSource(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func readConfig() (*types.Config, error) {
	cfg, err := types.ReadConfig(config.Global.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg, config.Global)
	return cfg, nil
}

func applyOverrides(cfg *types.Config, flags config.GlobalFlags) {
	if flags.Format != "" {
		cfg.Format = types.RepositoryFormat(flags.Format)
	}
	if flags.Concurrency > 0 {
		cfg.Migration.Concurrency = flags.Concurrency
	}
	if flags.FailureMode != "" {
		cfg.Migration.FailureMode = types.FailureMode(flags.FailureMode)
	}
	if flags.TempDir != "" {
		cfg.Migration.TempDir = flags.TempDir
	}
}
