package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"graphed/config"
	"graphed/logging"
)

var version = "0.3.0"

// replacesConfig marks commands that run on the default config when the
// config file cannot be loaded.
const replacesConfig = "replaces-config"

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// app is what every subcommand runs with once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	var flags globalFlags
	a := &app{}

	root := &cobra.Command{
		Use:           "graphed",
		Short:         "Node graph editor sessions",
		Long:          brand.Sprint("graphed") + ": create, check and convert saved node graph editor sessions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				if _, ok := cmd.Annotations[replacesConfig]; !ok {
					return err
				}
				// The command is about to overwrite the broken file.
				cfg = config.Default()
			}
			if flags.logLevel != "" {
				cfg.Log.Level = flags.logLevel
			}
			if flags.logFormat != "" {
				cfg.Log.Format = flags.logFormat
			}
			a.cfg = cfg
			a.logger = logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
			return nil
		},
	}
	root.SetVersionTemplate("graphed {{ .Version }}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.DefaultPath(), "Config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text, json")

	root.AddCommand(
		newCmd(a),
		checkCmd(a),
		convertCmd(a),
		infoCmd(a),
		configCmd(a, &flags),
	)
	return root
}
