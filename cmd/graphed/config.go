package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"graphed/config"
)

func configCmd(a *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("  %s\n\n", subtle.Sprint(flags.configPath))
			return toml.NewEncoder(os.Stdout).Encode(a.cfg)
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{replacesConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force)", path)
				}
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Printf("  %s wrote %s\n", statusIcon(true), path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
