package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/northbeam/website/internal/config"
	"github.com/northbeam/website/pkg/logging"
)

// app is the state shared by every subcommand once flags are resolved.
type app struct {
	cfgFile string
	cfg     config.Config
	logger  *logging.SlogLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "northbeam",
		Short:             "Northbeam Digital website server",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.configure,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./northbeam.yaml)")
	config.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(a),
		newWakeCmd(a),
		newRoutesCmd(a),
	)
	return root
}

func (a *app) configure(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags(), a.cfgFile, ".")
	if err != nil {
		return err
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Debug("configuration loaded",
		logging.String("addr", cfg.Addr),
		logging.String("log_level", cfg.LogLevel),
		logging.Bool("dev", cfg.Dev),
	)

	a.cfg = cfg
	a.logger = logger
	return nil
}
