// Package main runs the operator console: it asks for a badge password and
// then prepares labels for scanned serial numbers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/client/console"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/config"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/logger"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/station"
)

var (
	version   string
	buildDate string
)

func newRootCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:     "station",
		Short:   "Packing station operator console",
		Version: fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := options.Validate(); err != nil {
				return err
			}

			log := logger.New()
			if err := log.Init(options.LogLevel, logFile); err != nil {
				return err
			}
			defer func() { _ = log.Log.Sync() }()
			if options.Station == "" {
				options.Station, _ = os.Hostname()
			}
			log.Log.Info("console starting",
				zap.String("version", cmp.Or(version, "N/A")),
				zap.String("station", options.Station))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := station.New(ctx, options, log.Log)
			if err != nil {
				return err
			}
			defer st.Close()

			return console.NewTerminal(st.Auth, st.Labels, st.Session).Run(ctx)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&logFile, "log-file", "station.log", "file receiving the JSON log")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
