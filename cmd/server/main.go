// Package main initializes and starts the packing station HTTP server,
// setting up configuration, logging, the credential file, the optional
// database, services and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/config"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/logger"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/server/handler/http"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/station"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, environment and config file options.
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	host, ip := systemInfo()
	if options.Station == "" {
		options.Station = host
	}
	zapLogger.Info("station starting",
		zap.String("version", cmp.Or(version, "N/A")),
		zap.String("host", host),
		zap.String("ip", ip),
		zap.String("station", options.Station),
		zap.String("config", options.Config),
	)

	if err := options.Validate(); err != nil {
		zapLogger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wire session, services and the optional PostgreSQL history.
	st, err := station.New(ctx, options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init station", zap.Error(err))
	}
	defer st.Close()

	// Create HTTP handlers and the router.
	authHandler := &http.AuthHandler{AuthService: st.Auth, Session: st.Session}
	labelHandler := &http.LabelHandler{LabelService: st.Labels}
	auditHandler := &http.AuditHandler{AuditService: st.Audit}
	router := http.NewRouter(authHandler, labelHandler, auditHandler, st.Session, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

// systemInfo returns the host name and its first resolved address.
func systemInfo() (host, ip string) {
	host, err := os.Hostname()
	if err != nil {
		return "unknown", "unknown"
	}
	addrs, err := net.LookupHost(host)
	if err != nil || len(addrs) == 0 {
		return host, "unknown"
	}
	return host, addrs[0]
}
