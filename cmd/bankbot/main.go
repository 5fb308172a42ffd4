package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blinklabs-io/bankbot/internal/api"
	"github.com/blinklabs-io/bankbot/internal/coeff"
	"github.com/blinklabs-io/bankbot/internal/config"
	"github.com/blinklabs-io/bankbot/internal/engine"
	"github.com/blinklabs-io/bankbot/internal/ledger"
	"github.com/blinklabs-io/bankbot/internal/logging"
	"github.com/blinklabs-io/bankbot/internal/storage"
	"github.com/blinklabs-io/bankbot/internal/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "go.uber.org/automaxprocs"
)

const (
	programName = "bankbot"
)

var cmdlineFlags struct {
	configFile string
	version    bool
}

func main() {
	flag.StringVar(&cmdlineFlags.configFile, "config", "", "path to config file to load")
	flag.BoolVar(&cmdlineFlags.version, "version", false, "show version")
	flag.Parse()

	if cmdlineFlags.version {
		fmt.Printf("%s %s\n", programName, version.GetVersionString())
		os.Exit(0)
	}

	// Load config
	cfg, err := config.Load(cmdlineFlags.configFile)
	if err != nil {
		fmt.Printf("Failed to load config: %s\n", err)
		os.Exit(1)
	}

	// Configure logging
	logging.Configure()
	logger := logging.GetLogger()
	// Sync logger on exit
	defer func() {
		if err := logger.Sync(); err != nil {
			// We don't actually care about the error here, but we have to do something
			// to appease the linter
			return
		}
	}()

	// Open storage
	store := storage.GetStorage()
	if err := store.Load(); err != nil {
		logger.Fatalf("failed to load storage: %s", err)
	}

	// Wire up the message pipeline
	repo := ledger.NewRepository(store, cfg.Storage.ProcessedRetention)
	manager := ledger.NewManager(repo, coeff.NewProvider(cfg.CoefficientMap()))
	eng := engine.New(repo, manager)
	apiServer := &http.Server{
		Addr: fmt.Sprintf(
			"%s:%d",
			cfg.Ingest.ListenAddress,
			cfg.Ingest.ListenPort,
		),
		Handler: api.New(eng, repo).Handler(),
	}

	// Start debug listener
	if cfg.Debug.ListenPort > 0 {
		logger.Infof("starting debug listener on %s:%d", cfg.Debug.ListenAddress, cfg.Debug.ListenPort)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			err := http.ListenAndServe(fmt.Sprintf("%s:%d", cfg.Debug.ListenAddress, cfg.Debug.ListenPort), nil)
			if err != nil {
				logger.Fatalf("failed to start debug listener: %s", err)
			}
		}()
	}

	// Start ingest listener
	logger.Infof("starting ingest listener on %s", apiServer.Addr)
	go func() {
		err := apiServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start ingest listener: %s", err)
		}
	}()

	// Wait for a signal, then drain in-flight requests before closing the
	// store so no transaction is cut off mid-commit
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	logger.Infof("received signal %s, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("failed to drain ingest listener: %s", err)
	}
	eng.Stop()
	if err := store.Close(); err != nil {
		logger.Errorf("failed to close storage: %s", err)
	}
}
