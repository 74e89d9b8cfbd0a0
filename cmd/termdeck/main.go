package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/lixenwraith/termdeck/config"
	"github.com/lixenwraith/termdeck/engine"
	"github.com/lixenwraith/termdeck/terminal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	configPath  = flag.String("config", "termdeck.yaml", "YAML config file; missing file uses defaults")
	fpsFlag     = flag.Float64("fps", 60, "Target frame rate, <= 0 runs uncapped")
	backendFlag = flag.String("backend", config.BackendANSI, "Output backend: ansi, tcell")
	colorFlag   = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	debugFlag   = flag.Bool("debug", false, "Write a debug log under the configured log dir")
	metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	framesFlag  = flag.Int("frames", 0, "Exit after this many frames, 0 runs until quit")
)

func main() {
	// Panic recovery: the terminal must be usable after a crash
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMDECK CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdeck: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Log); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "termdeck: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file then applies explicitly set flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			cfg.FPS = *fpsFlag
		case "backend":
			cfg.Terminal.Backend = *backendFlag
		case "color":
			cfg.Terminal.ColorMode = *colorFlag
		case "debug":
			cfg.Log.Enabled = *debugFlag
		case "metrics-addr":
			cfg.Metrics.Addr = *metricsAddr
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, reg)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
			defer done()
			srv.Shutdown(shutdownCtx)
		}()
	}

	mode, err := terminal.ParseColorMode(cfg.Terminal.ColorMode)
	if err != nil {
		return err
	}

	fe, err := openFrontend(cfg.Terminal.Backend, mode)
	if err != nil {
		return err
	}
	defer fe.Close()

	cols, rows := fe.Size()
	log.Printf("backend %s, color %s, %dx%d, fps %.0f", cfg.Terminal.Backend, mode, cols, rows, cfg.FPS)

	eng := engine.New(cfg.Engine(cols, rows), fe.Sink(),
		engine.WithRegisterer(reg),
		engine.WithLogger(log.Default()),
		engine.WithFilters(cfg.Filters()...),
	)

	a := newApp(eng, fe.Events(), *framesFlag)
	a.setBlend(cfg.BlendMode())

	if err := eng.Run(ctx, a); err != nil {
		return err
	}
	log.Printf("exit after %d frames", a.frames)
	return nil
}

// serveMetrics exposes reg on /metrics in the background
func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	log.Printf("metrics on %s/metrics", addr)
	return srv
}
