package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"scene-walker/internal/config"
	"scene-walker/internal/env"
	"scene-walker/internal/logger"
)

func init() {
	// raylib and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "walker:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := env.Load(".env"); err != nil {
		return err
	}
	configPath := flag.String("config", env.Lookup("CONFIG", ""), "config file (.yaml, .yml or .toml); default "+config.DefaultPath+" when present [WALKER_CONFIG]")
	variant := flag.String("variant", env.Lookup("VARIANT", ""), "preset to run without a config file: "+strings.Join(config.Variants(), ", ")+" [WALKER_VARIANT]")
	logLevel := flag.String("log-level", env.Lookup("LOG_LEVEL", ""), "override logging.level (debug, info, warn, error) [WALKER_LOG_LEVEL]")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *variant)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("starting", zap.String("variant", cfg.Variant), zap.String("camera", cfg.Camera.Mode),
		zap.String("shader", cfg.Shader.Name))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := newGame(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer g.Close()
	return g.Run(ctx)
}

// loadConfig picks, in order: the -config file, the -variant preset, config.DefaultPath if
// it exists, then the default preset.
func loadConfig(path, variant string) (config.Config, error) {
	if path != "" && variant != "" {
		return config.Config{}, errors.New("-config and -variant are exclusive; set variant inside the file")
	}
	if path != "" {
		return config.Load(path)
	}
	if variant != "" {
		return config.Preset(variant)
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.Load(config.DefaultPath)
	}
	return config.Default(), nil
}
