package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/panes/internal/app"
	"github.com/Gaurav-Gosain/panes/internal/config"
	"github.com/Gaurav-Gosain/panes/internal/input"
	"github.com/Gaurav-Gosain/panes/internal/observability"
	"github.com/Gaurav-Gosain/panes/internal/state"
	"go.uber.org/zap"
)

// filterMouseMotion drops pointer motion unless a handle is being dragged.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	m, ok := model.(*app.Model)
	if !ok || m.MouseDragging {
		return msg
	}
	return nil
}

// loadConfig reads --config when given, the user config otherwise, and
// applies the command line overrides.
func loadConfig() (*config.UserConfig, error) {
	var (
		userConfig *config.UserConfig
		err        error
	)
	if configFile != "" {
		var warnings []config.ValidationError
		userConfig, warnings, err = config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		for _, warn := range warnings {
			fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
		}
	} else {
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			log.Printf("Warning: Failed to load config, using defaults: %v", err)
			userConfig = config.DefaultConfig()
		}
	}

	level := logLevel
	if debugMode {
		level = "debug"
	}
	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:    asciiOnly,
		NoAnimations: noAnimations,
		HideSizes:    hideSizes,
		Orientation:  orientation,
		LogLevel:     level,
		ThemeName:    themeName,
	}, userConfig)
	return userConfig, nil
}

// setupLogging sends the global logger to the log file. The terminal belongs
// to the UI while it runs, so nothing is logged to the console.
func setupLogging(cfg *config.UserConfig) (*zap.Logger, error) {
	path, err := cfg.Logging.LogPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log path: %w", err)
	}
	if err := observability.Initialize(observability.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   path,
		Name:   "panes",
	}); err != nil {
		return nil, err
	}
	return observability.GetLogger(), nil
}

// openStore opens the snapshot database, or returns nil when persistence is
// off.
func openStore(cfg *config.UserConfig, logger *zap.Logger) (*state.Manager, error) {
	if !cfg.Persistence.IsEnabled() {
		return nil, nil
	}
	path, err := cfg.Persistence.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	store, err := state.Open(path, state.WithLogger(logger.Named("state")))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return store, nil
}

func runLocal() error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := setupLogging(userConfig)
	if err != nil {
		return err
	}
	defer observability.Sync()

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("starting", zap.String("config", configPath), zap.String("version", version))
	}

	opts := app.Options{Config: userConfig, Logger: logger}
	if !noPersist {
		store, err := openStore(userConfig, logger)
		if err != nil {
			return err
		}
		if store != nil {
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("failed to close state store", zap.Error(err))
				}
			}()
			opts.Store = store
		}
	}

	app.SetInputHandler(input.HandleInput)

	model, err := app.New(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if final, ok := finalModel.(*app.Model); ok && !final.Quitting() {
		final.Quit()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
