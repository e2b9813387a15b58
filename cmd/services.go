package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xvierd/smokefree-cli/internal/adapters/api"
	"github.com/xvierd/smokefree-cli/internal/adapters/credentials"
	"github.com/xvierd/smokefree-cli/internal/adapters/notification"
	"github.com/xvierd/smokefree-cli/internal/adapters/storage"
	"github.com/xvierd/smokefree-cli/internal/config"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/ports"
	"github.com/xvierd/smokefree-cli/internal/services"
)

// newTokenStore is swapped in tests.
var newTokenStore = func() ports.TokenStore { return credentials.New() }

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	if err := logger.Init(logger.Config{
		Debug:   debugLog || appConfig.Log.Debug,
		DataDir: appConfig.Storage.DataDir,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Determine database path
	path := dbPath
	if path == "" {
		path = config.GetDBPath(appConfig)
	}

	// Ensure directory exists
	if err := os.MkdirAll(getDir(path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	storageAdapter, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	milestones, err := appConfig.MilestoneTable()
	if err != nil {
		_ = cleanupServices()
		return err
	}

	tokens := newTokenStore()
	apiClient = api.New(appConfig.API.BaseURL, appConfig.API.Timeout, tokens)
	notifier = notification.New(&appConfig.Notifications)

	// Initialize services
	profileService = services.NewProfileService(storageAdapter, appConfig.DefaultHabits())
	recoveryService = services.NewRecoveryService(profileService, appConfig.RecoveryDomain(), milestones)
	recoveryService.SetNotifier(notifier)
	cravingService = services.NewCravingService(storageAdapter)
	biometricService = services.NewBiometricService(storageAdapter)
	chatService = services.NewChatService(storageAdapter, apiClient)
	helpService = services.NewHelpService(apiClient)
	accountService = services.NewAccountService(apiClient, tokens, profileService, recoveryService)

	stateService = services.NewStateService(recoveryService)
	stateService.SetCravingService(cravingService)
	stateService.SetChatService(chatService)

	// Announce any milestone crossed since the last run
	if _, err := recoveryService.CelebrateMilestones(context.Background()); err != nil {
		logger.Warn("milestone check failed", "err", err)
	}

	return nil
}

// cleanupServices closes all service connections.
func cleanupServices() error {
	if storageAdapter != nil {
		err := storageAdapter.Close()
		storageAdapter = nil
		return err
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// getDir returns the directory part of a path.
func getDir(path string) string {
	lastSep := 0
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			lastSep = i
			break
		}
	}
	if lastSep == 0 {
		return "."
	}
	return path[:lastSep]
}
