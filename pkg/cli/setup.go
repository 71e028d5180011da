package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/appliancekit/authctl/pkg/artifacts"
	"github.com/appliancekit/authctl/pkg/auth"
	"github.com/appliancekit/authctl/pkg/config"
	"github.com/appliancekit/authctl/pkg/idpmeta"
	"github.com/appliancekit/authctl/pkg/procutil"
	"github.com/appliancekit/authctl/pkg/service"
	"github.com/appliancekit/authctl/pkg/settings"
)

// errOperationFailed is what a command returns when the orchestrator reports
// failure; the cause has already been logged.
var errOperationFailed = fmt.Errorf("operation failed")

func setupLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// loadConfig loads the environment configuration, overlaying configFile when
// given.
func loadConfig(configFile string) (*config.Config, error) {
	cfg := config.Load()
	if configFile != "" {
		if err := cfg.MergeFile(configFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newOrchestrator assembles the production component stack. The returned
// cleanup closes the settings store.
func newOrchestrator(cfg *config.Config, logger *logrus.Logger) (*auth.Orchestrator, func(), error) {
	settingsClient, err := settings.OpenSQLite(cfg.SettingsDB)
	if err != nil {
		return nil, nil, err
	}

	runner := procutil.NewExecRunner()
	orch := auth.New(
		cfg,
		logger,
		artifacts.NewManager(cfg.TemplateRoot, logger),
		idpmeta.NewAcquirer(logger),
		runner,
		service.NewSystemdController(runner, logger),
		settingsClient,
	)

	return orch, func() { settingsClient.Close() }, nil
}
