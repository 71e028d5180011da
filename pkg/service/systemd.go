package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/appliancekit/authctl/pkg/procutil"
)

// Controller queries and restarts system services.
type Controller interface {
	IsRunning(ctx context.Context, name string) (bool, error)
	Restart(ctx context.Context, name string) error
}

// SystemdController drives services through systemctl.
type SystemdController struct {
	runner procutil.Runner
	logger *logrus.Logger
}

// NewSystemdController creates a systemd-backed service controller.
func NewSystemdController(runner procutil.Runner, logger *logrus.Logger) *SystemdController {
	return &SystemdController{
		runner: runner,
		logger: logger,
	}
}

// IsRunning reports whether the named unit is active. systemctl exits
// nonzero for inactive or unknown units; that is a negative answer, not an
// error. Only a launch failure surfaces as an error.
func (c *SystemdController) IsRunning(ctx context.Context, name string) (bool, error) {
	_, err := c.runner.Run(ctx, "", "systemctl", "is-active", "--quiet", name)
	if err != nil {
		var exitErr *procutil.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode > 0 {
			return false, nil
		}
		return false, fmt.Errorf("failed to query service %s: %w", name, err)
	}
	return true, nil
}

// Restart restarts the named unit.
func (c *SystemdController) Restart(ctx context.Context, name string) error {
	c.logger.Infof("Restarting service %s", name)
	if _, err := c.runner.Run(ctx, "", "systemctl", "restart", name); err != nil {
		return fmt.Errorf("failed to restart service %s: %w", name, err)
	}
	return nil
}
