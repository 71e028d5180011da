package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appliancekit/authctl/pkg/auth"
	"github.com/appliancekit/authctl/pkg/settings"
)

func newStatusCommand() *Command {
	cmd := &Command{
		Name:        "status",
		Description: "Show the current authentication configuration state",
		Flags:       flag.NewFlagSet("status", flag.ExitOnError),
		Run:         runStatus,
	}

	cmd.Flags.String("config", "", "Optional YAML configuration file")

	return cmd
}

func runStatus(args []string) error {
	cmd := newStatusCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd.Flags.Lookup("config").Value.String())
	if err != nil {
		return err
	}

	configured := false
	for _, name := range []string{auth.SAMLConf, auth.OIDCConf} {
		if _, err := os.Stat(filepath.Join(cfg.HTTPDConfDir, name)); err == nil {
			configured = true
		}
	}

	if configured {
		fmt.Println("External authentication: configured")
	} else {
		fmt.Println("External authentication: not configured")
	}

	provider, err := storedProvider(cfg.SettingsDB)
	if err != nil {
		return err
	}
	if provider != "" {
		fmt.Printf("Provider type: %s\n", provider)
	}

	return nil
}

// storedProvider reads the provider type from the settings store, if the
// store exists and holds one.
func storedProvider(dbPath string) (string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return "", nil
	}

	client, err := settings.OpenSQLite(dbPath)
	if err != nil {
		return "", err
	}
	defer client.Close()

	provider, err := client.Get(context.Background(), settings.KeyProviderType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return provider, nil
}
