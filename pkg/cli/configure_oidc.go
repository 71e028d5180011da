package cli

import (
	"context"
	"flag"

	"github.com/appliancekit/authctl/pkg/auth"
)

func newConfigureOIDCCommand() *Command {
	cmd := &Command{
		Name:        "configure-oidc",
		Description: "Configure OpenID Connect authentication",
		Flags:       flag.NewFlagSet("configure-oidc", flag.ExitOnError),
		Run:         runConfigureOIDC,
	}

	cmd.Flags.String("host", "", "Appliance hostname")
	cmd.Flags.String("issuer-url", "", "OIDC issuer URL")
	cmd.Flags.String("client-id", "", "OIDC client ID")
	cmd.Flags.String("client-secret", "", "OIDC client secret")
	cmd.Flags.Bool("enable-sso", false, "Enable appliance-wide single sign-on")
	cmd.Flags.String("config", "", "Optional YAML configuration file")
	cmd.Flags.Bool("verbose", false, "Enable debug logging")

	return cmd
}

func runConfigureOIDC(args []string) error {
	cmd := newConfigureOIDCCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	configFile := cmd.Flags.Lookup("config").Value.String()
	verbose := cmd.Flags.Lookup("verbose").Value.String() == "true"

	logger := setupLogger(verbose)

	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	orch, cleanup, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := auth.OIDCOptions{
		Host:         cmd.Flags.Lookup("host").Value.String(),
		IssuerURL:    cmd.Flags.Lookup("issuer-url").Value.String(),
		ClientID:     cmd.Flags.Lookup("client-id").Value.String(),
		ClientSecret: cmd.Flags.Lookup("client-secret").Value.String(),
		EnableSSO:    cmd.Flags.Lookup("enable-sso").Value.String() == "true",
	}
	if !orch.ConfigureOIDC(context.Background(), opts) {
		return errOperationFailed
	}
	return nil
}
