package cli

import (
	"context"
	"flag"

	"github.com/appliancekit/authctl/pkg/auth"
)

func newConfigureSAMLCommand() *Command {
	cmd := &Command{
		Name:        "configure-saml",
		Description: "Configure SAML single sign-on authentication",
		Flags:       flag.NewFlagSet("configure-saml", flag.ExitOnError),
		Run:         runConfigureSAML,
	}

	cmd.Flags.String("host", "", "Appliance hostname")
	cmd.Flags.String("idp-metadata", "", "IdP metadata file path or URL")
	cmd.Flags.Bool("enable-sso", false, "Enable appliance-wide single sign-on")
	cmd.Flags.String("config", "", "Optional YAML configuration file")
	cmd.Flags.Bool("verbose", false, "Enable debug logging")

	return cmd
}

func runConfigureSAML(args []string) error {
	cmd := newConfigureSAMLCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	host := cmd.Flags.Lookup("host").Value.String()
	idpMetadata := cmd.Flags.Lookup("idp-metadata").Value.String()
	enableSSO := cmd.Flags.Lookup("enable-sso").Value.String() == "true"
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

	opts := auth.SAMLOptions{
		Host:              host,
		IdPMetadataSource: idpMetadata,
		EnableSSO:         enableSSO,
	}
	if !orch.ConfigureSAML(context.Background(), opts) {
		return errOperationFailed
	}
	return nil
}
