package cli

import (
	"context"
	"flag"
)

func newUnconfigureCommand() *Command {
	cmd := &Command{
		Name:        "unconfigure",
		Description: "Restore local database authentication",
		Flags:       flag.NewFlagSet("unconfigure", flag.ExitOnError),
		Run:         runUnconfigure,
	}

	cmd.Flags.String("config", "", "Optional YAML configuration file")
	cmd.Flags.Bool("verbose", false, "Enable debug logging")

	return cmd
}

func runUnconfigure(args []string) error {
	cmd := newUnconfigureCommand()
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

	if !orch.Unconfigure(context.Background()) {
		return errOperationFailed
	}
	return nil
}
