package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/appliancekit/authctl/pkg/artifacts"
	"github.com/appliancekit/authctl/pkg/config"
	"github.com/appliancekit/authctl/pkg/idpmeta"
	"github.com/appliancekit/authctl/pkg/procutil"
	"github.com/appliancekit/authctl/pkg/service"
	"github.com/appliancekit/authctl/pkg/settings"
)

// Orchestrator composes the artifact, metadata, tool, service, and settings
// components into the top-level configure/unconfigure operations and owns
// all failure translation: no error value crosses its boundary, callers get
// a boolean outcome and the log stream.
type Orchestrator struct {
	cfg       *config.Config
	logger    *logrus.Logger
	artifacts *artifacts.Manager
	metadata  idpmeta.Resolver
	runner    procutil.Runner
	services  service.Controller
	settings  settings.Client
	discover  DiscoverFunc
}

// New creates an orchestrator from its collaborators.
func New(
	cfg *config.Config,
	logger *logrus.Logger,
	artifactMgr *artifacts.Manager,
	metadata idpmeta.Resolver,
	runner procutil.Runner,
	services service.Controller,
	settingsClient settings.Client,
) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		logger:    logger,
		artifacts: artifactMgr,
		metadata:  metadata,
		runner:    runner,
		services:  services,
		settings:  settingsClient,
		discover:  discoverIssuer,
	}
}

// Configured reports whether external authentication is currently configured,
// derived solely from the presence of a marker fragment in the web-server
// configuration directory.
func (o *Orchestrator) Configured() bool {
	for _, name := range []string{SAMLConf, OIDCConf} {
		if fileExists(filepath.Join(o.cfg.HTTPDConfDir, name)) {
			return true
		}
	}
	return false
}

// ConfigureSAML switches the appliance to SAML authentication. It returns
// true on success; on failure the cause has been logged and false is
// returned. A failure partway through can leave the filesystem and settings
// store in a mixed state; a subsequent configure or unconfigure run is the
// recovery path.
func (o *Orchestrator) ConfigureSAML(ctx context.Context, opts SAMLOptions) bool {
	log := o.runLogger("configure-saml")
	return o.run(log, "SAML authentication configured", func() error {
		return o.configureSAML(ctx, log, opts)
	})
}

// ConfigureOIDC switches the appliance to OpenID Connect authentication.
func (o *Orchestrator) ConfigureOIDC(ctx context.Context, opts OIDCOptions) bool {
	log := o.runLogger("configure-oidc")
	return o.run(log, "OpenID Connect authentication configured", func() error {
		return o.configureOIDC(ctx, log, opts)
	})
}

// Unconfigure restores local database authentication. It fails without side
// effects when external authentication is not configured.
func (o *Orchestrator) Unconfigure(ctx context.Context) bool {
	log := o.runLogger("unconfigure")
	return o.run(log, "Database authentication restored", func() error {
		return o.unconfigure(ctx, log)
	})
}

func (o *Orchestrator) configureSAML(ctx context.Context, log *logrus.Entry, opts SAMLOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	log.Infof("Configuring SAML authentication for %s", opts.Host)

	for _, name := range []string{RemoteUserConf, SAMLConf} {
		if err := o.artifacts.Deploy(name, o.cfg.HTTPDConfDir); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(o.cfg.SAML2Dir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", o.cfg.SAML2Dir, err)
	}

	log.Info("Generating SAML service-provider key, certificate, and metadata")
	entityURL := "https://" + opts.Host
	if _, err := o.runner.Run(ctx, o.cfg.SAML2Dir, o.cfg.MetadataTool, entityURL, entityURL+"/saml2"); err != nil {
		return err
	}

	rules := []artifacts.RenameRule{
		{Suffix: ".key", Target: SPKeyFile},
		{Suffix: ".cert", Target: SPCertFile},
		{Suffix: ".xml", Target: SPMetadataFile},
	}
	if err := o.artifacts.RenameBySuffix(o.cfg.SAML2Dir, "https_*.*", rules); err != nil {
		return err
	}

	target := filepath.Join(o.cfg.SAML2Dir, IdPMetadataFile)
	if err := o.metadata.Resolve(ctx, opts.IdPMetadataSource, target); err != nil {
		return err
	}
	o.inspectMetadata(log, target)

	if err := o.settings.Apply(ctx, settings.SAMLMode(opts.EnableSSO)); err != nil {
		return err
	}

	return o.restartIfRunning(ctx, log)
}

func (o *Orchestrator) configureOIDC(ctx context.Context, log *logrus.Entry, opts OIDCOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	log.Infof("Configuring OpenID Connect authentication for %s", opts.Host)

	endpoints, err := o.discover(ctx, opts.IssuerURL)
	if err != nil {
		return fmt.Errorf("failed to discover OIDC issuer %s: %w", opts.IssuerURL, err)
	}
	log.Debugf("OIDC authorization endpoint: %s", endpoints.AuthURL)
	log.Debugf("OIDC token endpoint: %s", endpoints.TokenURL)

	for _, name := range []string{RemoteUserConf, OIDCConf} {
		if err := o.artifacts.Deploy(name, o.cfg.HTTPDConfDir); err != nil {
			return err
		}
	}

	if err := o.settings.Apply(ctx, settings.OIDCMode(opts.EnableSSO)); err != nil {
		return err
	}

	return o.restartIfRunning(ctx, log)
}

func (o *Orchestrator) unconfigure(ctx context.Context, log *logrus.Entry) error {
	if !o.Configured() {
		return &ValidationError{Reason: "external authentication is not configured"}
	}

	log.Info("Unconfiguring external authentication")

	for _, name := range []string{RemoteUserConf, SAMLConf, OIDCConf} {
		if err := o.artifacts.Remove(filepath.Join(o.cfg.HTTPDConfDir, name)); err != nil {
			return err
		}
	}

	if err := o.settings.Apply(ctx, settings.DatabaseMode()); err != nil {
		return err
	}

	return o.restartIfRunning(ctx, log)
}

// restartIfRunning restarts the web service only when it is running at the
// moment of the check. A stopped service stays stopped.
func (o *Orchestrator) restartIfRunning(ctx context.Context, log *logrus.Entry) error {
	running, err := o.services.IsRunning(ctx, o.cfg.WebService)
	if err != nil {
		return err
	}
	if !running {
		log.Infof("Service %s is not running, leaving it stopped", o.cfg.WebService)
		return nil
	}
	return o.services.Restart(ctx, o.cfg.WebService)
}

// inspectMetadata reports what was just installed. Inspection problems are
// warnings only; the metadata file has already been materialized verbatim.
func (o *Orchestrator) inspectMetadata(log *logrus.Entry, path string) {
	info, err := idpmeta.Inspect(path)
	if err != nil {
		log.Warnf("IdP metadata inspection failed: %v", err)
		return
	}

	log.Infof("IdP entity ID: %s", info.EntityID)
	for _, endpoint := range info.SSOEndpoints {
		log.Debugf("IdP SSO endpoint: %s", endpoint)
	}

	switch {
	case !info.Signed:
		log.Debug("IdP metadata is not signed")
	case info.SignatureVerified:
		log.Info("IdP metadata signature verified")
	default:
		log.Warnf("IdP metadata signature could not be verified: %v", info.SignatureError)
	}
}

// run executes one orchestration under the run lock and translates any step
// error into log output and a false result.
func (o *Orchestrator) run(log *logrus.Entry, successMsg string, fn func() error) bool {
	release, err := o.acquireLock()
	if err != nil {
		o.fail(log, err)
		return false
	}
	defer release()

	if err := fn(); err != nil {
		o.fail(log, err)
		return false
	}

	log.Info(successMsg)
	return true
}

func (o *Orchestrator) fail(log *logrus.Entry, err error) {
	var exitErr *procutil.ExitError
	if errors.As(err, &exitErr) {
		if out := strings.TrimSpace(exitErr.Stdout); out != "" {
			log.Errorf("External tool stdout:\n%s", out)
		}
		if out := strings.TrimSpace(exitErr.Stderr); out != "" {
			log.Errorf("External tool stderr:\n%s", out)
		}
	}
	log.Errorf("%v", err)
}

func (o *Orchestrator) runLogger(operation string) *logrus.Entry {
	return o.logger.WithFields(logrus.Fields{
		"operation": operation,
		"run_id":    uuid.NewString(),
	})
}
