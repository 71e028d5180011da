// Package auth orchestrates switching the appliance between external
// single-sign-on authentication and local database authentication.
//
// # Overview
//
// ConfigureSAML deploys the web-server configuration fragments, generates
// the service-provider key material through the external metadata tool,
// materializes the identity-provider metadata, flips the settings store to
// SAML mode, and restarts the web server. ConfigureOIDC does the analogous
// provisioning for OpenID Connect. Unconfigure reverses either, restoring
// database mode.
//
// # Failure model
//
// Every orchestration is a strictly ordered sequence of side-effecting
// steps. The first failing step aborts the run; there is no retry and no
// rollback of earlier steps, so a failed run can leave the filesystem and
// the settings store inconsistent with each other. Re-running configure or
// unconfigure is the recovery path. Errors never cross the orchestrator
// boundary: callers receive a boolean outcome, and the cause, including the
// external tool's captured output when that is what failed, goes to the log.
//
// # Concurrency
//
// At most one orchestration may be in flight system-wide. The assumption is
// enforced with an exclusive lock file taken at the start of every run.
package auth
