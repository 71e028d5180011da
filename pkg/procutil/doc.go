// Package procutil runs external commands on behalf of the configuration
// orchestrator.
//
// The Runner interface is deliberately narrow so tests can substitute a fake
// without spawning real processes. The production implementation, ExecRunner,
// captures stdout and stderr separately and folds launch failures and nonzero
// exits into a single typed error, *ExitError, that keeps the captured
// streams available for verbose diagnostics.
package procutil
