// Package artifacts manages the web-server configuration fragments and
// generated key material files that the authentication orchestrator deploys.
//
// Templates live under a configurable template root that mirrors the layout
// of the destination filesystem, so a fragment destined for
// /etc/httpd/conf.d is looked up at <root>/etc/httpd/conf.d. This keeps the
// manager testable against temporary directories.
package artifacts
