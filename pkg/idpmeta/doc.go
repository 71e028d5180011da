// Package idpmeta acquires and inspects identity-provider metadata.
//
// Resolve materializes a metadata source, either an http(s) URL or a local
// file path, at the fixed location the web-server configuration expects.
// Inspect gives the orchestrator something useful to log about what it just
// installed: the IdP entity ID, its single-sign-on endpoints, and whether a
// signed document's signature checks out against the certificates it embeds.
package idpmeta
