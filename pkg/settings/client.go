package settings

import (
	"context"
	"strconv"
)

// Settings store paths for the appliance-wide authentication mode.
const (
	KeyMode         = "authentication/mode"
	KeyHTTPDRole    = "authentication/httpd_role"
	KeySAMLEnabled  = "authentication/saml_enabled"
	KeyOIDCEnabled  = "authentication/oidc_enabled"
	KeySSOEnabled   = "authentication/sso_enabled"
	KeyProviderType = "authentication/provider_type"
)

// Pair is a single path=value assignment.
type Pair struct {
	Key   string
	Value string
}

// Client applies authentication settings to the centralized settings store.
// A batch of pairs is one logical update; partial application is not
// distinguished by callers.
type Client interface {
	Apply(ctx context.Context, pairs []Pair) error
}

// SAMLMode returns the settings for SAML authentication.
func SAMLMode(ssoEnabled bool) []Pair {
	return []Pair{
		{Key: KeyMode, Value: "httpd"},
		{Key: KeyHTTPDRole, Value: "true"},
		{Key: KeySAMLEnabled, Value: "true"},
		{Key: KeyOIDCEnabled, Value: "false"},
		{Key: KeySSOEnabled, Value: strconv.FormatBool(ssoEnabled)},
		{Key: KeyProviderType, Value: "saml"},
	}
}

// OIDCMode returns the settings for OpenID Connect authentication.
func OIDCMode(ssoEnabled bool) []Pair {
	return []Pair{
		{Key: KeyMode, Value: "httpd"},
		{Key: KeyHTTPDRole, Value: "true"},
		{Key: KeySAMLEnabled, Value: "false"},
		{Key: KeyOIDCEnabled, Value: "true"},
		{Key: KeySSOEnabled, Value: strconv.FormatBool(ssoEnabled)},
		{Key: KeyProviderType, Value: "oidc"},
	}
}

// DatabaseMode returns the settings for local database authentication.
func DatabaseMode() []Pair {
	return []Pair{
		{Key: KeyMode, Value: "database"},
		{Key: KeyHTTPDRole, Value: "false"},
		{Key: KeySAMLEnabled, Value: "false"},
		{Key: KeyOIDCEnabled, Value: "false"},
		{Key: KeySSOEnabled, Value: "false"},
		{Key: KeyProviderType, Value: "none"},
	}
}
