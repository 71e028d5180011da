package auth

import (
	"fmt"

	"github.com/appliancekit/authctl/pkg/idpmeta"
)

// Names of the deployed configuration fragments and generated artifacts.
// The SAML and OIDC fragments double as the configuration-state markers.
const (
	RemoteUserConf = "remote-user.conf"
	SAMLConf       = "external-auth-saml.conf"
	OIDCConf       = "external-auth-oidc.conf"

	SPKeyFile       = "sp-key.key"
	SPCertFile      = "sp-cert.cert"
	SPMetadataFile  = "sp-metadata.xml"
	IdPMetadataFile = "idp-metadata.xml"
)

// SAMLOptions carries the inputs for a SAML configuration run. Options are
// immutable for the duration of one orchestration call.
type SAMLOptions struct {
	// Host is the appliance hostname the SP entity URLs are derived from.
	Host string

	// IdPMetadataSource is a local file path or an http(s) URL naming the
	// identity-provider metadata.
	IdPMetadataSource string

	// EnableSSO enables appliance-wide single sign-on in the settings store.
	EnableSSO bool
}

func (o SAMLOptions) validate() error {
	if o.Host == "" {
		return &ValidationError{Reason: "a hostname is required to configure SAML authentication"}
	}
	if o.IdPMetadataSource == "" {
		return &ValidationError{Reason: "an IdP metadata file or URL is required to configure SAML authentication"}
	}
	if !idpmeta.IsURL(o.IdPMetadataSource) {
		if !fileExists(o.IdPMetadataSource) {
			return &ValidationError{Reason: fmt.Sprintf("IdP metadata file %s does not exist", o.IdPMetadataSource)}
		}
	}
	return nil
}

// OIDCOptions carries the inputs for an OpenID Connect configuration run.
type OIDCOptions struct {
	Host         string
	IssuerURL    string
	ClientID     string
	ClientSecret string
	EnableSSO    bool
}

func (o OIDCOptions) validate() error {
	if o.Host == "" {
		return &ValidationError{Reason: "a hostname is required to configure OIDC authentication"}
	}
	if !idpmeta.IsURL(o.IssuerURL) {
		return &ValidationError{Reason: "a valid OIDC issuer URL is required"}
	}
	if o.ClientID == "" || o.ClientSecret == "" {
		return &ValidationError{Reason: "an OIDC client ID and secret are required"}
	}
	return nil
}

// ValidationError reports a missing or invalid required input, detected
// before any side effect occurs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
