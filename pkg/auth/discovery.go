package auth

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// DiscoverFunc resolves an OIDC issuer to its OAuth2 endpoints.
type DiscoverFunc func(ctx context.Context, issuerURL string) (oauth2.Endpoint, error)

// discoverIssuer performs OIDC discovery against the issuer's well-known
// configuration endpoint.
func discoverIssuer(ctx context.Context, issuerURL string) (oauth2.Endpoint, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return oauth2.Endpoint{}, err
	}
	return provider.Endpoint(), nil
}
