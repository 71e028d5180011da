package settings

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestClient(t *testing.T) *SQLiteClient {
	t.Helper()
	client, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestApplySAMLMode(t *testing.T) {
	client := openTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Apply(ctx, SAMLMode(true)))

	mode, err := client.Get(ctx, KeyMode)
	require.NoError(t, err)
	assert.Equal(t, "httpd", mode)

	provider, err := client.Get(ctx, KeyProviderType)
	require.NoError(t, err)
	assert.Equal(t, "saml", provider)

	sso, err := client.Get(ctx, KeySSOEnabled)
	require.NoError(t, err)
	assert.Equal(t, "true", sso)
}

func TestApplyUpsertsExistingKeys(t *testing.T) {
	client := openTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Apply(ctx, SAMLMode(false)))
	require.NoError(t, client.Apply(ctx, DatabaseMode()))

	provider, err := client.Get(ctx, KeyProviderType)
	require.NoError(t, err)
	assert.Equal(t, "none", provider)

	mode, err := client.Get(ctx, KeyMode)
	require.NoError(t, err)
	assert.Equal(t, "database", mode)
}

func TestApplyEmptyBatchIsNoop(t *testing.T) {
	client := openTestClient(t)
	require.NoError(t, client.Apply(context.Background(), nil))

	_, err := client.Get(context.Background(), KeyMode)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestModePairsAreOrderedAndComplete(t *testing.T) {
	wantKeys := []string{KeyMode, KeyHTTPDRole, KeySAMLEnabled, KeyOIDCEnabled, KeySSOEnabled, KeyProviderType}

	for name, pairs := range map[string][]Pair{
		"saml":     SAMLMode(true),
		"oidc":     OIDCMode(false),
		"database": DatabaseMode(),
	} {
		require.Len(t, pairs, len(wantKeys), name)
		for i, pair := range pairs {
			assert.Equal(t, wantKeys[i], pair.Key, name)
		}
	}

	assert.Equal(t, "oidc", OIDCMode(false)[5].Value)
	assert.Equal(t, "false", OIDCMode(false)[4].Value)
}
