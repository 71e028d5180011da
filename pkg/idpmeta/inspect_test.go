package idpmeta

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unsignedMetadata = `<?xml version="1.0"?>
<md:EntityDescriptor xmlns:md="urn:oasis:names:tc:SAML:2.0:metadata" entityID="https://idp.example.com/metadata">
  <md:IDPSSODescriptor protocolSupportEnumeration="urn:oasis:names:tc:SAML:2.0:protocol">
    <md:SingleSignOnService Binding="urn:oasis:names:tc:SAML:2.0:bindings:HTTP-Redirect" Location="https://idp.example.com/sso/redirect"/>
    <md:SingleSignOnService Binding="urn:oasis:names:tc:SAML:2.0:bindings:HTTP-POST" Location="https://idp.example.com/sso/post"/>
  </md:IDPSSODescriptor>
</md:EntityDescriptor>`

func writeMetadata(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "idp-metadata.xml")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestInspectUnsignedMetadata(t *testing.T) {
	info, err := Inspect(writeMetadata(t, []byte(unsignedMetadata)))
	require.NoError(t, err)

	assert.Equal(t, "https://idp.example.com/metadata", info.EntityID)
	assert.Equal(t, []string{"https://idp.example.com/sso/redirect", "https://idp.example.com/sso/post"}, info.SSOEndpoints)
	assert.False(t, info.Signed)
}

func TestInspectRejectsNonIdPMetadata(t *testing.T) {
	content := `<md:EntityDescriptor xmlns:md="urn:oasis:names:tc:SAML:2.0:metadata" entityID="https://sp.example.com"/>`
	_, err := Inspect(writeMetadata(t, []byte(content)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identity provider")
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect(writeMetadata(t, []byte("not xml at all")))
	require.Error(t, err)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "absent.xml"))
	require.Error(t, err)
}

func TestInspectVerifiesSignedMetadata(t *testing.T) {
	keyStore := dsig.RandomKeyStoreForTest()
	_, certDER, err := keyStore.GetKeyPair()
	require.NoError(t, err)

	doc := etree.NewDocument()
	entity := doc.CreateElement("md:EntityDescriptor")
	entity.CreateAttr("xmlns:md", "urn:oasis:names:tc:SAML:2.0:metadata")
	entity.CreateAttr("ID", "_metadata-test")
	entity.CreateAttr("entityID", "https://idp.example.com/metadata")

	idp := entity.CreateElement("md:IDPSSODescriptor")
	kd := idp.CreateElement("md:KeyDescriptor")
	kd.CreateAttr("use", "signing")
	keyInfo := kd.CreateElement("ds:KeyInfo")
	keyInfo.CreateAttr("xmlns:ds", "http://www.w3.org/2000/09/xmldsig#")
	certEl := keyInfo.CreateElement("ds:X509Data").CreateElement("ds:X509Certificate")
	certEl.SetText(base64.StdEncoding.EncodeToString(certDER))

	sso := idp.CreateElement("md:SingleSignOnService")
	sso.CreateAttr("Binding", "urn:oasis:names:tc:SAML:2.0:bindings:HTTP-Redirect")
	sso.CreateAttr("Location", "https://idp.example.com/sso/redirect")

	signingCtx := dsig.NewDefaultSigningContext(keyStore)
	signed, err := signingCtx.SignEnveloped(entity)
	require.NoError(t, err)

	out := etree.NewDocument()
	out.SetRoot(signed)
	raw, err := out.WriteToBytes()
	require.NoError(t, err)

	info, err := Inspect(writeMetadata(t, raw))
	require.NoError(t, err)

	assert.True(t, info.Signed)
	assert.True(t, info.SignatureVerified)
	assert.NoError(t, info.SignatureError)
	assert.Equal(t, "https://idp.example.com/metadata", info.EntityID)
}
