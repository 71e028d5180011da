package idpmeta

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/russellhaering/gosaml2/types"
	dsig "github.com/russellhaering/goxmldsig"
)

// Info summarizes an IdP metadata document.
type Info struct {
	EntityID     string
	SSOEndpoints []string
	Signed       bool
	// SignatureVerified is meaningful only when Signed is true and the
	// document embeds at least one signing certificate.
	SignatureVerified bool
	SignatureError    error
}

// Inspect parses the metadata file at path and reports the IdP entity ID and
// SSO endpoints. When the document carries an XML signature and embeds its
// signing certificates, the signature is verified against them.
func Inspect(path string) (*Info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read IdP metadata %s: %w", path, err)
	}

	descriptor := &types.EntityDescriptor{}
	if err := xml.Unmarshal(raw, descriptor); err != nil {
		return nil, fmt.Errorf("failed to parse IdP metadata %s: %w", path, err)
	}

	if descriptor.IDPSSODescriptor == nil {
		return nil, fmt.Errorf("metadata %s describes no identity provider", path)
	}

	info := &Info{EntityID: descriptor.EntityID}
	for _, svc := range descriptor.IDPSSODescriptor.SingleSignOnServices {
		info.SSOEndpoints = append(info.SSOEndpoints, svc.Location)
	}

	certs, err := signingCertificates(descriptor)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse IdP metadata %s: %w", path, err)
	}

	if doc.Root().FindElement("./Signature") == nil {
		return info, nil
	}
	info.Signed = true

	if len(certs) == 0 {
		info.SignatureError = fmt.Errorf("metadata is signed but embeds no signing certificate")
		return info, nil
	}

	validationCtx := dsig.NewDefaultValidationContext(&dsig.MemoryX509CertificateStore{Roots: certs})
	if _, err := validationCtx.Validate(doc.Root()); err != nil {
		info.SignatureError = err
		return info, nil
	}

	info.SignatureVerified = true
	return info, nil
}

// signingCertificates collects the X.509 certificates the IdP advertises for
// signing. Descriptors without a use attribute advertise the key for any
// purpose and are included as well.
func signingCertificates(descriptor *types.EntityDescriptor) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for _, kd := range descriptor.IDPSSODescriptor.KeyDescriptors {
		if kd.Use != "" && kd.Use != "signing" {
			continue
		}
		for _, xcert := range kd.KeyInfo.X509Data.X509Certificates {
			data := strings.Join(strings.Fields(xcert.Data), "")
			if data == "" {
				continue
			}
			der, err := base64.StdEncoding.DecodeString(data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode IdP signing certificate: %w", err)
			}
			cert, err := x509.ParseCertificate(der)
			if err != nil {
				return nil, fmt.Errorf("failed to parse IdP signing certificate: %w", err)
			}
			certs = append(certs, cert)
		}
	}
	return certs, nil
}
