package idpmeta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultFetchTimeout = 30 * time.Second

// Resolver materializes an identity-provider metadata source at a target path.
type Resolver interface {
	Resolve(ctx context.Context, source, target string) error
}

// Acquirer resolves an IdP metadata source, either an http(s) URL or a local
// file path, into a concrete metadata file.
type Acquirer struct {
	client *http.Client
	logger *logrus.Logger
}

// NewAcquirer creates a new metadata acquirer.
func NewAcquirer(logger *logrus.Logger) *Acquirer {
	return &Acquirer{
		client: &http.Client{Timeout: defaultFetchTimeout},
		logger: logger,
	}
}

// IsURL reports whether source parses as a full http or https URL. Anything
// else, including syntactically dubious paths, is treated as a file path.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Resolve writes the metadata named by source to target. URL sources are
// downloaded; a non-2xx response is a failure and leaves target untouched.
// Path sources are copied, unless source already is the target path, in
// which case nothing is done.
func (a *Acquirer) Resolve(ctx context.Context, source, target string) error {
	if IsURL(source) {
		return a.download(ctx, source, target)
	}

	if source == target {
		a.logger.Debugf("IdP metadata already at %s", target)
		return nil
	}

	return a.copyFile(source, target)
}

func (a *Acquirer) download(ctx context.Context, source, target string) error {
	a.logger.Debugf("Downloading IdP metadata from %s", source)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return fmt.Errorf("failed to build metadata request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download IdP metadata from %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to download IdP metadata from %s: unexpected status %s", source, resp.Status)
	}

	// Read the full body before touching the target so a transport failure
	// mid-stream cannot leave a truncated metadata file behind.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read IdP metadata response: %w", err)
	}

	if err := os.WriteFile(target, body, 0644); err != nil {
		return fmt.Errorf("failed to write IdP metadata to %s: %w", target, err)
	}

	return nil
}

func (a *Acquirer) copyFile(source, target string) error {
	a.logger.Debugf("Copying IdP metadata from %s to %s", source, target)

	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read IdP metadata file %s: %w", source, err)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write IdP metadata to %s: %w", target, err)
	}

	return nil
}
