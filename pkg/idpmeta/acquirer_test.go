package idpmeta

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{name: "https URL", source: "https://idp.example.com/metadata", want: true},
		{name: "http URL", source: "http://idp.example.com/metadata", want: true},
		{name: "absolute path", source: "/tmp/metadata.xml", want: false},
		{name: "relative path", source: "metadata.xml", want: false},
		{name: "other scheme", source: "ftp://idp.example.com/metadata", want: false},
		{name: "scheme without host", source: "https://", want: false},
		{name: "empty", source: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsURL(tt.source))
		})
	}
}

func TestResolveDownloadsURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<EntityDescriptor/>"))
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "idp-metadata.xml")
	acq := NewAcquirer(testLogger())
	require.NoError(t, acq.Resolve(context.Background(), server.URL, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "<EntityDescriptor/>", string(data))
}

func TestResolveFailsOnNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "idp-metadata.xml")
	acq := NewAcquirer(testLogger())
	err := acq.Resolve(context.Background(), server.URL, target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")

	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr), "target must not be created on failure")
}

func TestResolveCopiesLocalPath(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "downloaded.xml")
	target := filepath.Join(dir, "idp-metadata.xml")
	require.NoError(t, os.WriteFile(source, []byte("metadata body"), 0644))

	acq := NewAcquirer(testLogger())
	require.NoError(t, acq.Resolve(context.Background(), source, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "metadata body", string(data))
}

func TestResolveSameSourceAndTargetIsNoop(t *testing.T) {
	target := filepath.Join(t.TempDir(), "idp-metadata.xml")
	require.NoError(t, os.WriteFile(target, []byte("already here"), 0644))

	before, err := os.Stat(target)
	require.NoError(t, err)

	acq := NewAcquirer(testLogger())
	require.NoError(t, acq.Resolve(context.Background(), target, target))

	after, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "already here", string(data))
}

func TestResolveMissingLocalSource(t *testing.T) {
	dir := t.TempDir()
	acq := NewAcquirer(testLogger())
	err := acq.Resolve(context.Background(), filepath.Join(dir, "absent.xml"), filepath.Join(dir, "idp-metadata.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read IdP metadata file")
}
