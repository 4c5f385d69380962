package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
)

// Remote client defaults.
const (
	DefaultRequestTimeout = 60 * time.Second

	// ChecksumHeader carries the sha256 digest of an uploaded artifact.
	ChecksumHeader = "X-Checksum-Sha256"
)

// Remote uploads artifacts to an HTTP repository that accepts PUT requests
// at the Maven layout path.
type Remote struct {
	baseURL  string
	client   *http.Client
	username string
	password string
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		r.client = client
	}
}

// WithBasicAuth sets credentials sent with every upload.
func WithBasicAuth(username, password string) RemoteOption {
	return func(r *Remote) {
		r.username = username
		r.password = password
	}
}

// NewRemote creates a client for the repository at baseURL.
func NewRemote(baseURL string, opts ...RemoteOption) *Remote {
	r := &Remote{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BaseURL returns the repository base URL.
func (r *Remote) BaseURL() string {
	return r.baseURL
}

// URL returns the upload URL for a coordinate.
func (r *Remote) URL(c Coordinate) string {
	return r.baseURL + "/" + c.Path()
}

// Upload sends source to the repository and returns its digest.
func (r *Remote) Upload(ctx context.Context, c Coordinate, source string) (digest.Digest, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	dgst, err := digestFile(source)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", c, err)
	}

	f, err := os.Open(source)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", c, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", c, err)
	}

	url := r.URL(c)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, f)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", c, err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "application/java-archive")
	req.Header.Set(ChecksumHeader, dgst.Encoded())
	if r.username != "" {
		req.SetBasicAuth(r.username, r.password)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", c, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UploadError{Coordinate: c, URL: url, StatusCode: resp.StatusCode}
	}
	return dgst, nil
}

func digestFile(p string) (digest.Digest, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return digest.Canonical.FromReader(f)
}
