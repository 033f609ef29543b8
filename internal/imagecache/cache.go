// Package imagecache downloads remote images once and keeps them on disk.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const userAgent = "ImageViewer/1.0"

// Cache manages image fetching and caching
type Cache struct {
	cacheDir   string
	client     *http.Client
	inFlight   map[string]chan struct{}
	inFlightMu sync.Mutex
}

// New creates a cache storing files in cacheDir
func New(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{
		cacheDir: cacheDir,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		inFlight: make(map[string]chan struct{}),
	}, nil
}

// IsRemote reports whether source is an http or https URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Path returns the file a URL is cached in. The extension of the URL path
// is kept so decoders can be chosen by name.
func (c *Cache) Path(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	name := hex.EncodeToString(sum[:16])
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" && len(ext) <= 5 {
			name += ext
		}
	}
	return filepath.Join(c.cacheDir, name)
}

// IsCached checks if a URL is already on disk
func (c *Cache) IsCached(rawURL string) bool {
	_, err := os.Stat(c.Path(rawURL))
	return err == nil
}

// Get returns the local path of rawURL, downloading it first if necessary.
// Concurrent calls for the same URL share one download.
func (c *Cache) Get(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
	}

	p := c.Path(rawURL)
	if c.IsCached(rawURL) {
		return p, nil
	}

	c.inFlightMu.Lock()
	if ch, exists := c.inFlight[rawURL]; exists {
		c.inFlightMu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return "", ctx.Err()
		}
		if !c.IsCached(rawURL) {
			return "", fmt.Errorf("download of %s failed", rawURL)
		}
		return p, nil
	}

	ch := make(chan struct{})
	c.inFlight[rawURL] = ch
	c.inFlightMu.Unlock()

	defer func() {
		c.inFlightMu.Lock()
		delete(c.inFlight, rawURL)
		close(ch)
		c.inFlightMu.Unlock()
	}()

	if err := c.download(ctx, rawURL, p); err != nil {
		return "", err
	}
	return p, nil
}

func (c *Cache) download(ctx context.Context, rawURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	// Write to a temp file first so a partial download is never mistaken
	// for a cached image.
	tmp, err := os.CreateTemp(c.cacheDir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to cache image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to read image data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to cache image: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to cache image: %w", err)
	}
	return nil
}
