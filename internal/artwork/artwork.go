// Package artwork looks up cover art through the public iTunes search API and
// renders it as half-block text.
package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atomicstack/cli-music/internal/logging"
)

// DefaultSearchURL is the public iTunes search endpoint.
const DefaultSearchURL = "https://itunes.apple.com/search"

const (
	requestTimeout = 10 * time.Second
	maxImageBytes  = 8 << 20
)

// Client resolves and downloads artwork.
type Client struct {
	http      *http.Client
	searchURL string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithSearchURL points lookups at a different search endpoint.
func WithSearchURL(u string) Option {
	return func(cl *Client) { cl.searchURL = u }
}

// NewClient returns a client using the public search endpoint.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: requestTimeout},
		searchURL: DefaultSearchURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Results []struct {
		ArtworkURL100 string `json:"artworkUrl100"`
	} `json:"results"`
}

// ResolveArtworkURL returns a 300x300 artwork URL for the first search hit.
func (c *Client) ResolveArtworkURL(ctx context.Context, track, artist string) (string, bool) {
	term := strings.TrimSpace(track + " " + artist)
	if term == "" {
		return "", false
	}
	q := url.Values{}
	q.Set("term", term)
	q.Set("entity", "song")
	q.Set("limit", "10")

	body, err := c.get(ctx, c.searchURL+"?"+q.Encode())
	if err != nil {
		logging.Error(fmt.Errorf("artwork search %q: %w", term, err))
		return "", false
	}
	defer body.Close()

	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		logging.Error(fmt.Errorf("artwork search %q: decode: %w", term, err))
		return "", false
	}
	for _, r := range resp.Results {
		if r.ArtworkURL100 != "" {
			return strings.Replace(r.ArtworkURL100, "100x100bb", "300x300bb", 1), true
		}
	}
	return "", false
}

// DownloadImage fetches and decodes a JPEG or PNG image.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) (image.Image, bool) {
	body, err := c.get(ctx, imageURL)
	if err != nil {
		logging.Error(fmt.Errorf("artwork download: %w", err))
		return nil, false
	}
	defer body.Close()

	img, _, err := image.Decode(io.LimitReader(body, maxImageBytes))
	if err != nil {
		logging.Error(fmt.Errorf("artwork decode: %w", err))
		return nil, false
	}
	return img, true
}

func (c *Client) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
