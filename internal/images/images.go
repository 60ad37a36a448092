// Package images searches the Pexels photo API for lesson imagery.
package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/essence/internal/logger"
)

const defaultBaseURL = "https://api.pexels.com/v1"

// MaxQueries is the number of search templates a single Fetch can use.
const MaxQueries = 3

// queryTemplates are appended to the topic to build the search phrases.
var queryTemplates = [MaxQueries]string{
	"culture traditional",
	"heritage art",
	"ceremony festival",
}

var errNoCredential = errors.New("PEXELS_API_KEY not set")

// Image is one lesson image.
type Image struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Thumbnail    string `json:"thumbnail"`
	Photographer string `json:"photographer"`
	Alt          string `json:"alt"`
}

// Result is the outcome of Fetch. Live is false when Images are the
// built-in placeholders.
type Result struct {
	Images []Image
	Live   bool
}

// Config holds the Pexels client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults and no key.
func DefaultConfig() Config {
	return Config{BaseURL: defaultBaseURL, Timeout: 15 * time.Second}
}

// ConfigFromEnv reads ESSENCE_PEXELS_API_KEY (falling back to
// PEXELS_API_KEY) and ESSENCE_PEXELS_BASE_URL.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = strings.TrimSpace(os.Getenv("ESSENCE_PEXELS_API_KEY"))
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("PEXELS_API_KEY"))
	}
	if u := strings.TrimSpace(os.Getenv("ESSENCE_PEXELS_BASE_URL")); u != "" {
		cfg.BaseURL = u
	}
	return cfg
}

// Client searches Pexels.
type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

// New creates a Client. log may be nil.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.With("adapter", "images"),
	}
}

// Fetch runs up to count (at most MaxQueries) searches in parallel and
// keeps the first photo of each. Failed searches contribute nothing; when
// no search yields a photo the placeholders from MockImages are returned.
func (c *Client) Fetch(ctx context.Context, topic string, count int) Result {
	if c.cfg.APIKey == "" {
		c.fallback(topic, errNoCredential)
		return Result{Images: MockImages(topic)}
	}
	if count > MaxQueries {
		count = MaxQueries
	}
	if count < 1 {
		count = 1
	}

	// Each search writes only its own slot so order follows the templates.
	slots := make([]*Image, count)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		query := topic + " " + queryTemplates[i]
		g.Go(func() error {
			img, err := c.search(gctx, query, topic, i)
			if err != nil {
				c.log.Debug("image search failed", "query", query, "error", err)
				return nil
			}
			slots[i] = img
			return nil
		})
	}
	_ = g.Wait()

	var out []Image
	for _, img := range slots {
		if img != nil {
			out = append(out, *img)
		}
	}
	if len(out) == 0 {
		c.fallback(topic, errors.New("no images found"))
		return Result{Images: MockImages(topic)}
	}
	return Result{Images: out, Live: true}
}

type searchResponse struct {
	Photos []struct {
		ID           int64  `json:"id"`
		Photographer string `json:"photographer"`
		Alt          string `json:"alt"`
		Src          struct {
			Large  string `json:"large"`
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

func (c *Client) search(ctx context.Context, query, topic string, index int) (*Image, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "3")
	q.Set("orientation", "landscape")
	q.Set("size", "large")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Pexels takes the bare key, not a bearer token.
	req.Header.Set("Authorization", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if len(sr.Photos) == 0 {
		return nil, errors.New("no photos")
	}

	p := sr.Photos[0]
	alt := p.Alt
	if alt == "" {
		alt = topic + " cultural image"
	}
	return &Image{
		ID:           fmt.Sprintf("%d_%d", p.ID, index),
		URL:          p.Src.Large,
		Thumbnail:    p.Src.Medium,
		Photographer: p.Photographer,
		Alt:          alt,
	}, nil
}

func (c *Client) fallback(topic string, err error) {
	reason := err.Error()
	if errors.Is(err, errNoCredential) {
		reason = "no_credential"
	}
	c.log.Warn("using fallback data", "topic", topic, "reason", reason)
}

// MockImages returns the placeholder images served from the web app's
// static assets.
func MockImages(topic string) []Image {
	return []Image{
		{ID: topic + "_1", URL: "/feature.svg", Thumbnail: "/feature.svg", Photographer: "Essence Collection", Alt: topic + " cultural imagery"},
		{ID: topic + "_2", URL: "/mosaic.svg", Thumbnail: "/mosaic.svg", Photographer: "Essence Collection", Alt: topic + " traditional art"},
		{ID: topic + "_3", URL: "/essence.svg", Thumbnail: "/essence.svg", Photographer: "Essence Collection", Alt: topic + " cultural heritage"},
	}
}
