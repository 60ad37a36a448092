// Package insight is the client for the Qloo cultural recommendation API.
// Calls never fail: a missing key or any remote error yields deterministic
// fallback data, logged at WARN.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/abhisek/essence/internal/logger"
)

// errNoCredential marks a call skipped because no API key is configured.
var errNoCredential = errors.New("QLOO_API_KEY not set")

const adapterName = "insight"

// Client talks to the Qloo API.
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
		log:  log.With("adapter", adapterName),
	}
}

// Live reports whether the client has a credential to call the service.
func (c *Client) Live() bool {
	return c.cfg.APIKey != ""
}

// Fetch returns cultural insights for topic. An empty live result is
// returned as-is with Live=false; errors yield MockInsights.
func (c *Client) Fetch(ctx context.Context, topic string) Result {
	body := recommendationRequest{
		Type: "culture",
		Context: map[string]any{
			"subject":         topic,
			"category":        "educational",
			"target_audience": "adult_learners",
		},
		Filter: requestFilter{Limit: 10, Diversity: 0.8},
	}

	var env resultsEnvelope
	if err := c.do(ctx, http.MethodPost, "/recommendations", nil, body, &env); err != nil {
		c.fallback("fetch", topic, err)
		return Result{Insights: MockInsights(topic)}
	}
	return Result{Insights: env.Results, Live: len(env.Results) > 0}
}

// Recommended returns topics related to topic, or DefaultRecommendations.
func (c *Client) Recommended(ctx context.Context, topic string) []Topic {
	body := recommendationRequest{
		Type: "culture",
		Context: map[string]any{
			"reference":        topic,
			"category":         "educational",
			"related_subjects": true,
		},
		Filter: requestFilter{Limit: 6, Diversity: 0.9},
	}

	var env resultsEnvelope
	err := c.do(ctx, http.MethodPost, "/recommendations", nil, body, &env)
	if err == nil && len(env.Results) == 0 {
		err = errors.New("empty results")
	}
	if err != nil {
		c.fallback("recommended", topic, err)
		return DefaultRecommendations()
	}

	out := make([]Topic, 0, len(env.Results))
	for _, item := range env.Results {
		title := item.Label()
		desc := item.Description
		if desc == "" {
			desc = "Explore " + title
		}
		conf := item.Confidence
		if conf == 0 {
			conf = 0.8
		}
		out = append(out, Topic{Title: title, Description: desc, Confidence: conf})
	}
	return out
}

// Trending returns currently trending cultural topics, or DefaultTrending.
func (c *Client) Trending(ctx context.Context) []Topic {
	q := url.Values{}
	q.Set("limit", "8")
	q.Set("category", "educational")

	var env resultsEnvelope
	err := c.do(ctx, http.MethodGet, "/trending/culture", q, nil, &env)
	if err == nil && len(env.Results) == 0 {
		err = errors.New("empty results")
	}
	if err != nil {
		c.fallback("trending", "", err)
		return DefaultTrending()
	}

	out := make([]Topic, 0, len(env.Results))
	for _, item := range env.Results {
		pop := item.Popularity
		if pop == 0 {
			pop = item.Score
		}
		out = append(out, Topic{Title: item.Label(), Description: item.Description, Popularity: pop})
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if !c.Live() {
		return errNoCredential
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Version", "1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, path, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) fallback(op, topic string, err error) {
	reason := err.Error()
	if errors.Is(err, errNoCredential) {
		reason = "no_credential"
	}
	c.log.Warn("using fallback data", "op", op, "topic", topic, "reason", reason)
}
