package linkwarden

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const maxErrorBody = 1024

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the Linkwarden API rooted at baseURL, e.g.
// http://localhost:3002/api/v1.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With(zap.String("component", "linkwarden")),
	}
}

// ListLinks fetches all links visible to the API key.
func (c *Client) ListLinks(ctx context.Context) ([]Link, error) {
	data, err := c.do(ctx, http.MethodGet, "/links", nil)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	var lr listResponse
	if err := json.Unmarshal(data, &lr); err != nil {
		return nil, fmt.Errorf("decode links: %w", err)
	}

	c.logger.Debug("Links retrieved", zap.Int("total", len(lr.Response)))
	for _, l := range lr.Response {
		c.logger.Debug("Link details", zap.Int("link_id", l.ID), zap.String("name", l.Name), zap.String("url", l.URL))
	}

	return lr.Response, nil
}

// UpdateTags replaces the tag set of link with tags. The link's other editable fields
// are sent back unchanged.
func (c *Client) UpdateTags(ctx context.Context, link Link, tags []string) error {
	req := updateRequest{
		ID:          link.ID,
		Name:        link.Name,
		URL:         link.URL,
		Description: link.Description,
		Tags:        make([]Tag, 0, len(tags)),
	}
	if link.Collection != nil {
		req.Collection = *link.Collection
	}
	for _, t := range tags {
		req.Tags = append(req.Tags, Tag{Name: t})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal update for link %d: %w", link.ID, err)
	}

	c.logger.Debug("Updating link", zap.Int("link_id", link.ID), zap.Strings("tags", tags), zap.ByteString("payload", body))

	if _, err := c.do(ctx, http.MethodPut, "/links/"+strconv.Itoa(link.ID), body); err != nil {
		return fmt.Errorf("update link %d: %w", link.ID, err)
	}

	c.logger.Info("Updated link tags", zap.Int("link_id", link.ID))
	return nil
}

// Ping verifies the API is reachable and the key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, "/links", nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = append(data[:maxErrorBody:maxErrorBody], "..."...)
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, data)
	}

	return data, nil
}
