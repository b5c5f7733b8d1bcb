package ollama

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// ErrNoResponse is returned when Ollama answers 200 without a response field.
var ErrNoResponse = errors.New("ollama result has no response field")

const maxErrorBody = 1024

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	host       string
	model      string
	httpClient *http.Client
}

// NewClient creates a client for the Ollama server at host. Per-call deadlines come
// from the caller's context; the client timeout is only a backstop.
func NewClient(host, model string) *Client {
	return &Client{
		host:  strings.TrimRight(host, "/"),
		model: model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *Client) Model() string {
	return c.model
}

// Generate returns the text Ollama produced for the prompt.
func (c *Client) Generate(ctx context.Context, gr GenerateRequest) (string, error) {
	req := generateRequest{
		Model:       c.model,
		Prompt:      gr.Prompt,
		Stream:      false,
		Temperature: gr.Temperature,
		NumPredict:  gr.NumPredict,
		Options: generateOptions{
			Temperature: gr.Temperature,
			NumPredict:  gr.NumPredict,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama generate request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama generate: status %d: %s", resp.StatusCode, truncate(data))
	}

	var result generateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode generate response: %w: %s", err, truncate(data))
	}

	if result.Response == nil {
		return "", ErrNoResponse
	}

	return *result.Response, nil
}

// IsHealthy checks if Ollama is reachable.
func (c *Client) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
