// Package yandexgpt is a minimal client for the YandexGPT foundation
// models completion API, implementing the classifier backend contract.
package yandexgpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/citops/promisetrack/pkg/utils/safe"
)

const (
	DefaultEndpoint = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"

	defaultModel       = "yandexgpt"
	defaultTemperature = 0.1
	defaultMaxTokens   = 100
)

type Client struct {
	apiKey      string
	folderID    string
	endpoint    string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

func WithTemperature(temperature float64) Option {
	return func(c *Client) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Client) {
		c.maxTokens = maxTokens
	}
}

func New(apiKey, folderID string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("api key is required")
	}
	if folderID == "" {
		return nil, goerr.New("folder ID is required")
	}

	c := &Client{
		apiKey:      apiKey,
		folderID:    folderID,
		endpoint:    DefaultEndpoint,
		model:       defaultModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	// The API expects this field as a string.
	MaxTokens string `json:"maxTokens"`
}

type completionRequest struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions completionOptions `json:"completionOptions"`
	Messages          []message         `json:"messages"`
}

type completionResponse struct {
	Result struct {
		Alternatives []struct {
			Message message `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/%s", c.folderID, c.model),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: c.temperature,
			MaxTokens:   strconv.Itoa(c.maxTokens),
		},
		Messages: []message{
			{Role: "system", Text: system},
			{Role: "user", Text: user},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call completion API")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", goerr.New("completion API returned error",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", goerr.Wrap(err, "failed to decode completion response")
	}

	if len(result.Result.Alternatives) == 0 {
		return "", goerr.New("completion response has no alternatives")
	}
	text := result.Result.Alternatives[0].Message.Text
	if text == "" {
		return "", goerr.New("completion response text is empty")
	}

	return text, nil
}
