package cohere

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	cohereapi "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/core"
	"github.com/cohere-ai/cohere-go/v2/option"
)

const defaultBaseURL = "https://api.cohere.ai"

// Client Cohere generate client bound to one model
type Client struct {
	model string
	co    *cohereclient.Client
}

// NewClient creates a Cohere client bound to one model.
func NewClient(apiKey, baseURL, model string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithToken(apiKey),
		option.WithBaseURL(strings.TrimRight(baseURL, "/")),
		// no SDK retries
		option.WithMaxAttempts(1),
	}
	if client != nil {
		opts = append(opts, option.WithHTTPClient(client))
	}
	return &Client{
		model: model,
		co:    cohereclient.NewClient(opts...),
	}
}

// StatusError non-2xx answer from the API
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cohere api error (status %d): %s", e.StatusCode, e.Body)
}

// Generate sends prompt and returns the text of the first generation.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := &cohereapi.GenerateRequest{
		Prompt: prompt,
		Model:  cohereapi.String(c.model),
	}
	if maxTokens > 0 {
		req.MaxTokens = cohereapi.Int(maxTokens)
	}

	resp, err := c.co.Generate(ctx, req)
	if err != nil {
		var apiErr *core.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
			body := ""
			if inner := apiErr.Unwrap(); inner != nil {
				body = inner.Error()
			}
			return "", &StatusError{StatusCode: apiErr.StatusCode, Body: body}
		}
		return "", fmt.Errorf("cohere generate failed: %w", err)
	}
	if resp == nil || len(resp.Generations) == 0 || resp.Generations[0] == nil {
		return "", fmt.Errorf("cohere returned no generations")
	}

	return resp.Generations[0].Text, nil
}
