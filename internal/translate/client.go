// Package translate machine-translates Spanish article fields to English
// through an OpenAI-compatible chat completion endpoint.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = `You translate content for a Spanish medical negligence law firm website into British English.
You receive a JSON object whose values are Spanish text, some of them Markdown.
Reply with a JSON object with exactly the same keys and the English translation as each value.
Preserve Markdown syntax, links and line breaks. Do not add commentary.`

var ErrEmptyResponse = errors.New("translate: empty response")

type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
}

// New builds a client for baseURL. Requests are not retried so the
// upstream timeout bounds the whole call.
func New(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		api: openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
		model:   model,
		timeout: timeout,
	}
}

// Translate returns the English value of every field in fields.
func (c *Client) Translate(ctx context.Context, fields map[string]string) (map[string]string, error) {
	if len(fields) == 0 {
		return map[string]string{}, nil
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("translate: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(string(payload)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("translate: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return parseFields(resp.Choices[0].Message.Content)
}

// parseFields decodes the model reply, tolerating a Markdown code fence
// around the JSON object.
func parseFields(content string) (map[string]string, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	if content == "" {
		return nil, ErrEmptyResponse
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("translate: decode reply: %w", err)
	}
	return out, nil
}
