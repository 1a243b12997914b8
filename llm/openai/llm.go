package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"buyingagent"
)

type options struct {
	Temperature float32 `json:"temperature,omitempty"`
	TopP        float32 `json:"top_p,omitempty"`
	MaxTokens   int32   `json:"max_tokens,omitempty"`
}

// Client talks to any OpenAI-compatible chat completions endpoint, including
// the Hugging Face router.
type Client struct {
	endpoint   string
	model      string
	token      string
	httpClient buyingagent.HTTPClient
	options    options
}

type ClientOpts struct {
	BaseEndpoint string
	Token        string
	Model        buyingagent.ModelConfig
	HTTPClient   buyingagent.HTTPClient
}

func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Model.ModelID == "" {
		return nil, fmt.Errorf("invalid model id")
	}
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("http client is required")
	}

	return &Client{
		model:      opts.Model.ModelID,
		token:      opts.Token,
		httpClient: opts.HTTPClient,
		endpoint:   opts.BaseEndpoint + "/chat/completions",
		options: options{
			Temperature: opts.Model.Temperature,
			TopP:        opts.Model.TopP,
			MaxTokens:   opts.Model.MaxTokens,
		},
	}, nil
}

func (c *Client) ModelID() string { return c.model }

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	TopP        float32       `json:"top_p,omitempty"`
	MaxTokens   int32         `json:"max_tokens,omitempty"`
}

type wireResponse struct {
	Choices []struct {
		Message      wireMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends the message history to the chat completions endpoint and returns
// the first choice's content.
func (c *Client) Chat(ctx context.Context, messages []buyingagent.ChatMessage) (buyingagent.ChatResponse, error) {
	slog.Info("LLM_CLIENT: Invoked", "messages_len", len(messages))

	msgs := make([]wireMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, wireMessage{Role: m.Role, Content: m.Content})
	}

	reqBody := wireRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: c.options.Temperature,
		TopP:        c.options.TopP,
		MaxTokens:   c.options.MaxTokens,
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return buyingagent.ChatResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(reqBytes))
	if err != nil {
		return buyingagent.ChatResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return buyingagent.ChatResponse{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return buyingagent.ChatResponse{}, fmt.Errorf("LLM_CLIENT: %s: %s", resp.Status, string(body))
	}

	var wr wireResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return buyingagent.ChatResponse{}, fmt.Errorf("LLM_CLIENT: decode response: %w", err)
	}
	if wr.Error != nil {
		return buyingagent.ChatResponse{}, fmt.Errorf("LLM_CLIENT: %s", wr.Error.Message)
	}
	if len(wr.Choices) == 0 {
		return buyingagent.ChatResponse{}, fmt.Errorf("LLM_CLIENT: empty choices in response")
	}

	choice := wr.Choices[0]
	if choice.FinishReason == "length" {
		slog.Warn("LLM_CLIENT: model hit max_tokens limit; output may be truncated")
	}

	return buyingagent.ChatResponse{Content: choice.Message.Content}, nil
}
