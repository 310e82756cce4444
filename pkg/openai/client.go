// Package openai calls the chat completion endpoint directly with a
// caller-supplied bearer credential.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/dskvich/game-analyst/pkg/domain"
	"github.com/dskvich/game-analyst/pkg/logger"
)

type client struct {
	baseURL string
	model   string
	hc      *http.Client
}

func NewClient(baseURL, model string, hc *http.Client) *client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if hc == nil {
		hc = http.DefaultClient
	}

	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		hc:      hc,
	}
}

// Complete performs exactly one chat completion round trip. Every failure is
// a *domain.CompletionError; nothing is retried.
func (c *client) Complete(ctx context.Context, req domain.CompletionRequest, credential string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", &domain.CompletionError{
			Cause: &domain.CredentialMissingError{Reason: "OpenAI API key is not set, enter your API key first"},
		}
	}

	cfg := goopenai.DefaultConfig(credential)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = c.hc
	api := goopenai.NewClientWithConfig(cfg)

	chatRequest := c.buildChatCompletionRequest(req)
	slog.DebugContext(ctx, "Calling OpenAI for chat completion", "model", chatRequest.Model, "messagesCount", len(chatRequest.Messages))

	resp, err := api.CreateChatCompletion(ctx, chatRequest)
	if err != nil {
		slog.ErrorContext(ctx, "OpenAI API error", logger.Err(err))
		return "", &domain.CompletionError{Cause: classify(err)}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &domain.CompletionError{
			Cause: &domain.ProviderError{StatusCode: http.StatusOK, Message: "no completion response from API"},
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *client) buildChatCompletionRequest(req domain.CompletionRequest) goopenai.ChatCompletionRequest {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(req.Turns)+2)
	messages = append(messages, goopenai.ChatCompletionMessage{Role: chatMessageRoleSystem, Content: req.SystemPrompt})

	for _, t := range req.Turns {
		switch t.Role {
		case domain.RoleUser:
			messages = append(messages, goopenai.ChatCompletionMessage{Role: chatMessageRoleUser, Content: t.Text})
		case domain.RoleAssistant:
			messages = append(messages, goopenai.ChatCompletionMessage{Role: chatMessageRoleAssistant, Content: t.Text})
		}
	}

	messages = append(messages, goopenai.ChatCompletionMessage{Role: chatMessageRoleUser, Content: req.NewUserText})

	return goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}
}

func classify(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = genericProviderFailure
		}
		return &domain.ProviderError{StatusCode: apiErr.HTTPStatusCode, Message: msg}
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.ProviderError{StatusCode: reqErr.HTTPStatusCode, Message: genericProviderFailure}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &domain.TransportError{Err: err}
	}

	return &domain.ProviderError{Message: fmt.Sprintf("decoding response data: %v", err)}
}
