// Package relay talks to the completion relay, an intermediary that holds the
// provider credential server-side.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dskvich/game-analyst/pkg/domain"
	"github.com/dskvich/game-analyst/pkg/logger"
)

const genericRelayFailure = "Failed to get response from relay"

type client struct {
	url string
	hc  *http.Client
}

func NewClient(url string, hc *http.Client) *client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &client{url: url, hc: hc}
}

// Complete forwards req to the relay in one round trip. The credential is
// ignored: the relay injects its own.
func (c *client) Complete(ctx context.Context, req domain.CompletionRequest, _ string) (string, error) {
	payload := Request{
		Message:    req.NewUserText,
		Messages:   EntriesFromTurns(req.Turns),
		PDFContext: req.DocumentExcerpt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &domain.CompletionError{Cause: &domain.ProviderError{Message: fmt.Sprintf("marshaling relay request: %v", err)}}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &domain.CompletionError{Cause: &domain.TransportError{Err: fmt.Errorf("creating HTTP request: %w", err)}}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	slog.DebugContext(ctx, "Calling relay", "url", c.url, "messagesCount", len(payload.Messages), "pdfContextLength", len(payload.PDFContext))

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		slog.ErrorContext(ctx, "Relay unreachable", logger.Err(err))
		return "", &domain.CompletionError{Cause: &domain.TransportError{Err: err}}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.CompletionError{Cause: &domain.TransportError{Err: fmt.Errorf("reading relay response: %w", err)}}
	}

	var out Response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Error
		if decodeErr != nil || msg == "" {
			msg = genericRelayFailure
		}
		return "", &domain.CompletionError{Cause: &domain.ProviderError{StatusCode: resp.StatusCode, Message: msg}}
	}

	if decodeErr != nil {
		return "", &domain.CompletionError{
			Cause: &domain.ProviderError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decoding relay response: %v", decodeErr)},
		}
	}
	if out.Response == "" {
		return "", &domain.CompletionError{
			Cause: &domain.ProviderError{StatusCode: resp.StatusCode, Message: "relay response has no answer"},
		}
	}

	return out.Response, nil
}
