package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/game-analyst/pkg/domain"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newProvider(t *testing.T, status int, body string, captured *capturedRequest, auth *string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func sampleRequest() domain.CompletionRequest {
	return domain.CompletionRequest{
		SystemPrompt: "system facts",
		Turns: []domain.Turn{
			{Role: domain.RoleUser, Text: "earlier question"},
			{Role: domain.RoleAssistant, Text: "earlier answer"},
		},
		NewUserText: "Which game has the highest rating?",
	}
}

func TestCompleteSuccess(t *testing.T) {
	var (
		captured capturedRequest
		auth     string
	)
	srv := newProvider(t, http.StatusOK,
		`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Baldur's Gate 3, 96/100"}}]}`,
		&captured, &auth)

	c := NewClient(srv.URL+"/v1", "", srv.Client())
	got, err := c.Complete(context.Background(), sampleRequest(), "sk-test")

	require.NoError(t, err)
	assert.Equal(t, "Baldur's Gate 3, 96/100", got)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, DefaultModel, captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 0.0001)
	assert.Equal(t, MaxTokens, captured.MaxTokens)
	assert.False(t, captured.Stream)

	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system facts", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Equal(t, "user", captured.Messages[3].Role)
	assert.Equal(t, "Which game has the highest rating?", captured.Messages[3].Content)
}

func TestCompleteMissingCredential(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "", nil)

	_, err := c.Complete(context.Background(), sampleRequest(), "  ")

	var completionErr *domain.CompletionError
	require.ErrorAs(t, err, &completionErr)
	var credErr *domain.CredentialMissingError
	assert.ErrorAs(t, err, &credErr)
}

func TestCompleteProviderErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "error body message is surfaced",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Incorrect API key provided",
		},
		{
			name:        "unparseable error body gets a generic message",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantStatus:  http.StatusBadGateway,
			wantMessage: genericProviderFailure,
		},
		{
			name:        "success without choices",
			status:      http.StatusOK,
			body:        `{"id":"1","choices":[]}`,
			wantStatus:  http.StatusOK,
			wantMessage: "no completion response from API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newProvider(t, tt.status, tt.body, nil, nil)
			c := NewClient(srv.URL+"/v1", "", srv.Client())

			_, err := c.Complete(context.Background(), sampleRequest(), "sk-test")

			var providerErr *domain.ProviderError
			require.ErrorAs(t, err, &providerErr)
			assert.Equal(t, tt.wantStatus, providerErr.StatusCode)
			assert.Equal(t, tt.wantMessage, providerErr.Message)
		})
	}
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url+"/v1", "", nil)
	_, err := c.Complete(context.Background(), sampleRequest(), "sk-test")

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)

	var completionErr *domain.CompletionError
	assert.True(t, errors.As(err, &completionErr))
}
