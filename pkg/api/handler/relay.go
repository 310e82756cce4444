package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/dskvich/game-analyst/pkg/api/response"
	"github.com/dskvich/game-analyst/pkg/domain"
	"github.com/dskvich/game-analyst/pkg/logger"
	"github.com/dskvich/game-analyst/pkg/prompt"
	"github.com/dskvich/game-analyst/pkg/relay"
)

type CompletionClient interface {
	Complete(ctx context.Context, req domain.CompletionRequest, credential string) (string, error)
}

// relayHandler is the server half of relay mode: it holds the provider
// credential and forwards the browser's logical payload to the provider.
type relayHandler struct {
	client     CompletionClient
	credential string
	writer     response.JSONResponseWriter
}

func NewRelay(client CompletionClient, credential string) *relayHandler {
	return &relayHandler{
		client:     client,
		credential: credential,
	}
}

func (h *relayHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/chat-gpt", h.Complete)
}

func (h *relayHandler) Complete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req relay.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return h.writer.WriteErrorResponse(c, fiber.StatusBadRequest, "Error: invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return h.writer.WriteErrorResponse(c, fiber.StatusBadRequest, "Error: message is required")
	}

	if h.credential == "" {
		err := &domain.CredentialMissingError{Reason: "OpenAI API key not configured"}
		slog.ErrorContext(ctx, "Relay misconfigured", logger.Err(err))
		return h.writer.WriteErrorResponse(c, fiber.StatusInternalServerError, "Error: OpenAI API key not configured")
	}

	prior := relay.TurnsFromEntries(lo.Subset(req.Messages, -prompt.HistoryWindow, prompt.HistoryWindow))
	completionReq := prompt.Compose(req.PDFContext, prior, req.Message)

	slog.InfoContext(ctx, "Relaying chat completion",
		"messagesCount", len(completionReq.Turns)+2,
		"pdfContextLength", len(req.PDFContext),
	)

	answer, err := h.client.Complete(ctx, completionReq, h.credential)
	if err != nil {
		slog.ErrorContext(ctx, "Error in relay completion", logger.Err(err))
		return h.writer.WriteErrorResponse(c, fiber.StatusInternalServerError, "Error: "+err.Error())
	}

	return h.writer.WriteSuccessResponse(c, relay.Response{Response: answer})
}
