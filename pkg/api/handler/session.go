package handler

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/dskvich/game-analyst/pkg/api/response"
	"github.com/dskvich/game-analyst/pkg/conversation"
	"github.com/dskvich/game-analyst/pkg/domain"
	"github.com/dskvich/game-analyst/pkg/logger"
	"github.com/dskvich/game-analyst/pkg/render"
)

type SessionRepository interface {
	Save(id string, controller *conversation.Controller)
	GetByID(id string) (*conversation.Controller, bool)
	Delete(id string) bool
}

type sessions struct {
	repo          SessionRepository
	newController func() *conversation.Controller
	uploadLimit   int64
	writer        response.JSONResponseWriter
}

func NewSessions(repo SessionRepository, newController func() *conversation.Controller, uploadLimit int64) *sessions {
	return &sessions{
		repo:          repo,
		newController: newController,
		uploadLimit:   uploadLimit,
	}
}

func (h *sessions) RegisterRoutes(r fiber.Router) {
	g := r.Group("/sessions")
	g.Post("", h.Create)
	g.Get("/:id", h.Show)
	g.Delete("/:id", h.End)
	g.Put("/:id/credential", h.SetCredential)
	g.Post("/:id/document", h.AttachDocument)
	g.Delete("/:id/document", h.RemoveDocument)
	g.Post("/:id/messages", h.Submit)
}

type messageView struct {
	ID        string      `json:"id"`
	Role      domain.Role `json:"role"`
	Text      string      `json:"text"`
	HTML      string      `json:"html"`
	CreatedAt time.Time   `json:"createdAt"`
}

type documentView struct {
	SourceName  string    `json:"sourceName"`
	ExtractedAt time.Time `json:"extractedAt"`
	Characters  int       `json:"characters"`
}

type sessionView struct {
	ID             string        `json:"id"`
	History        []messageView `json:"history"`
	PendingRequest bool          `json:"pendingRequest"`
	Document       *documentView `json:"document,omitempty"`
	HasCredential  bool          `json:"hasCredential"`
}

func newSessionView(id string, ctrl *conversation.Controller, state domain.ConversationState) sessionView {
	view := sessionView{
		ID: id,
		History: lo.Map(state.History, func(m domain.Message, _ int) messageView {
			return messageView{ID: m.ID, Role: m.Role, Text: m.Text, HTML: render.HTML(m.Text), CreatedAt: m.CreatedAt}
		}),
		PendingRequest: state.PendingRequest,
		HasCredential:  ctrl.HasCredential(),
	}

	if state.Document != nil {
		view.Document = &documentView{
			SourceName:  state.Document.SourceName,
			ExtractedAt: state.Document.ExtractedAt,
			Characters:  len(state.Document.RawText),
		}
	}

	return view
}

func (h *sessions) Create(c *fiber.Ctx) error {
	id := uuid.NewString()
	ctrl := h.newController()
	h.repo.Save(id, ctrl)

	slog.InfoContext(c.UserContext(), "Session created", "session", id)

	c.Status(fiber.StatusCreated)
	return c.JSON(newSessionView(id, ctrl, ctrl.Snapshot()))
}

func (h *sessions) lookup(c *fiber.Ctx) (string, *conversation.Controller, error) {
	id := c.Params("id")
	ctrl, ok := h.repo.GetByID(id)
	if !ok {
		return id, nil, h.writer.WriteErrorResponse(c, fiber.StatusNotFound, domain.ErrSessionNotFound.Error())
	}
	return id, ctrl, nil
}

func (h *sessions) Show(c *fiber.Ctx) error {
	id, ctrl, err := h.lookup(c)
	if ctrl == nil {
		return err
	}
	return h.writer.WriteSuccessResponse(c, newSessionView(id, ctrl, ctrl.Snapshot()))
}

func (h *sessions) End(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.repo.Delete(id) {
		return h.writer.WriteErrorResponse(c, fiber.StatusNotFound, domain.ErrSessionNotFound.Error())
	}

	slog.InfoContext(c.UserContext(), "Session ended", "session", id)
	return c.SendStatus(fiber.StatusNoContent)
}

type credentialRequest struct {
	APIKey string `json:"apiKey"`
}

func (h *sessions) SetCredential(c *fiber.Ctx) error {
	id, ctrl, err := h.lookup(c)
	if ctrl == nil {
		return err
	}

	var req credentialRequest
	if err := c.BodyParser(&req); err != nil {
		return h.writer.WriteErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}

	ctrl.SetCredential(req.APIKey)
	return h.writer.WriteSuccessResponse(c, newSessionView(id, ctrl, ctrl.Snapshot()))
}

func (h *sessions) AttachDocument(c *fiber.Ctx) error {
	id, ctrl, err := h.lookup(c)
	if ctrl == nil {
		return err
	}
	ctx := c.UserContext()

	fh, err := c.FormFile("file")
	if err != nil {
		return h.writer.WriteErrorResponse(c, fiber.StatusBadRequest, "file is required")
	}
	if h.uploadLimit > 0 && fh.Size > h.uploadLimit {
		return h.writer.WriteErrorResponse(c, fiber.StatusRequestEntityTooLarge, "file is too large")
	}

	f, err := fh.Open()
	if err != nil {
		slog.ErrorContext(ctx, "opening uploaded file", logger.Err(err))
		return h.writer.WriteErrorResponse(c, fiber.StatusBadRequest, "file could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.ErrorContext(ctx, "reading uploaded file", logger.Err(err))
		return h.writer.WriteErrorResponse(c, fiber.StatusBadRequest, "file could not be read")
	}

	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == "" || contentType == fiber.MIMEOctetStream {
		contentType = mimetype.Detect(data).String()
	}

	state, err := ctrl.AttachDocument(ctx, fh.Filename, contentType, data)

	var extractionErr *domain.ExtractionError
	switch {
	case errors.Is(err, domain.ErrInvalidFileType):
		return h.writer.WriteErrorResponse(c, fiber.StatusUnsupportedMediaType, "Invalid File Type: Please upload a PDF file.")
	case errors.As(err, &extractionErr):
		return h.writer.WriteErrorResponse(c, fiber.StatusUnprocessableEntity, "The PDF could not be read: "+extractionErr.Error())
	case err != nil:
		return err
	}

	return h.writer.WriteSuccessResponse(c, newSessionView(id, ctrl, state))
}

func (h *sessions) RemoveDocument(c *fiber.Ctx) error {
	id, ctrl, err := h.lookup(c)
	if ctrl == nil {
		return err
	}
	return h.writer.WriteSuccessResponse(c, newSessionView(id, ctrl, ctrl.RemoveDocument()))
}

type submitRequest struct {
	Text string `json:"text"`
}

func (h *sessions) Submit(c *fiber.Ctx) error {
	id, ctrl, err := h.lookup(c)
	if ctrl == nil {
		return err
	}

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return h.writer.WriteErrorResponse(c, fiber.StatusBadRequest, "invalid request body")
	}

	state, err := ctrl.Submit(c.UserContext(), req.Text)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return h.writer.WriteErrorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrBusy):
		return h.writer.WriteErrorResponse(c, fiber.StatusConflict, err.Error())
	case err != nil:
		return err
	}

	return h.writer.WriteSuccessResponse(c, newSessionView(id, ctrl, state))
}
