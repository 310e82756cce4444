// Package conversation mediates user actions against one session's state.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"sync"
	"time"

	"github.com/dskvich/game-analyst/pkg/domain"
	"github.com/dskvich/game-analyst/pkg/extractor"
	"github.com/dskvich/game-analyst/pkg/logger"
	"github.com/dskvich/game-analyst/pkg/prompt"
	"github.com/dskvich/game-analyst/pkg/store"
)

const pdfMimeType = "application/pdf"

type CompletionClient interface {
	Complete(ctx context.Context, req domain.CompletionRequest, credential string) (string, error)
}

// Controller runs the Idle -> Pending -> Idle cycle for a single session.
// At most one completion call is in flight; a second Submit while pending is
// rejected with domain.ErrBusy, never queued.
type Controller struct {
	store   *store.Store
	client  CompletionClient
	timeout time.Duration

	mu         sync.Mutex
	credential string
	cancel     context.CancelFunc
}

// NewController starts a session seeded with the greeting. A zero timeout
// leaves the completion call unbounded.
func NewController(client CompletionClient, timeout time.Duration) *Controller {
	return &Controller{
		store:   store.New(domain.NewMessage(domain.RoleAssistant, domain.GreetingMessage)),
		client:  client,
		timeout: timeout,
	}
}

func (c *Controller) Snapshot() domain.ConversationState {
	return c.store.Snapshot()
}

// SetCredential keeps the direct-mode API key in memory for this session only.
func (c *Controller) SetCredential(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.credential = strings.TrimSpace(key)
}

func (c *Controller) HasCredential() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.credential != ""
}

// Submit answers one user turn. The user message is committed before the
// call; the answer, or a readable error, is committed after it. Completion
// failures never surface as an error here.
func (c *Controller) Submit(ctx context.Context, text string) (domain.ConversationState, error) {
	if strings.TrimSpace(text) == "" {
		return c.store.Snapshot(), domain.ErrEmptyMessage
	}

	t, ok := c.beginTask(ctx, text)
	if !ok {
		return c.store.Snapshot(), domain.ErrBusy
	}

	c.complete(ctx, t)

	return c.store.Snapshot(), nil
}

type task struct {
	ctx        context.Context
	request    domain.CompletionRequest
	credential string
	text       string
	done       func()
}

// beginTask marks the session pending and stores the cancel func of the
// call in one step under c.mu, so a Cancel that observes the pending flag
// always reaches the call.
func (c *Controller) beginTask(ctx context.Context, text string) (task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.BeginRequest() {
		return task{}, false
	}

	// Assemble from committed turns only; the new text travels as the final turn.
	req := prompt.Assemble(c.store.Snapshot(), text)

	var (
		callCtx context.Context
		cancel  context.CancelFunc
	)
	if c.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	c.cancel = cancel

	return task{
		ctx:        callCtx,
		request:    req,
		credential: c.credential,
		text:       text,
		done: func() {
			cancel()
			c.mu.Lock()
			c.cancel = nil
			c.mu.Unlock()
			c.store.EndRequest()
		},
	}, true
}

func (c *Controller) complete(ctx context.Context, t task) {
	defer t.done()

	c.store.AppendMessage(domain.NewMessage(domain.RoleUser, t.text))

	slog.InfoContext(ctx, "Generating text response", "promptLength", len(t.text), "turns", len(t.request.Turns), "documentChars", len(t.request.DocumentExcerpt))

	answer, err := c.client.Complete(t.ctx, t.request, t.credential)
	if err != nil {
		slog.ErrorContext(ctx, "Completion failed", logger.Err(err))
		c.store.AppendMessage(domain.NewMessage(domain.RoleAssistant, domain.CompletionFailedText(err)))
		return
	}

	c.store.AppendMessage(domain.NewMessage(domain.RoleAssistant, answer))
}

// Cancel aborts the in-flight completion call, if any. The turn still ends
// with an assistant error message.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
}

// AttachDocument extracts text from a PDF upload and makes it the session's
// document. Rejected uploads leave the state untouched.
func (c *Controller) AttachDocument(ctx context.Context, name, contentType string, data []byte) (domain.ConversationState, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != pdfMimeType {
		return c.store.Snapshot(), fmt.Errorf("%w: got %q", domain.ErrInvalidFileType, contentType)
	}

	text, err := extractor.Extract(data)
	if err != nil {
		slog.WarnContext(ctx, "Document rejected", "name", name, "sizeBytes", len(data), logger.Err(err))
		return c.store.Snapshot(), err
	}

	c.store.SetDocument(domain.DocumentContext{
		RawText:     text,
		ExtractedAt: time.Now(),
		SourceName:  name,
	})
	c.store.AppendMessage(domain.NewMessage(domain.RoleAssistant, domain.DocumentReceivedText(name)))

	slog.InfoContext(ctx, "Document attached", "name", name, "sizeBytes", len(data), "textLength", len(text))

	return c.store.Snapshot(), nil
}

// RemoveDocument clears the document. Calling it with none attached is a no-op.
func (c *Controller) RemoveDocument() domain.ConversationState {
	c.store.ClearDocument()
	return c.store.Snapshot()
}
