package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

type httpServer struct {
	app  *fiber.App
	addr string
}

func NewHTTPServer(app *fiber.App, addr string) *httpServer {
	return &httpServer{
		app:  app,
		addr: addr,
	}
}

func (s *httpServer) Name() string { return "http_server" }

func (s *httpServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", s.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
