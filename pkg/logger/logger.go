// Package logger provides a colored, line oriented slog.Handler for console output.
package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type contextKey string

const requestIDKey contextKey = "request_id"

type Options struct {
	// Level is the minimum level to log. Defaults to slog.LevelInfo when nil.
	Level slog.Leveler

	TimeFormat string

	// AddSource prints file:line of the log call.
	AddSource bool

	// NoColor strips ANSI sequences from the output.
	NoColor bool
}

var DefaultOptions = &Options{
	Level:      slog.LevelDebug,
	TimeFormat: time.DateTime,
	AddSource:  true,
}

type Handler struct {
	opts   Options
	attrs  []slog.Attr
	groups []string

	mu  *sync.Mutex
	out io.Writer
}

// NewHandler creates a Handler writing to out. A nil opts means DefaultOptions.
func NewHandler(out io.Writer, opts *Options) *Handler {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Handler{opts: *opts, mu: &sync.Mutex{}, out: out}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.BgCyan, color.FgHiWhite),
	slog.LevelInfo:  color.New(color.BgGreen, color.FgHiWhite),
	slog.LevelWarn:  color.New(color.BgYellow, color.FgHiWhite),
	slog.LevelError: color.New(color.BgRed, color.FgHiWhite),
}

var (
	faint   = color.New(color.Faint)
	magenta = color.New(color.FgMagenta)
	cyan    = color.New(color.FgCyan)
	red     = color.New(color.FgRed)
)

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	bf := bufPool.Get().(*bytes.Buffer)
	bf.Reset()
	defer bufPool.Put(bf)

	if !r.Time.IsZero() {
		faint.Fprint(bf, r.Time.Format(h.opts.TimeFormat))
		bf.WriteByte(' ')
	}

	if requestID, ok := RequestIDFromContext(ctx); ok {
		magenta.Fprint(bf, requestID)
		bf.WriteByte(' ')
	}

	if c, ok := levelColors[r.Level]; ok {
		c.Fprintf(bf, "%-5s", r.Level.String())
	} else {
		fmt.Fprintf(bf, "%-5s", r.Level.String())
	}
	bf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fmt.Fprintf(bf, "%s:%d ", filepath.Base(f.File), f.Line)
	}

	bf.WriteString("| ")
	bf.WriteString(r.Message)

	writeAttr := func(a slog.Attr) {
		key := a.Key
		bf.WriteByte(' ')
		if strings.Contains(a.Key, "err") {
			red.Fprintf(bf, "%s=", key)
		} else {
			cyan.Fprintf(bf, "%s=", key)
		}
		bf.WriteString(a.Value.String())
	}

	for _, a := range h.attrs {
		writeAttr(a)
	}
	prefix := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		a.Key = prefix + a.Key
		writeAttr(a)
		return true
	})
	bf.WriteByte('\n')

	b := bf.Bytes()
	if h.opts.NoColor {
		b = ansi.ReplaceAll(b, nil)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(b)
	return err
}

// WithAttrs stores attrs already qualified by the groups opened so far.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append([]slog.Attr{}, h.attrs...)
	prefix := h.groupPrefix()
	for _, a := range attrs {
		a.Key = prefix + a.Key
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

var bufPool = sync.Pool{
	New: func() any { return &bytes.Buffer{} },
}

var ansi = regexp.MustCompile("[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))")

// Err returns an attribute for err, keyed "err".
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("err", "<nil>")
	}
	return slog.String("err", err.Error())
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}
