package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler implements slog.Handler for TTY-optimized text output.
// Output is colorized only when the writer supports it.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string

	useColor   bool
	timeColor  *color.Color
	levelColor map[slog.Level]*color.Color
	keyColor   *color.Color
}

// NewHandler creates a new TTY-optimized text handler.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts:     *opts,
		out:      out,
		mu:       &sync.Mutex{},
		useColor: SupportsColor(out),
	}

	if h.useColor {
		h.timeColor = color.New(color.FgHiBlack)
		h.keyColor = color.New(color.FgCyan)
		h.levelColor = map[slog.Level]*color.Color{
			LevelTrace:      color.New(color.FgHiBlack),
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgGreen),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed, color.Bold),
		}
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes one line: time, level, message, then key=value attributes.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		sb.WriteString(h.paint(h.timeColor, r.Time.Format(time.Kitchen)))
		sb.WriteByte(' ')
	}

	fmt.Fprintf(&sb, "%-5s ", h.paint(h.colorFor(r.Level), levelName(r.Level)))
	sb.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		h.appendAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *Handler) appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.appendAttr(sb, key, ga)
		}
		return
	}

	value := fmt.Sprint(a.Value.Any())
	if strings.ContainsAny(value, " \t\n\"=") {
		value = strconv.Quote(value)
	}
	fmt.Fprintf(sb, " %s=%s", h.paint(h.keyColor, key), value)
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.useColor || c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) colorFor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return h.levelColor[slog.LevelError]
	case level >= slog.LevelWarn:
		return h.levelColor[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return h.levelColor[slog.LevelInfo]
	case level >= slog.LevelDebug:
		return h.levelColor[slog.LevelDebug]
	default:
		return h.levelColor[LevelTrace]
	}
}

func levelName(level slog.Level) string {
	if level <= LevelTrace {
		return "TRACE"
	}
	return level.String()
}

// WithAttrs returns a new Handler with the given attributes. Attributes added
// inside a group carry the group prefix.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newH.attrs, h.attrs)

	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup returns a new Handler whose record attributes are prefixed with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = make([]string, len(h.groups)+1)
	copy(newH.groups, h.groups)
	newH.groups[len(h.groups)] = name
	return &newH
}
