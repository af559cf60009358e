// Package logging sets up the slog logger of the datatable command.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// Enable if any handler is enabled for this level
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// Config of the logger.
type Config struct {
	// Output of the text handler, usually os.Stderr
	Output io.Writer
	Level  slog.Level
	// SeqURL of a Seq server receiving the log records in addition
	// to Output, no records are sent if empty
	SeqURL string
}

// SetupLogger returns a logger for config and a cleanup function
// that flushes pending Seq records.
func SetupLogger(config Config) (*slog.Logger, func()) {
	consoleHandler := slog.NewTextHandler(config.Output, &slog.HandlerOptions{
		Level: config.Level,
	})
	if config.SeqURL == "" {
		return slog.New(consoleHandler), func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		config.SeqURL,
		slogseq.WithBatchSize(1),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(&slog.HandlerOptions{
			Level: config.Level,
		}),
	)
	// If Seq is not available, use console only
	if seqHandler == nil {
		return slog.New(consoleHandler), func() {}
	}

	logger := slog.New(&multiHandler{
		handlers: []slog.Handler{consoleHandler, seqHandler},
	})
	closeFn := func() {
		seqHandler.Close()
	}
	return logger, closeFn
}
