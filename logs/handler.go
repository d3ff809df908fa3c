package logs

import (
	"context"
	"log/slog"
)

// Handler adds the run and program source carried by the context to every
// record.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if info, ok := ctx.Value(RunKey).(runInfo); ok {
		record.Add("logs.run", info.run)
		if info.source != "" {
			record.Add("logs.source", info.source)
		}
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithGroup(name),
	}
}
