package noop

import (
	"context"

	"github.com/rs/zerolog"

	"umlage/internal/port"
)

type noopNotifier struct {
	log zerolog.Logger
}

// NewNoopNotifier creates a no-op ReviewNotifier that only logs the flagged files.
func NewNoopNotifier(log zerolog.Logger) port.ReviewNotifier {
	return &noopNotifier{log: log}
}

func (n *noopNotifier) NotifyReview(_ context.Context, notice port.ReviewNotice) error {
	for _, it := range notice.Items {
		n.log.Info().Str("batch_id", notice.BatchID).Str("file", it.File).
			Str("status", it.Status).Str("reason", it.Reason).Msg("[NOOP EMAIL] invoice needs review")
	}
	return nil
}
