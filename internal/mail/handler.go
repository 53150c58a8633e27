package mail

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Handler processes queued send tasks.
type Handler struct {
	sender Sender
	logger *zap.Logger
}

// NewHandler constructs a task handler.
func NewHandler(sender Sender, logger *zap.Logger) *Handler {
	return &Handler{sender: sender, logger: logger}
}

// HandleSend delivers one queued email. A payload that cannot be
// decoded is dropped rather than retried; retrying cannot fix it.
func (h *Handler) HandleSend(ctx context.Context, t *asynq.Task) error {
	var payload SendPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("undecodable mail task", zap.Error(err))
		return asynq.SkipRetry
	}
	if err := h.sender.Send(ctx, payload); err != nil {
		h.logger.Warn("mail delivery failed",
			zap.String("to", payload.To),
			zap.String("subject", payload.Subject),
			zap.Error(err),
		)
		return err
	}
	return nil
}
