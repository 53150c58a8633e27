package mail

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers one email. The worker owns the concrete
// implementation; everything upstream only sees the interface.
type Sender interface {
	Send(ctx context.Context, payload SendPayload) error
}

type logSender struct {
	logger *zap.Logger
	from   string
}

// NewLogSender returns a sender that records deliveries in the log
// instead of talking to an SMTP relay. Used in development and as the
// default until a relay is configured.
func NewLogSender(logger *zap.Logger, from string) Sender {
	return &logSender{logger: logger, from: from}
}

func (s *logSender) Send(_ context.Context, payload SendPayload) error {
	s.logger.Info("email delivered",
		zap.String("from", s.from),
		zap.String("to", payload.To),
		zap.String("subject", payload.Subject),
	)
	return nil
}
