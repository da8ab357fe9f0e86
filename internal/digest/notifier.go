package digest

import (
	"context"

	"go.uber.org/zap"
)

// Notifier is the outbound delivery boundary, supplied by the
// transport layer. Delivery is best effort; the digest job ignores
// per-recipient results.
type Notifier interface {
	Notify(ctx context.Context, recipientExternalID int64, text string) error
}

// LogNotifier stands in when no transport is bound, writing digests to
// the log instead of a chat channel.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("digest.notifier")}
}

func (n *LogNotifier) Notify(_ context.Context, recipientExternalID int64, text string) error {
	n.log.Info("digest",
		zap.Int64("recipient", recipientExternalID),
		zap.String("text", text),
	)
	return nil
}
