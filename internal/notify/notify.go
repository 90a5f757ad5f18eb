package notify

import "go.uber.org/zap"

// Notifier delivers user-facing failure notices. The HTTP layer returns them
// in responses; the default implementation also logs them.
type Notifier interface {
	Failure(message string)
}

type zapNotifier struct {
	log *zap.Logger
}

func New(log *zap.Logger) Notifier {
	return &zapNotifier{log: log.Named("notify")}
}

func (n *zapNotifier) Failure(message string) {
	n.log.Warn("user_notice", zap.String("message", message))
}

// Capture records notices for assertions in tests.
type Capture struct {
	Messages []string
}

func (c *Capture) Failure(message string) {
	c.Messages = append(c.Messages, message)
}
