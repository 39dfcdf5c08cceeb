package notify

import "go.uber.org/zap"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier surfaces transient user-facing messages. Implementations decide
// where the message ends up (response payload, log, nothing).
type Notifier interface {
	Notify(message string, severity Severity)
}

type Message struct {
	Text     string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Collector buffers messages so a handler can attach them to the response.
type Collector struct {
	messages []Message
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Notify(message string, severity Severity) {
	c.messages = append(c.messages, Message{Text: message, Severity: severity})
}

func (c *Collector) Messages() []Message {
	return c.messages
}

// Last returns the most recent message, or nil if none were emitted.
func (c *Collector) Last() *Message {
	if len(c.messages) == 0 {
		return nil
	}
	return &c.messages[len(c.messages)-1]
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	logger *zap.SugaredLogger
}

func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(message string, severity Severity) {
	switch severity {
	case SeverityError:
		n.logger.Errorw("notification", "message", message)
	default:
		n.logger.Infow("notification", "message", message, "severity", severity)
	}
}
