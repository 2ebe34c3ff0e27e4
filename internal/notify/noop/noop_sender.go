package noop

import (
	"context"
	"log"

	"github.com/google/uuid"

	"enrolpay/internal/port"
)

type noopSender struct {
	channel string
}

// NewSender creates a no-op MessageSender that logs deliveries to stdout.
// channel is only used to label the log lines.
func NewSender(channel string) port.MessageSender {
	return &noopSender{channel: channel}
}

func (s *noopSender) Name() string { return "noop" }

func (s *noopSender) Send(_ context.Context, msg port.Message) (string, error) {
	log.Printf("[NOOP %s] to=%s subject=%q body=%q", s.channel, msg.Recipient, msg.Subject, msg.Body)
	return uuid.New().String(), nil
}
