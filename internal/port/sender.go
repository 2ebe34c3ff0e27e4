package port

import "context"

// Message is one outbound notification to a single recipient. Recipient is an
// email address or an E.164 phone number depending on the channel.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// MessageSender defines the contract for a channel delivery provider.
// Send is synchronous and performs no retries; a returned error is terminal
// for the attempt.
type MessageSender interface {
	Name() string
	Send(ctx context.Context, msg Message) (providerMessageID string, err error)
}
