package sms

import "context"

// Message represents a single SMS payload.
type Message struct {
	// To is the recipient number in local dashed format.
	To string
	// Text is the message body.
	Text string
}

// SMS abstracts an SMS provider (HTTP gateway, third-party API, etc).
type SMS interface {
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
