package services

// Provider adapters used by the dispatcher. The concrete implementations
// talk to Twilio and SMTP; tests substitute fakes.

type VoiceDialer interface {
	IsConfigured() bool
	// Dial initiates an outbound call and returns the provider call id.
	Dial(toNumber, callLogID string) (string, error)
}

type EmailSender interface {
	IsConfigured() bool
	Send(to, subject, body string) error
}

// MessageStatus is the provider-side view of a sent message.
type MessageStatus struct {
	Status       string
	ErrorCode    string
	ErrorMessage string
}

type WhatsAppSender interface {
	IsConfigured() bool
	// Send delivers one message and returns the provider message id.
	Send(toNumber, body string) (string, error)
	FetchStatus(messageSID string) (*MessageStatus, error)
}
