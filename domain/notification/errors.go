package notification

import "errors"

var (
	// ErrNoRecipients is returned when no To recipients are provided
	ErrNoRecipients = errors.New("at least one recipient is required")

	// ErrInvalidRecipient is returned when a recipient has no email address
	ErrInvalidRecipient = errors.New("recipient must have an email address")

	// ErrNoFinishTime is returned when the run end time is missing
	ErrNoFinishTime = errors.New("run finish time is required")

	// ErrNoItems is returned when the summary lists no item at all
	ErrNoItems = errors.New("summary must list at least one item")

	// ErrSendFailed is returned when the email fails to send
	ErrSendFailed = errors.New("failed to send email")
)
