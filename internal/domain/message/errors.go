package message

import "errors"

var (
	ErrEmptyMessage      = errors.New("message must not be empty")
	ErrNoRecipients      = errors.New("at least one recipient is required")
	ErrNoContactChannel  = errors.New("user has no contact channel")
	ErrAllRecipientsFail = errors.New("message could not be delivered to any recipient")
)
