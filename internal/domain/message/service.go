package message

import "context"

// Service defines the outbound message relay interface
type Service interface {
	// Send relays the text to every listed user over their contact channel.
	// Per-recipient failures are collected in the response, never aborting
	// the batch. Only a fully failed batch returns an error.
	Send(ctx context.Context, req SendMessagesRequest) (*SendMessagesResponse, error)
}
