package errors

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found or deadline has passed")
	ErrBetNotFound         = errors.New("bet not found")
	ErrProviderUnavailable = errors.New("provider responded with an error")
	ErrUnsupportedRequest  = errors.New("unsupported request kind")
)
