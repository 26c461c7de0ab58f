package bus

import "errors"

var (
	errNoChannel = errors.New("realtime message has no channel")
	errNoEvent   = errors.New("realtime message has no event")
	errClosed    = errors.New("bus closed")
)
