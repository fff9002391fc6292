package bus

import "errors"

// ErrUnavailable reports that the bus for a sensor index could not be opened.
// Callers treat it as "skip this sensor", not as a transaction fault.
var ErrUnavailable = errors.New("bus unavailable")

// Bus is one open channel to a sensor device, already bound to the device
// address. Write and Read return the number of bytes actually transferred;
// the protocol layer checks that count against the request, since a short
// transfer is the primary fault signal on the wire.
type Bus interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Close() error
}

// Provider opens the bus for a sensor index.
type Provider interface {
	Open(index int) (Bus, error)
}
