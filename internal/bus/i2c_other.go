//go:build !linux

package bus

import "fmt"

// I2CDev needs i2c-dev, which only exists on Linux. On other platforms every
// open reports the bus as unavailable so the rest of the tool still runs.
type I2CDev struct {
	Addr byte
}

func (p I2CDev) Open(index int) (Bus, error) {
	return nil, fmt.Errorf("%w: i2c-dev is not supported on this platform", ErrUnavailable)
}
