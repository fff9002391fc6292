//go:build linux

package bus

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// I2C_SLAVE from linux/i2c-dev.h
const i2cSlave = 0x0703

type i2cBus struct {
	f *os.File
}

func (b *i2cBus) Write(p []byte) (int, error) { return b.f.Write(p) }
func (b *i2cBus) Read(p []byte) (int, error)  { return b.f.Read(p) }
func (b *i2cBus) Close() error                { return b.f.Close() }

// I2CDev opens /dev/i2c-<index> and binds it to the 7-bit device address.
// Sensor index N is wired to bus N, one device per bus.
type I2CDev struct {
	Addr byte
}

func (p I2CDev) Open(index int) (Bus, error) {
	name := fmt.Sprintf("/dev/i2c-%d", index)
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, name, err)
	}
	if err := unix.IoctlSetInt(int(f.Fd()), i2cSlave, int(p.Addr)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: bind %s to 0x%02x: %v", ErrUnavailable, name, p.Addr, err)
	}
	return &i2cBus{f: f}, nil
}
