package ais2ih

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"acc_recorder/internal/bus"
	"acc_recorder/internal/sensor"
)

var (
	errShortWrite    = errors.New("ais2ih: short write to device")
	errShortRead     = errors.New("ais2ih: short read from device")
	errInvalidLength = errors.New("ais2ih: block length out of range")
)

// Device speaks the AIS2IH register protocol over one bus handle. Every
// transaction is a strict two-phase exchange: select the register, then
// transfer data. A short transfer leaves the device's register pointer in an
// unknown state, so it is never retried; the error aborts the owning
// pipeline.
//
// A Device cannot be shared between goroutines: the scratch buffer backing
// ReadBlock is reused across calls.
type Device struct {
	bus     bus.Bus
	scratch [BlockSize]byte
}

var _ sensor.Device = (*Device)(nil)

func New(b bus.Bus) *Device {
	return &Device{bus: b}
}

// Close releases the underlying bus handle.
func (d *Device) Close() error {
	if d.bus == nil {
		return nil
	}
	err := d.bus.Close()
	d.bus = nil
	return err
}

// WriteRegister writes one byte into a device register as a single
// [register, value] transaction.
func (d *Device) WriteRegister(reg, value byte) error {
	buf := [2]byte{reg, value}
	n, err := d.bus.Write(buf[:])
	if err != nil {
		return fmt.Errorf("write reg 0x%02x: %w", reg, err)
	}
	if n != len(buf) {
		return fmt.Errorf("write reg 0x%02x: accepted %d of %d bytes: %w", reg, n, len(buf), errShortWrite)
	}
	return nil
}

// ReadRegister reads one byte from a device register.
func (d *Device) ReadRegister(reg byte) (byte, error) {
	if err := d.selectRegister(reg); err != nil {
		return 0, err
	}
	var buf [1]byte
	n, err := d.bus.Read(buf[:])
	if err != nil {
		return 0, fmt.Errorf("read reg 0x%02x: %w", reg, err)
	}
	if n != len(buf) {
		return 0, fmt.Errorf("read reg 0x%02x: %w", reg, errShortRead)
	}
	return buf[0], nil
}

// ReadBlock reads size consecutive registers starting at reg into the
// scratch buffer and returns the filled slice. The slice is only valid until
// the next ReadBlock call. A non-positive size is a caller bug and does not
// touch the bus.
func (d *Device) ReadBlock(reg byte, size int) ([]byte, error) {
	if size <= 0 || size > BlockSize {
		return nil, fmt.Errorf("read block 0x%02x size %d: %w", reg, size, errInvalidLength)
	}
	if err := d.selectRegister(reg); err != nil {
		return nil, err
	}
	n, err := d.bus.Read(d.scratch[:size])
	if err != nil {
		return nil, fmt.Errorf("read block 0x%02x: %w", reg, err)
	}
	if n != size {
		return nil, fmt.Errorf("read block 0x%02x: got %d of %d bytes: %w", reg, n, size, errShortRead)
	}
	return d.scratch[:size], nil
}

func (d *Device) selectRegister(reg byte) error {
	buf := [1]byte{reg}
	n, err := d.bus.Write(buf[:])
	if err != nil {
		return fmt.Errorf("select reg 0x%02x: %w", reg, err)
	}
	if n != len(buf) {
		return fmt.Errorf("select reg 0x%02x: %w", reg, errShortWrite)
	}
	return nil
}

// Configure puts the device into the acquisition configuration: 1600 Hz
// high-performance output, address auto-increment, continuous FIFO, ±16 g.
// The writes must all land in order; on any failure the device state is
// undefined and the caller must not start acquisition.
func (d *Device) Configure() error {
	steps := []struct {
		reg, value byte
	}{
		{RegCtrl1, ctrl1ODR1600HP},
		{RegCtrl2, ctrl2AddrInc},
		{RegFIFOCtrl, fifoContinuous},
		{RegCtrl6, ctrl6FS16g},
	}
	for _, s := range steps {
		if err := d.WriteRegister(s.reg, s.value); err != nil {
			return fmt.Errorf("configure: %w", err)
		}
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		d.dumpConfig()
	}
	return nil
}

// dumpConfig reads back the identity and configuration registers for
// inspection. Read-back values never influence control flow.
func (d *Device) dumpConfig() {
	regs := []struct {
		name string
		reg  byte
	}{
		{"WHO_AM_I", RegWhoAmI},
		{"CTRL1", RegCtrl1},
		{"CTRL2", RegCtrl2},
		{"FIFO_CTRL", RegFIFOCtrl},
		{"CTRL6", RegCtrl6},
	}
	for _, r := range regs {
		v, err := d.ReadRegister(r.reg)
		if err != nil {
			log.Debugf("%s: read-back failed: %v", r.name, err)
			continue
		}
		log.Debugf("%s: 0x%02x", r.name, v)
	}
}

// Connected reads WHO_AM_I and reports whether an AIS2IH answered.
func (d *Device) Connected() bool {
	id, err := d.ReadRegister(RegWhoAmI)
	return err == nil && id == DeviceID
}

// SampleReady reads the status register and reports whether bit 0 equals 1,
// meaning a fresh sample block is waiting in the output registers. All other
// status bits are ignored.
func (d *Device) SampleReady() (bool, error) {
	status, err := d.ReadRegister(RegStatus)
	if err != nil {
		return false, err
	}
	return status&statusDRDY == statusDRDY, nil
}

// ReadSample drains one complete sample block and decodes it.
func (d *Device) ReadSample() (sensor.Sample, error) {
	raw, err := d.ReadBlock(RegOutXL, BlockSize)
	if err != nil {
		return sensor.Sample{}, err
	}
	return decode(raw), nil
}

// decode converts a raw 6-byte block into axis values. Each axis is a
// little-endian 16-bit word holding 14 significant bits left-justified, so
// the word is interpreted as signed and arithmetic-shifted right by two.
func decode(raw []byte) sensor.Sample {
	x := int16(uint16(raw[1])<<8 | uint16(raw[0]))
	y := int16(uint16(raw[3])<<8 | uint16(raw[2]))
	z := int16(uint16(raw[5])<<8 | uint16(raw[4]))
	return sensor.Sample{X: x >> 2, Y: y >> 2, Z: z >> 2}
}
