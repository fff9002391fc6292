// Package ais2ih provides a driver for ST's AIS2IH 3-axis accelerometer.
// The datasheet can be found here: https://www.st.com/resource/en/datasheet/ais2ih.pdf
package ais2ih

const Address byte = 0x19 // 7-bit I2C address with SA0 tied high

const (
	RegWhoAmI   byte = 0x0F // fixed device identity, useful for checking the connection
	RegCtrl1    byte = 0x20 // output data rate and power mode
	RegCtrl2    byte = 0x21 // interface options, IF_ADD_INC
	RegCtrl6    byte = 0x25 // full-scale selection
	RegStatus   byte = 0x27 // bit 0 set means a new sample is available
	RegOutXL    byte = 0x28 // X low byte; X_H, Y_L, Y_H, Z_L, Z_H follow
	RegFIFOCtrl byte = 0x2E // FIFO mode and threshold
)

const (
	DeviceID byte = 0x44 // correct response when reading WHO_AM_I

	ctrl1ODR1600HP byte = 0x97 // 1600 Hz output data rate, high-performance mode
	ctrl2AddrInc   byte = 0x04 // auto-increment register address on multi-byte access
	fifoContinuous byte = 0xD0 // continuous mode, new samples overwrite old ones when full
	ctrl6FS16g     byte = 0x30 // ±16 g full scale

	statusDRDY byte = 0x01
)

// ODR is the configured output data rate in samples per second.
const ODR = 1600

// BlockSize is the size of one complete sample block:
// [X_L, X_H, Y_L, Y_H, Z_L, Z_H].
const BlockSize = 6
