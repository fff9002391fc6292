package sensor

// Sample is one decoded accelerometer reading. Each axis carries the 14-bit
// two's-complement output of the device, sign-extended.
type Sample struct {
	X int16
	Y int16
	Z int16
}

// Device is a configured accelerometer that can be polled for samples.
// A Device must only ever be used by a single goroutine.
type Device interface {
	Configure() error
	SampleReady() (bool, error)
	ReadSample() (Sample, error)
	Connected() bool
	Close() error
}
