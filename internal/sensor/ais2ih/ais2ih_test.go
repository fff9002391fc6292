package ais2ih

import (
	"errors"
	"io"
	"testing"

	"acc_recorder/internal/sensor"
)

// scriptBus records every write and serves queued read responses. Setting
// writeN limits the bytes accepted by successive writes (-1 accepts all).
type scriptBus struct {
	writes [][]byte
	writeN []int
	reads  [][]byte
	closed bool
}

func (b *scriptBus) Write(p []byte) (int, error) {
	cp := append([]byte(nil), p...)
	b.writes = append(b.writes, cp)
	if len(b.writeN) > 0 {
		n := b.writeN[0]
		b.writeN = b.writeN[1:]
		if n >= 0 {
			return n, nil
		}
	}
	return len(p), nil
}

func (b *scriptBus) Read(p []byte) (int, error) {
	if len(b.reads) == 0 {
		return 0, io.EOF
	}
	r := b.reads[0]
	b.reads = b.reads[1:]
	return copy(p, r), nil
}

func (b *scriptBus) Close() error {
	b.closed = true
	return nil
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi byte
		want   int16
	}{
		{"zero", 0x00, 0x00, 0},
		{"one lsb", 0x04, 0x00, 1},
		{"minus one", 0xFC, 0xFF, -1},
		{"max positive", 0xFF, 0x7F, 8191},
		{"min negative", 0x00, 0x80, -8192},
		{"positive", 0x40, 0x12, 0x1240 >> 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := []byte{tc.lo, tc.hi, tc.lo, tc.hi, tc.lo, tc.hi}
			got := decode(raw)
			want := sensor.Sample{X: tc.want, Y: tc.want, Z: tc.want}
			if got != want {
				t.Errorf("decode(% 02x) = %+v, want %+v", raw, got, want)
			}
		})
	}
}

func TestDecodePerAxis(t *testing.T) {
	raw := []byte{0x04, 0x00, 0xFC, 0xFF, 0x00, 0x80}
	got := decode(raw)
	want := sensor.Sample{X: 1, Y: -1, Z: -8192}
	if got != want {
		t.Errorf("decode = %+v, want %+v", got, want)
	}
}

func TestSampleReadyChecksBitZeroOnly(t *testing.T) {
	cases := []struct {
		status byte
		want   bool
	}{
		{0x00, false},
		{0x01, true},
		{0x02, false}, // other bits set, bit 0 clear
		{0x03, true},
		{0xFE, false},
		{0xFF, true},
	}
	for _, tc := range cases {
		b := &scriptBus{reads: [][]byte{{tc.status}}}
		d := New(b)
		ready, err := d.SampleReady()
		if err != nil {
			t.Fatalf("status 0x%02x: unexpected error: %v", tc.status, err)
		}
		if ready != tc.want {
			t.Errorf("status 0x%02x: ready = %v, want %v", tc.status, ready, tc.want)
		}
		if got := b.writes[0]; len(got) != 1 || got[0] != RegStatus {
			t.Errorf("status 0x%02x: selected register % 02x, want [%02x]", tc.status, got, RegStatus)
		}
	}
}

func TestWriteRegisterShortWrite(t *testing.T) {
	b := &scriptBus{writeN: []int{1}}
	d := New(b)
	err := d.WriteRegister(RegCtrl1, 0x97)
	if !errors.Is(err, errShortWrite) {
		t.Fatalf("WriteRegister = %v, want errShortWrite", err)
	}
}

func TestReadRegisterShortRead(t *testing.T) {
	b := &scriptBus{reads: [][]byte{{}}}
	d := New(b)
	if _, err := d.ReadRegister(RegStatus); !errors.Is(err, errShortRead) {
		t.Fatalf("ReadRegister = %v, want errShortRead", err)
	}
}

func TestReadBlockRejectsZeroLength(t *testing.T) {
	b := &scriptBus{}
	d := New(b)
	_, err := d.ReadBlock(RegOutXL, 0)
	if !errors.Is(err, errInvalidLength) {
		t.Fatalf("ReadBlock(0) = %v, want errInvalidLength", err)
	}
	if len(b.writes) != 0 {
		t.Errorf("ReadBlock(0) touched the bus: %d writes", len(b.writes))
	}
}

func TestReadBlockShortRead(t *testing.T) {
	b := &scriptBus{reads: [][]byte{{0x01, 0x02, 0x03}}}
	d := New(b)
	if _, err := d.ReadBlock(RegOutXL, BlockSize); !errors.Is(err, errShortRead) {
		t.Fatalf("ReadBlock = %v, want errShortRead", err)
	}
}

func TestConfigureSequence(t *testing.T) {
	b := &scriptBus{}
	d := New(b)
	if err := d.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	want := [][]byte{
		{RegCtrl1, 0x97},
		{RegCtrl2, 0x04},
		{RegFIFOCtrl, 0xD0},
		{RegCtrl6, 0x30},
	}
	if len(b.writes) != len(want) {
		t.Fatalf("Configure issued %d writes, want %d", len(b.writes), len(want))
	}
	for i, w := range want {
		if b.writes[i][0] != w[0] || b.writes[i][1] != w[1] {
			t.Errorf("write %d = % 02x, want % 02x", i, b.writes[i], w)
		}
	}
}

func TestConfigureStopsAtFirstFailure(t *testing.T) {
	b := &scriptBus{writeN: []int{-1, 1}}
	d := New(b)
	err := d.Configure()
	if !errors.Is(err, errShortWrite) {
		t.Fatalf("Configure = %v, want errShortWrite", err)
	}
	if len(b.writes) != 2 {
		t.Errorf("Configure issued %d writes after failure, want 2", len(b.writes))
	}
}

func TestReadSample(t *testing.T) {
	b := &scriptBus{reads: [][]byte{{0xFF, 0x7F, 0x00, 0x80, 0x08, 0x00}}}
	d := New(b)
	got, err := d.ReadSample()
	if err != nil {
		t.Fatalf("ReadSample: %v", err)
	}
	want := sensor.Sample{X: 8191, Y: -8192, Z: 2}
	if got != want {
		t.Errorf("ReadSample = %+v, want %+v", got, want)
	}
	if sel := b.writes[0]; len(sel) != 1 || sel[0] != RegOutXL {
		t.Errorf("ReadSample selected % 02x, want [%02x]", sel, RegOutXL)
	}
}

func TestCloseReleasesBusOnce(t *testing.T) {
	b := &scriptBus{}
	d := New(b)
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !b.closed {
		t.Error("bus not closed")
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
