package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValidateCoercesLowSampleCount(t *testing.T) {
	desc := NewRecorderDesc()
	desc.Opt.Samples = 800
	if err := desc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if desc.Opt.Samples != MinSamples {
		t.Errorf("Samples = %d, want coerced to %d", desc.Opt.Samples, MinSamples)
	}
}

func TestValidateKeepsSufficientSampleCount(t *testing.T) {
	desc := NewRecorderDesc()
	desc.Opt.Samples = MinSamples + 1
	if err := desc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if desc.Opt.Samples != MinSamples+1 {
		t.Errorf("Samples = %d, want unchanged", desc.Opt.Samples)
	}
}

func TestValidateSensorCountBounds(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4} {
		desc := NewRecorderDesc()
		desc.Opt.Sensors = n
		if err := desc.Validate(); err != nil {
			t.Errorf("Sensors = %d: unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{0, -1, 5, 100} {
		desc := NewRecorderDesc()
		desc.Opt.Sensors = n
		if err := desc.Validate(); err == nil {
			t.Errorf("Sensors = %d: expected error", n)
		}
	}
}

func TestDefaultsAreTenSecondsWorth(t *testing.T) {
	opt := NewRecorderOpt()
	if opt.Samples != DefaultSamples {
		t.Errorf("Samples = %d, want %d", opt.Samples, DefaultSamples)
	}
	if DefaultSamples != MinSamples*DefaultDurationSeconds {
		t.Errorf("DefaultSamples = %d, want %d", DefaultSamples, MinSamples*DefaultDurationSeconds)
	}
	if opt.Output != DefaultOutputDir {
		t.Errorf("Output = %q, want %q", opt.Output, DefaultOutputDir)
	}
}

func TestOptRoundTripsThroughYAML(t *testing.T) {
	opt := RecorderOpt{Sensors: 3, Samples: 4800, Output: "/data/acc", Debug: true}
	buf, err := yaml.Marshal(opt)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"sensors: 3", "samples: 4800", "output: /data/acc", "debug: true"} {
		if !strings.Contains(string(buf), key) {
			t.Errorf("yaml dump missing %q:\n%s", key, buf)
		}
	}
	var got RecorderOpt
	if err := yaml.Unmarshal(buf, &got); err != nil {
		t.Fatal(err)
	}
	if got != opt {
		t.Errorf("round trip = %+v, want %+v", got, opt)
	}
}
