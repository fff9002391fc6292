package recorder

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"acc_recorder/internal/bus"
	"acc_recorder/internal/sensor/ais2ih"
)

// Options is fixed before Run starts and shared read-only by every pipeline.
type Options struct {
	Sensors   int
	Samples   int
	OutputDir string
}

// Result is the terminal state of one sensor pipeline.
type Result struct {
	Index   int
	Skipped bool  // bus handle could not be opened
	Err     error // nil on normal completion
}

func (r Result) Completed() bool { return !r.Skipped && r.Err == nil }

// Recorder launches one pipeline per sensor index and waits for all of them.
// It never correlates data across sensors; pipelines share nothing mutable.
type Recorder struct {
	opt      Options
	provider bus.Provider
}

func New(opt Options, provider bus.Provider) *Recorder {
	return &Recorder{opt: opt, provider: provider}
}

// Run opens one bus per sensor index, starts a pipeline goroutine for each
// bus that opened, and blocks until every launched pipeline reaches a
// terminal state. A sensor whose bus cannot be opened is skipped; it does
// not prevent the others from running.
func (r *Recorder) Run() []Result {
	results := make([]Result, r.opt.Sensors)
	var wg sync.WaitGroup
	for i := 0; i < r.opt.Sensors; i++ {
		p, err := newPipeline(r.opt, r.provider, i)
		if err != nil {
			log.Warnf("sensor %d: %v, skipping", i, err)
			results[i] = Result{Index: i, Skipped: true, Err: err}
			continue
		}
		wg.Add(1)
		go func(p *pipeline) {
			defer wg.Done()
			// Each goroutine writes only its own slot.
			results[p.index] = p.run()
		}(p)
	}
	wg.Wait()
	return results
}

// pipeline owns one sensor end to end: bus handle, device with its scratch
// buffer, output sink. Nothing outside the pipeline touches any of them.
type pipeline struct {
	index int
	opt   Options
	dev   *ais2ih.Device
}

func newPipeline(opt Options, provider bus.Provider, index int) (*pipeline, error) {
	b, err := provider.Open(index)
	if err != nil {
		return nil, err
	}
	return &pipeline{index: index, opt: opt, dev: ais2ih.New(b)}, nil
}

// run drives the pipeline through configuration and acquisition. Any fault
// aborts this pipeline only; the bus handle is always released.
func (p *pipeline) run() Result {
	defer func() {
		if err := p.dev.Close(); err != nil {
			log.Warnf("sensor %d: close bus: %v", p.index, err)
		}
	}()

	if err := p.dev.Configure(); err != nil {
		log.Errorf("sensor %d: setup failed: %v", p.index, err)
		return Result{Index: p.index, Err: fmt.Errorf("sensor %d: %w", p.index, err)}
	}

	// Without a sink the pipeline cannot record anything meaningful, and the
	// output directory was verified writable before launch. Failing to open
	// it means the disk itself is gone, which no pipeline survives.
	sink, err := newCSVSink(p.opt.OutputDir, time.Now(), p.index)
	if err != nil {
		log.Fatalf("sensor %d: %v", p.index, err)
	}

	if err := p.acquire(sink); err != nil {
		log.Errorf("sensor %d: %v", p.index, err)
		return Result{Index: p.index, Err: fmt.Errorf("sensor %d: %w", p.index, err)}
	}
	log.Infof("sensor %d completed", p.index)
	return Result{Index: p.index}
}

// acquire polls the status register and drains one full sample block per
// ready signal until the sample target is met. The device produces samples
// faster than they are consumed, so the poll never sleeps: a blocking bus
// transaction is the only wait state.
func (p *pipeline) acquire(sink *csvSink) error {
	var loopErr error
	for remaining := p.opt.Samples; remaining > 0; {
		ready, err := p.dev.SampleReady()
		if err != nil {
			loopErr = err
			break
		}
		if !ready {
			continue
		}
		s, err := p.dev.ReadSample()
		if err != nil {
			loopErr = err
			break
		}
		if err := sink.Append(s); err != nil {
			loopErr = err
			break
		}
		remaining--
	}
	// The sink keeps whatever was written even when the loop aborts.
	if err := sink.Close(); err != nil && loopErr == nil {
		loopErr = err
	}
	return loopErr
}
