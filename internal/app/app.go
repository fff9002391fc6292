package app

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"acc_recorder/internal/bus"
	"acc_recorder/internal/config"
	"acc_recorder/internal/recorder"
	"acc_recorder/internal/sensor/ais2ih"
	"acc_recorder/pkg/version"
)

type MainApp interface {
	Run()
	PrepareRun() MainApp
	GetOpt() *config.RecorderOpt
	SetOpt(*config.RecorderOpt)
	ProbeSensor() error
}

type mainApp struct {
	name string
	cmd  *cobra.Command
	args []string
	opt  *config.RecorderOpt
}

func (a *mainApp) GetOpt() *config.RecorderOpt { return a.opt }

func (a *mainApp) SetOpt(opt *config.RecorderOpt) { a.opt = opt }

// ProbeSensor scans the candidate buses for a responding AIS2IH.
func (a *mainApp) ProbeSensor() error {
	log.Infoln("Probing I2C buses for AIS2IH devices...")
	provider := bus.I2CDev{Addr: ais2ih.Address}
	found := 0
	for i := 0; i < config.MaxSensors; i++ {
		b, err := provider.Open(i)
		if err != nil {
			log.Debugf("bus %d: %v", i, err)
			continue
		}
		dev := ais2ih.New(b)
		if dev.Connected() {
			fmt.Printf("- /dev/i2c-%d\n", i)
			found++
		}
		_ = dev.Close()
	}
	if found == 0 {
		err := errors.New("no AIS2IH devices found")
		log.Errorln(err)
		return err
	}
	log.Infof("Found %d valid device(s)", found)
	return nil
}

func (a *mainApp) Run() {
	log.Infoln("version:", version.GitVersion)
	log.Infoln("sensors:", a.opt.Sensors)
	log.Infoln("output:", a.opt.Output)
	log.Infoln("debug:", a.opt.Debug)
	log.Infof("each sensor will collect %d samples in %.2f seconds",
		a.opt.Samples, float64(a.opt.Samples)/ais2ih.ODR)

	if err := os.MkdirAll(a.opt.Output, 0755); err != nil {
		log.Errorln("cannot create output directory:", err)
		os.Exit(1)
	}

	rec := recorder.New(recorder.Options{
		Sensors:   a.opt.Sensors,
		Samples:   a.opt.Samples,
		OutputDir: a.opt.Output,
	}, bus.I2CDev{Addr: ais2ih.Address})

	results := rec.Run()

	completed := 0
	for _, res := range results {
		if res.Completed() {
			completed++
		}
	}
	log.Infof("%d of %d sensors completed", completed, len(results))
	fmt.Printf("All data was saved at '%s'\n", a.opt.Output)
}

func (a *mainApp) PrepareRun() MainApp {
	desc := config.NewRecorderDesc()
	err := desc.Parse(a.cmd)
	if err != nil {
		log.Errorln(err)
		os.Exit(1)
		return nil
	}
	desc.PostParse()
	if err := desc.Validate(); err != nil {
		log.Errorln(err)
		os.Exit(1)
		return nil
	}
	a.opt = &desc.Opt
	a.name = config.DefaultAppName

	return a
}

func NewMainApp(cmd *cobra.Command, args []string) MainApp {
	return &mainApp{
		cmd:  cmd,
		args: args,
	}
}
