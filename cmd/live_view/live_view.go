package main

import (
	"fmt"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"acc_recorder/internal/app"
	"acc_recorder/internal/bus"
	"acc_recorder/internal/config"
	"acc_recorder/internal/sensor"
	"acc_recorder/internal/sensor/ais2ih"
)

var defaultTableValue = [][]string{{"Sensor", "Bus", "X", "Y", "Z", "Samples"}}

func getTable() *widgets.Table {
	table := widgets.NewTable()
	table.Rows = defaultTableValue
	table.ColumnWidths = []int{10, 16, 10, 10, 10, 12}
	table.TextStyle = ui.NewStyle(ui.ColorWhite)
	table.TextAlignment = ui.AlignRight
	table.SetRect(0, 0, 80, 16)
	return table
}

func updateValue(opt *config.RecorderOpt, table *widgets.Table) {
	provider := bus.I2CDev{Addr: ais2ih.Address}
	devices := make(map[int]sensor.Device)
	counts := make([]uint64, opt.Sensors)

	for i := 0; i < opt.Sensors; i++ {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", i), fmt.Sprintf("/dev/i2c-%d", i), "-", "-", "-", "0",
		})
		b, err := provider.Open(i)
		if err != nil {
			log.Warnln(err)
			continue
		}
		dev := ais2ih.New(b)
		if err := dev.Configure(); err != nil {
			log.Warnln(err)
			_ = dev.Close()
			continue
		}
		devices[i] = dev
	}

	for {
		for i, dev := range devices {
			ready, err := dev.SampleReady()
			if err != nil || !ready {
				continue
			}
			s, err := dev.ReadSample()
			if err != nil {
				continue
			}
			counts[i]++
			table.Rows[i+1] = []string{
				fmt.Sprintf("%d", i),
				fmt.Sprintf("/dev/i2c-%d", i),
				fmt.Sprintf("%d", s.X),
				fmt.Sprintf("%d", s.Y),
				fmt.Sprintf("%d", s.Z),
				fmt.Sprintf("%d", counts[i]),
			}
		}

		ui.Render(table)
		time.Sleep(time.Millisecond * 10)
	}
}

func _main(cmd *cobra.Command, args []string) {
	log.Info("Starting")
	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	t := getTable()
	opt := app.NewMainApp(cmd, args).PrepareRun().GetOpt()
	go updateValue(opt, t)

	uiEvents := ui.PollEvents()
	for {
		e := <-uiEvents
		switch e.ID {
		case "q", "<C-c>":
			return
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "live_view",
	Short: "live_view",
	Long:  "live_view",
	Run: func(cmd *cobra.Command, args []string) {
		_main(cmd, args)
	},
}

func main() {
	rootCmd.Flags().String("config", "", "default configuration path")
	rootCmd.Flags().IntP("sensors", "n", 1, "number of sensors to watch, between 1 and 4")
	rootCmd.Flags().Bool("debug", false, "toggle debug logging")

	err := rootCmd.Execute()
	if err != nil {
		return
	}
}
