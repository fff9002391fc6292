package cmd

import (
	"github.com/spf13/cobra"

	"acc_recorder/internal/app"
	"acc_recorder/internal/config"
)

var RootCmd = &cobra.Command{
	Use:   "accrec",
	Short: "multi-channel I2C accelerometer recorder",
	Long:  "multi-channel I2C accelerometer recorder",
}

func RecordCmdRunE(cmd *cobra.Command, args []string) error {
	app.NewMainApp(cmd, args).PrepareRun().Run()
	return nil
}

func RecordCmdFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "default configuration path")
	cmd.Flags().IntP("sensors", "n", 1, "number of sensors to record, between 1 and 4")
	cmd.Flags().IntP("samples", "s", config.DefaultSamples, "samples to collect per sensor, at least one second's worth")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir, "directory the csv files are written to")
	cmd.Flags().Bool("debug", false, "toggle debug logging")
}

var RecordCmd = &cobra.Command{
	Use: "record",
	SuggestFor: []string{
		"rec", "reco",
	},
	Short: "record acceleration samples from the configured sensors.",
	Long: `record collects acceleration samples from the configured sensors, by the following order:
1. path specified in --config flag
2. path defined in ACCREC_CONFIG environment variable
3. default location $HOME/.config/accrec/config.yaml, /etc/accrec/config.yaml, current directory
The parameters in the configuration file will be overwritten by the following order:
1. command line arguments
2. environment variables
Each sensor writes one timestamped csv file into the output directory.
`,
	Example: `  accrec record -n 4
  accrec record -n 2 -s 32000 -o /data/acc`,
	RunE: RecordCmdRunE,
}

func InitCmdFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("print", false, "print config to stdout")
	cmd.Flags().BoolP("yes", "y", false, "overwrite")
	cmd.Flags().StringP("dest", "o", config.DefaultConfig, "specify destination path")
}

var InitCmd = &cobra.Command{
	Use: "init",
	SuggestFor: []string{
		"ini", "in",
	},
	Short: "init create a configuration template",
	Long: `init create a configuration template.
The configuration file can be used to launch the recorder.
If --print flag is present, the configuration will be printed to stdout.
If --dest / -o flag is present, the configuration will be saved to the path specified
Otherwise init will output the configuration file to $HOME/.config/accrec/config.yaml
If --yes / -y flag is present, the configuration will be overwritten without confirmation
`,
	Example: `  accrec init --print
  accrec init --dest /path/to/config.yaml
  accrec init -o /path/to/config.yaml -y`,
	RunE: config.InitCfg,
}

var ProbeCmd = &cobra.Command{
	Use: "probe",
	SuggestFor: []string{
		"pro", "pr", "prob",
	},
	Short: "probe the compatible devices",
	Long: `probe the compatible devices.
The probe command will scan /dev/i2c-* for a responding AIS2IH and print the result to stdout.
`,
	Example: `  accrec probe`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = app.NewMainApp(cmd, args).PrepareRun().ProbeSensor()
	},
}

func getRootCmd() *cobra.Command {

	RecordCmdFlags(RecordCmd)
	RootCmd.AddCommand(RecordCmd)

	InitCmdFlags(InitCmd)
	RootCmd.AddCommand(InitCmd)

	RootCmd.AddCommand(ProbeCmd)

	return RootCmd
}

func Execute() {
	rootCmd := getRootCmd()
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
