package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"acc_recorder/internal/sensor/ais2ih"
	"acc_recorder/internal/utils"
)

const DefaultAppName = "accrec"
const DefaultConfigName = "config"
const DefaultOutputDir = "acc_data"
const DefaultDurationSeconds = 10
const MaxSensors = 4

// MinSamples is one second's worth of samples at the device output rate.
// Requests below it are coerced up before any pipeline starts.
const MinSamples = ais2ih.ODR

const DefaultSamples = ais2ih.ODR * DefaultDurationSeconds

var userHomeDir, _ = os.UserHomeDir()
var DefaultConfig = path.Join(userHomeDir, ".config/"+DefaultAppName+"/"+DefaultConfigName+".yaml")
var DefaultConfigSearchPath0 = path.Join(userHomeDir, ".config", DefaultAppName)

const DefaultConfigSearchPath1 = "/etc/" + DefaultAppName
const DefaultConfigSearchPath2 = "./"

type RecorderOpt struct {
	Sensors int    `yaml:"sensors"`
	Samples int    `yaml:"samples"`
	Output  string `yaml:"output"`
	Debug   bool   `yaml:"debug"`
}

type RecorderDesc struct {
	Opt   RecorderOpt
	Viper *viper.Viper
}

func NewRecorderDesc() RecorderDesc {
	return RecorderDesc{
		Opt:   NewRecorderOpt(),
		Viper: nil,
	}
}

func NewRecorderOpt() RecorderOpt {
	return RecorderOpt{
		Sensors: 1,
		Samples: DefaultSamples,
		Output:  DefaultOutputDir,
		Debug:   false,
	}
}

func (o *RecorderDesc) Parse(cmd *cobra.Command) error {
	vipCfg := viper.New()
	vipCfg.SetDefault("sensors", 1)
	vipCfg.SetDefault("samples", DefaultSamples)
	vipCfg.SetDefault("output", DefaultOutputDir)
	vipCfg.SetDefault("debug", false)

	if configFileCmd, err := cmd.Flags().GetString("config"); err == nil && configFileCmd != "" {
		vipCfg.SetConfigFile(configFileCmd)
	} else {
		configFileEnv := os.Getenv("ACCREC_CONFIG")
		if configFileEnv != "" {
			vipCfg.SetConfigFile(configFileEnv)
		} else {
			vipCfg.SetConfigName(DefaultConfigName)
			vipCfg.SetConfigType("yaml")
			vipCfg.AddConfigPath(DefaultConfigSearchPath0)
			vipCfg.AddConfigPath(DefaultConfigSearchPath1)
			vipCfg.AddConfigPath(DefaultConfigSearchPath2)
		}
	}

	vipCfg.SetEnvPrefix(strings.ToUpper(DefaultAppName))
	vipCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vipCfg.AutomaticEnv()

	_ = vipCfg.BindPFlag("sensors", cmd.Flags().Lookup("sensors"))
	_ = vipCfg.BindPFlag("samples", cmd.Flags().Lookup("samples"))
	_ = vipCfg.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = vipCfg.BindPFlag("debug", cmd.Flags().Lookup("debug"))

	// If a config file is found, read it in.
	if err := vipCfg.ReadInConfig(); err == nil {
		log.Debugln("using config file:", vipCfg.ConfigFileUsed())
	} else {
		log.Debugln(err)
	}

	if err := vipCfg.Unmarshal(&o.Opt); err != nil {
		log.Fatalln("failed to unmarshal config")
		os.Exit(1)
	}

	o.Viper = vipCfg
	return nil
}

func (o *RecorderDesc) PostParse() {
	if o.Opt.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// Validate checks the fixed acquisition parameters once, before any
// concurrent work starts. The sample target is coerced, not rejected: the
// device cannot usefully record less than one second's worth.
func (o *RecorderDesc) Validate() error {
	if o.Opt.Sensors < 1 || o.Opt.Sensors > MaxSensors {
		return fmt.Errorf("sensor count must be between 1 and %d, got %d", MaxSensors, o.Opt.Sensors)
	}
	if o.Opt.Samples < MinSamples {
		log.Warnf("sample count %d is below one second's worth, using %d", o.Opt.Samples, MinSamples)
		o.Opt.Samples = MinSamples
	}
	return nil
}

func (o *RecorderDesc) SaveConfig() error {
	if o.Viper == nil {
		return errors.New("viper is nil")
	}
	f, err := os.OpenFile(o.Viper.ConfigFileUsed(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	defer func() { _ = f.Close() }()
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	s, _ := yaml.Marshal(o.Opt)
	_, err = w.Write(s)
	if err != nil {
		return err
	}
	_ = w.Flush()
	return nil
}

// InitCfg prepares a configuration template for the application
func InitCfg(cmd *cobra.Command, _ []string) error {
	printFlag, _ := cmd.Flags().GetBool("print")
	destPath, _ := cmd.Flags().GetString("dest")
	overwriteFlag, _ := cmd.Flags().GetBool("yes")

	desc := NewRecorderDesc()
	err := desc.Parse(cmd)
	if err != nil {
		log.Errorln(err)
		return err
	}

	if printFlag {
		configBuffer, _ := yaml.Marshal(desc.Opt)
		fmt.Println(string(configBuffer))
	} else {
		utils.DumpOption(desc.Opt, destPath, overwriteFlag)
	}
	return nil
}
