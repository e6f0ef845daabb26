package kepler

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _keplerconfig{}
)

// _keplerconfig is a "hidden" struct, just use `keplerConfig`. It only serves
// the collaborators around the engine (benchmark loading, history export);
// the propagation itself never reads it.
type _keplerconfig struct {
	dataDir   string
	outputDir string
}

// keplerConfig returns the kepler configuration, loaded from the conf.toml in
// the directory named by the KEPLER_CONFIG environment variable. Without that
// variable all paths resolve relative to the working directory.
func keplerConfig() _keplerconfig {
	if cfgLoaded {
		return config
	}
	confPath := os.Getenv("KEPLER_CONFIG")
	if confPath == "" {
		cfgLoaded = true
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}
	config = _keplerconfig{
		dataDir:   viper.GetString("general.data_path"),
		outputDir: viper.GetString("general.output_path"),
	}
	cfgLoaded = true
	return config
}
