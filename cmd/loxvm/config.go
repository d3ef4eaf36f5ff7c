package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const defaultHistoryFile = "~/.loxvm_history"

// initConfig reads the config file and environment. Every flag bound to
// viper can also be set as LOXVM_<NAME> or as a key in $HOME/.loxvm.yaml.
func initConfig() error {
	viper.SetEnvPrefix("loxvm")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("history", defaultHistoryFile)

	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return err
		}
		viper.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			// Without a home directory there is no default config file.
			return nil
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".loxvm")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger returns a console logger writing to w at the configured level.
// --trace lowers the level to trace so the VM logs each instruction.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	name := viper.GetString("log-level")
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %q", name)
	}
	if viper.GetBool("trace") {
		level = zerolog.TraceLevel
	}
	zerolog.SetGlobalLevel(level)
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    color.NoColor,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func historyPath() (string, error) {
	return homedir.Expand(viper.GetString("history"))
}
