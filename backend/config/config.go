package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds process-level settings. Flags take precedence, then
// VIDEOCALL_* environment variables, then defaults.
type Config struct {
	APIListenAddr string
	WSListenAddr  string
	LogLevel      string
}

func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("videocall", pflag.ContinueOnError)
	fs.StringP("api-listen-addr", "a", ":8080", "api listen address")
	fs.StringP("ws-listen-addr", "w", ":8888", "websocket signaling listen address")
	fs.StringP("log-level", "l", "debug", "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("VIDEOCALL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Config{
		APIListenAddr: v.GetString("api-listen-addr"),
		WSListenAddr:  v.GetString("ws-listen-addr"),
		LogLevel:      v.GetString("log-level"),
	}, nil
}
