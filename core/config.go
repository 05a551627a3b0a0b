package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	LogConfig struct {
		Level   string
		Pretty  bool
		NoColor bool
	}

	Config struct {
		AppName      string
		Env          string // DEV (default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		Seed         bool // load the demo dataset on start
		RollbarToken string
		Log          LogConfig
	}
)

// NewConfig reads the configuration from defaults, an optional config/.env.<env> file and the environment.
// Environment variables are prefixed with the upper-cased env name, e.g. DEV_SEED=false.
func NewConfig() (*Config, error) {
	return newConfig(viper.New(), os.Getenv("ENV"))
}

func newConfig(v *viper.Viper, env string) (*Config, error) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "LMS")
	v.SetDefault("build", "dev")
	v.SetDefault("debug", false)
	v.SetDefault("testMode", false)
	v.SetDefault("seed", true)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("log.noColor", false)

	env = strings.ToUpper(CleanString(env))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	return &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Seed:         v.GetBool("seed"),
		RollbarToken: v.GetString("rollbarToken"),
		Log: LogConfig{
			Level:   strings.ToLower(v.GetString("log.level")),
			Pretty:  v.GetBool("log.pretty"),
			NoColor: v.GetBool("log.noColor"),
		},
	}, nil
}
