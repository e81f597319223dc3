package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env       string
		Build     string
		AppName   string
		Debug     bool
		TestMode  bool
		SecretKey string
		WorkDir   string

		RollbarToken string

		Server struct {
			Host            string
			Addr            string
			DebugHost       string
			ShutdownTimeout time.Duration
			SecureCookies   bool
		}

		RecordStore struct {
			BaseURL string
			Timeout time.Duration
		}

		Table struct {
			PageSize int
		}
	}
)

// NewConfig loads the configuration for the current ENV (DEV by default) from the environment,
// optionally seeded from `config/.env.<env>`.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "SPMS")
	v.SetDefault("secretKey", "kq2v-x8n$!3pz=6e(uh0b#7m)w^4tdy9c&ragj1s+f5_lo")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8080")
	v.SetDefault("serverDebugHost", "localhost:4000")
	v.SetDefault("serverShutdownTimeout", 10*time.Second)
	v.SetDefault("serverSecureCookies", false)
	v.SetDefault("recordStoreBaseURL", "https://student-progress-backend-3.onrender.com")
	v.SetDefault("recordStoreTimeout", 30*time.Second)
	v.SetDefault("tablePageSize", 8)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		SecretKey:    v.GetString("secretKey"),
		WorkDir:      wd,
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.DebugHost = v.GetString("serverDebugHost")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.Server.SecureCookies = v.GetBool("serverSecureCookies")
	conf.RecordStore.BaseURL = strings.TrimRight(v.GetString("recordStoreBaseURL"), "/")
	conf.RecordStore.Timeout = v.GetDuration("recordStoreTimeout")
	conf.Table.PageSize = v.GetInt("tablePageSize")
	return conf
}
