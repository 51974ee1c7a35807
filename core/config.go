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

type Config struct {
	Env     string
	Debug   bool
	AppName string
	Build   string

	SecretKey    string
	RollbarToken string

	Server struct {
		Addr            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	// Store is the hosted Supabase project holding all business data.
	// URL and key are fixed for the process lifetime.
	Store struct {
		URL     string
		APIKey  string
		Timeout time.Duration
		UseMock bool
	}

	Session struct {
		CheckInterval     time.Duration
		CountdownInterval time.Duration
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Coursat Plus")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "c0ursat+plu5-(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugHost", "localhost:4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("storeUrl", "")
	v.SetDefault("storeApiKey", "")
	v.SetDefault("storeTimeout", 15*time.Second)
	v.SetDefault("storeUseMock", false)
	v.SetDefault("sessionCheckInterval", time.Minute)
	v.SetDefault("sessionCountdownInterval", time.Second)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
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
		Debug:        v.GetBool("debug"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.DebugHost = v.GetString("serverDebugHost")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.Store.URL = v.GetString("storeUrl")
	conf.Store.APIKey = v.GetString("storeApiKey")
	conf.Store.Timeout = v.GetDuration("storeTimeout")
	conf.Store.UseMock = v.GetBool("storeUseMock")
	conf.Session.CheckInterval = v.GetDuration("sessionCheckInterval")
	conf.Session.CountdownInterval = v.GetDuration("sessionCountdownInterval")
	return conf
}
