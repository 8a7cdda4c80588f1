package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const DefaultDoctorSourceURL = "https://srijandubey.github.io/campus-api-mock/SRM-C1-25.json"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	App          AppConfig
	DoctorSource DoctorSourceConfig
	Session      SessionConfig
	Redis        RedisConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	CORSOrigin string
}

type DoctorSourceConfig struct {
	URL     string
	Timeout time.Duration
}

type SessionConfig struct {
	Store string
	TTL   time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadConfig reads the given env file when present and lets the process
// environment override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("DOCTOR_SOURCE_URL", DefaultDoctorSourceURL)
	v.SetDefault("DOCTOR_SOURCE_TIMEOUT", "10s")
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	sourceTimeout, err := time.ParseDuration(v.GetString("DOCTOR_SOURCE_TIMEOUT"))
	if err != nil {
		sourceTimeout = 10 * time.Second
	}

	sessionTTL, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		sessionTTL = 30 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			LogLevel:   v.GetString("LOG_LEVEL"),
			CORSOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DoctorSource: DoctorSourceConfig{
			URL:     v.GetString("DOCTOR_SOURCE_URL"),
			Timeout: sourceTimeout,
		},
		Session: SessionConfig{
			Store: v.GetString("SESSION_STORE"),
			TTL:   sessionTTL,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}

	return config, nil
}
