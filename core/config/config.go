package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		App       AppConfig
		Server    ServerConfig
		Database  DatabaseConfig
		Redis     RedisConfig
		Zoom      ZoomConfig
		GoogleAPI GoogleAPIConfig
		Mail      MailConfig
	}

	AppConfig struct {
		Name     string
		Env      string
		URL      string
		LogLevel string
		JWTKey   string
	}

	ServerConfig struct {
		Host string
		Port int
	}

	DatabaseConfig struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}

	RedisConfig struct {
		Host     string
		Port     int
		Password string
		DB       int
	}

	// ZoomConfig drives the meeting-provider client and its OAuth flow.
	ZoomConfig struct {
		APIBaseURL   string
		OAuthURL     string
		ClientID     string
		ClientSecret string
		RedirectURI  string
	}

	GoogleAPIConfig struct {
		ClientID           string
		ClientSecret       string
		RedirectURI        string
		CalendarAPIBaseURL string
	}

	MailConfig struct {
		SendgridAPIKey string
		FromEmail      string
		FromName       string
	}
)

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present) and the environment into the config singleton.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "counsel-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_URL", "http://localhost:7070")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "counsel")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ZOOM_API_BASE_URL", "https://api.zoom.us/v2")
	v.SetDefault("ZOOM_OAUTH_URL", "https://zoom.us/oauth")

	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			URL:      v.GetString("APP_URL"),
			LogLevel: v.GetString("LOG_LEVEL"),
			JWTKey:   v.GetString("JWT_SECRET_KEY"),
		},
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Zoom: ZoomConfig{
			APIBaseURL:   v.GetString("ZOOM_API_BASE_URL"),
			OAuthURL:     v.GetString("ZOOM_OAUTH_URL"),
			ClientID:     v.GetString("ZOOM_CLIENT_ID"),
			ClientSecret: v.GetString("ZOOM_CLIENT_SECRET"),
			RedirectURI:  v.GetString("ZOOM_OAUTH_CALLBACK_URL"),
		},
		GoogleAPI: GoogleAPIConfig{
			ClientID:           v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret:       v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURI:        v.GetString("GOOGLE_REDIRECT_URL"),
			CalendarAPIBaseURL: v.GetString("GOOGLE_CALENDAR_API_BASE_URL"),
		},
		Mail: MailConfig{
			SendgridAPIKey: v.GetString("SENDGRID_API_KEY"),
			FromEmail:      v.GetString("NOTIFY_EMAIL_FROM"),
			FromName:       v.GetString("NOTIFY_EMAIL_FROM_NAME"),
		},
	}

	if cfg.App.JWTKey == "" && cfg.App.Env != "development" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required outside development")
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded config. Panics when called before Load.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

// GetSafe returns the loaded config and whether it has been initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// SetForTest installs a config instance directly. Test helper only.
func SetForTest(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
