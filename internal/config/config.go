package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	VTEX        VTEXConfig
	Blip        BlipConfig
	API         APIConfig
}

// DatabaseConfig is optional; an empty URL disables the audit log and dedup.
type DatabaseConfig struct {
	URL string
}

func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

type VTEXConfig struct {
	BaseURL  string
	AppKey   string
	AppToken string
	Timeout  time.Duration
}

// Enabled reports whether order enrichment can call VTEX at all.
func (c VTEXConfig) Enabled() bool {
	return c.BaseURL != "" && c.AppKey != "" && c.AppToken != ""
}

type BlipConfig struct {
	Endpoint           string
	Auth               string
	CampaignNamePrefix string
	CampaignType       string
	FlowID             string
	StateID            string
	MasterState        string
	SourceApplication  string
	Timeout            time.Duration
}

type APIConfig struct {
	// RouteTokenHash is a bcrypt hash of the token guarding /api routes
	RouteTokenHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CAMPAIGN_NAME_PREFIX", "Hidramais")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "30s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(getEnvOrViper("HTTP_CLIENT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_CLIENT_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "3000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			URL: getEnvOrViper("DATABASE_URL", ""),
		},
		VTEX: VTEXConfig{
			BaseURL:  getEnvOrViper("VTEX_BASE_URL", ""),
			AppKey:   getEnvOrViper("VTEX_APP_KEY", ""),
			AppToken: getEnvOrViper("VTEX_APP_TOKEN", ""),
			Timeout:  timeout,
		},
		Blip: BlipConfig{
			Endpoint:           getEnvOrViper("BLIP_ENDPOINT", ""),
			Auth:               getEnvOrViper("BLIP_AUTH", ""),
			CampaignNamePrefix: getEnvOrViper("CAMPAIGN_NAME_PREFIX", "Hidramais"),
			CampaignType:       getEnvOrViper("CAMPAIGN_TYPE", "Batch"),
			FlowID:             getEnvOrViper("FLOW_ID", ""),
			StateID:            getEnvOrViper("STATE_ID", "onboarding"),
			MasterState:        getEnvOrViper("MASTERSTATE", ""),
			SourceApplication:  getEnvOrViper("SOURCE_APPLICATION", "API de Alerta Webhook VTEX"),
			Timeout:            timeout,
		},
		API: APIConfig{
			RouteTokenHash: getEnvOrViper("API_ROUTE_TOKEN_HASH", ""),
		},
	}

	// Blip, VTEX and the database are all optional at boot; missing pieces
	// disable the matching feature instead of failing startup.
	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		if val := viper.GetString(key); val != "" {
			return val
		}
	}
	return defaultValue
}
