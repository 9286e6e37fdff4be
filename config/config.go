package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (session store).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Session lifecycle.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// CiaoBooking credentials.
	CiaoBookingBaseURL  string `mapstructure:"CIAOBOOKING_BASE_URL"`
	CiaoBookingEmail    string `mapstructure:"CIAOBOOKING_EMAIL"`
	CiaoBookingPassword string `mapstructure:"CIAOBOOKING_PASSWORD"`
	CiaoBookingSource   string `mapstructure:"CIAOBOOKING_SOURCE"`

	// Disclosure policy: when true, auto-disclosure on the arrival day
	// additionally requires the guest to be marked as arrived.
	DisclosureRequireArrived bool `mapstructure:"DISCLOSURE_REQUIRE_ARRIVED"`

	// Knowledge base file.
	KnowledgeBasePath string `mapstructure:"KNOWLEDGE_BASE_PATH"`

	// Gemini API key for the free-text fallback responder.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("CIAOBOOKING_BASE_URL", "https://api.ciaobooking.com")
	viper.SetDefault("CIAOBOOKING_SOURCE", "bot")
	viper.SetDefault("DISCLOSURE_REQUIRE_ARRIVED", false)
	viper.SetDefault("KNOWLEDGE_BASE_PATH", "kb/knowledge_base.json")
	viper.SetDefault("GEMINI_API_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
