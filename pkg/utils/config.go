package utils

import (
	"rentpay/pkg/database"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database database.Config
	Stripe   StripeConfig
	Payments PaymentsConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type StripeConfig struct {
	APIKey string
}

// PaymentsConfig holds the engine's business policy knobs.
type PaymentsConfig struct {
	// AcceptProcessingCapture books optimistically on a "processing" intent
	// (ACH-style delayed settlement) instead of waiting for final settlement.
	AcceptProcessingCapture bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("ACCEPT_PROCESSING_CAPTURE", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: database.Config{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Stripe: StripeConfig{
			APIKey: viper.GetString("STRIPE_API_KEY"),
		},
		Payments: PaymentsConfig{
			AcceptProcessingCapture: viper.GetBool("ACCEPT_PROCESSING_CAPTURE"),
		},
	}

	return config, nil
}
