package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tmcosta/barbershop-api/pkg/validator"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Redis         RedisConfig         `mapstructure:"redis"`
	BusinessHours BusinessHoursConfig `mapstructure:"business_hours"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret" validate:"required"`
	RefreshSecret      string `mapstructure:"refresh_secret" validate:"required"`
	ExpiryHours        int    `mapstructure:"expiry_hours" validate:"gt=0"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours" validate:"gt=0"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// BusinessHoursConfig sets the booking window. Hours are on a 24h clock;
// slots start every SlotIntervalMinutes inside [Opening, Closing).
type BusinessHoursConfig struct {
	OpeningHour         int `mapstructure:"opening_hour" validate:"min=0,max=23"`
	ClosingHour         int `mapstructure:"closing_hour" validate:"min=1,max=24,gtfield=OpeningHour"`
	SlotIntervalMinutes int `mapstructure:"slot_interval_minutes" validate:"gt=0"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeout_seconds", 30)

	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)

	viper.SetDefault("jwt.expiry_hours", 1)
	viper.SetDefault("jwt.refresh_expiry_hours", 168)

	viper.SetDefault("business_hours.opening_hour", 9)
	viper.SetDefault("business_hours.closing_hour", 19)
	viper.SetDefault("business_hours.slot_interval_minutes", 30)

	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)
}
