package config

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Redis     RedisConfig     `json:"redis"`
	Commerce  CommerceConfig  `json:"commerce"`
	Campaign  CampaignConfig  `json:"campaign"`
	Cart      CartConfig      `json:"cart"`
	Analytics AnalyticsConfig `json:"analytics"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// CommerceConfig points the checkout bridge at the external commerce
// platform. TimeoutSeconds of 0 means the outbound call waits indefinitely.
type CommerceConfig struct {
	Endpoint       string `json:"endpoint"`
	AccessToken    string `json:"access_token"`
	APIVersion     string `json:"api_version"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type CampaignConfig struct {
	CutoffAt string `json:"cutoff_at"`
}

type CartConfig struct {
	TTLHours int `json:"ttl_hours"`
}

// AnalyticsConfig is optional; an empty endpoint disables tracking.
type AnalyticsConfig struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	applyEnvOverrides(&config)

	if config.Cart.TTLHours <= 0 {
		config.Cart.TTLHours = 168
	}

	return &config, nil
}

// Secrets can come from the environment (a .env file is loaded in main)
// so they never have to live in the checked-in config file.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("COMMERCE_ACCESS_TOKEN"); v != "" {
		c.Commerce.AccessToken = v
	}
	if v := os.Getenv("ANALYTICS_API_KEY"); v != "" {
		c.Analytics.APIKey = v
	}
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func (c *CampaignConfig) CutoffTime() (time.Time, error) {
	if c.CutoffAt == "" {
		return time.Time{}, errors.New("campaign cutoff_at is not configured")
	}
	return time.Parse(time.RFC3339, c.CutoffAt)
}

func (c *CommerceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *CartConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}
