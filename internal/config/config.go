package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Billing   BillingConfig   `yaml:"billing"`
	Assistant AssistantConfig `yaml:"assistant"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug/release
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite
	Path string `yaml:"path"`
}

// MonitorConfig controls the periodic renewal sweep
type MonitorConfig struct {
	CheckInterval string `yaml:"check_interval"` // Cron expression
}

// BillingConfig controls auto-invoicing
type BillingConfig struct {
	AutoInvoice bool `yaml:"auto_invoice"` // Stamp due invoices during the sweep
}

// AssistantConfig represents the AI text-completion endpoint configuration
type AssistantConfig struct {
	APIURL  string `yaml:"api_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// LoadConfig loads configuration from a YAML file. The assistant API key may
// be supplied through the ASSISTANT_API_KEY environment variable instead of
// the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if key := os.Getenv("ASSISTANT_API_KEY"); key != "" {
		config.Assistant.APIKey = key
	}

	return &config, nil
}
