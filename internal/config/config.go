package config

import "time"

// Config represents the application configuration
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Payee    PayeeConfig    `mapstructure:"payee"`
	Render   RenderConfig   `mapstructure:"render"`
	Registry RegistryConfig `mapstructure:"registry"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	LogLevel string         `mapstructure:"log_level"`
}

// HTTPConfig holds the web listener configuration
type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the host:port pair to listen on
func (c HTTPConfig) Addr() string {
	return joinHostPort(c.Host, c.Port)
}

// PayeeConfig holds the fixed payee the QR codes pay to
type PayeeConfig struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Currency string `mapstructure:"currency"`
	LogoPath string `mapstructure:"logo_path"`
	LogoURL  string `mapstructure:"logo_url"`
}

// RenderConfig holds image composition settings
type RenderConfig struct {
	BoxSize   int      `mapstructure:"box_size"`
	LogoSize  int      `mapstructure:"logo_size"`
	FontSize  float64  `mapstructure:"font_size"`
	FontPaths []string `mapstructure:"font_paths"`
}

// RegistryConfig holds the in-memory image registry limits
type RegistryConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxImages       int           `mapstructure:"max_images"`
}

// TelegramConfig holds the optional Telegram bot configuration
type TelegramConfig struct {
	Token    string  `mapstructure:"token"`
	AdminIDs []int64 `mapstructure:"admin_ids"`
}

// Enabled reports whether the Telegram front end should start
func (c TelegramConfig) Enabled() bool {
	return c.Token != ""
}
