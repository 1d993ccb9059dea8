package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"upi-qr-pay/internal/constants"
	apperrors "upi-qr-pay/internal/errors"
)

// DefaultFontPaths is the font fallback order tried before the built-in bitmap face
var DefaultFontPaths = []string{
	"arial.ttf",
	"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
	"DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
}

// Load loads the configuration from a .env file (if present) and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	return loadFromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 5000)
	v.SetDefault("PAYEE_ID", "7840030011@ptsbi")
	v.SetDefault("PAYEE_NAME", "Arshdeep Singh Gill")
	v.SetDefault("CURRENCY", constants.DefaultCurrency)
	v.SetDefault("LOGO_PATH", "arsh.jpg")
	v.SetDefault("QR_BOX_SIZE", constants.DefaultBoxSize)
	v.SetDefault("LOGO_SIZE", constants.DefaultLogoSize)
	v.SetDefault("FONT_SIZE", constants.DefaultFontSize)
	v.SetDefault("IMAGE_TTL", constants.ImageExpiration*time.Minute)
	v.SetDefault("IMAGE_CLEANUP_INTERVAL", constants.ImageCleanupInterval*time.Minute)
	v.SetDefault("MAX_IMAGES", constants.DefaultMaxImages)

	// Define environment variables without defaults
	v.BindEnv("LOGO_URL")
	v.BindEnv("FONT_PATHS")
	v.BindEnv("TG_TOKEN")
	v.BindEnv("TG_ADMIN_IDS")

	return v
}

func loadFromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		LogLevel: v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host: strings.TrimSpace(v.GetString("HTTP_HOST")),
			Port: v.GetInt("HTTP_PORT"),
		},
		Payee: PayeeConfig{
			ID:       strings.TrimSpace(v.GetString("PAYEE_ID")),
			Name:     strings.TrimSpace(v.GetString("PAYEE_NAME")),
			Currency: strings.ToUpper(strings.TrimSpace(v.GetString("CURRENCY"))),
			LogoPath: strings.TrimSpace(v.GetString("LOGO_PATH")),
			LogoURL:  strings.TrimSpace(v.GetString("LOGO_URL")),
		},
		Render: RenderConfig{
			BoxSize:   v.GetInt("QR_BOX_SIZE"),
			LogoSize:  v.GetInt("LOGO_SIZE"),
			FontSize:  v.GetFloat64("FONT_SIZE"),
			FontPaths: DefaultFontPaths,
		},
		Registry: RegistryConfig{
			TTL:             v.GetDuration("IMAGE_TTL"),
			CleanupInterval: v.GetDuration("IMAGE_CLEANUP_INTERVAL"),
			MaxImages:       v.GetInt("MAX_IMAGES"),
		},
		Telegram: TelegramConfig{
			Token: strings.TrimSpace(v.GetString("TG_TOKEN")),
		},
	}

	// Parse font paths
	if fontPaths := v.GetString("FONT_PATHS"); fontPaths != "" {
		cfg.Render.FontPaths = splitList(fontPaths)
	}

	// Parse admin IDs
	if adminIDsStr := v.GetString("TG_ADMIN_IDS"); adminIDsStr != "" {
		parts := splitList(adminIDsStr)
		adminIDs := make([]int64, 0, len(parts))
		for _, idStr := range parts {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return nil, &apperrors.ConfigError{Section: "telegram", Message: fmt.Sprintf("invalid admin ID %q", idStr)}
			}
			adminIDs = append(adminIDs, id)
		}
		cfg.Telegram.AdminIDs = adminIDs
	}

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return &apperrors.ConfigError{Section: "http", Message: "HTTP_PORT must be between 1 and 65535"}
	}

	if cfg.Payee.ID == "" {
		return &apperrors.ConfigError{Section: "payee", Message: "PAYEE_ID is required"}
	}
	if !strings.Contains(cfg.Payee.ID, "@") {
		return &apperrors.ConfigError{Section: "payee", Message: "PAYEE_ID must be a VPA like name@bank"}
	}
	if cfg.Payee.Name == "" {
		return &apperrors.ConfigError{Section: "payee", Message: "PAYEE_NAME is required"}
	}
	if len(cfg.Payee.Currency) != 3 {
		return &apperrors.ConfigError{Section: "payee", Message: "CURRENCY must be a 3-letter code"}
	}

	if cfg.Render.BoxSize < 1 {
		return &apperrors.ConfigError{Section: "render", Message: "QR_BOX_SIZE must be positive"}
	}
	if cfg.Render.LogoSize < 0 {
		return &apperrors.ConfigError{Section: "render", Message: "LOGO_SIZE must not be negative"}
	}
	if cfg.Render.FontSize <= 0 {
		return &apperrors.ConfigError{Section: "render", Message: "FONT_SIZE must be positive"}
	}

	if cfg.Registry.TTL <= 0 {
		return &apperrors.ConfigError{Section: "registry", Message: "IMAGE_TTL must be positive"}
	}
	if cfg.Registry.MaxImages < 1 {
		return &apperrors.ConfigError{Section: "registry", Message: "MAX_IMAGES must be at least 1"}
	}

	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
