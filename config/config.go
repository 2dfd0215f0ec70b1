package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Brand  BrandConfig  `yaml:"brand"`

	// Provider credentials are environment-only; a provider with missing
	// values is skipped by the dispatcher rather than treated as an error.
	SMTP     SMTPConfig     `yaml:"-"`
	Airtable AirtableConfig `yaml:"-"`
	Sheets   SheetsConfig   `yaml:"-"`
}

type ServerConfig struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type BrandConfig struct {
	Name string `yaml:"name"`
}

// SMTPConfig holds mail-relay settings for the email provider.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Secure   bool
	From     string
	To       string
}

// IsConfigured reports whether the email provider can be attempted.
func (c *SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.To != ""
}

// AirtableConfig holds record-store settings.
type AirtableConfig struct {
	APIKey string
	BaseID string
	Table  string
}

// IsConfigured reports whether the record-store provider can be attempted.
func (c *AirtableConfig) IsConfigured() bool {
	return c.APIKey != "" && c.BaseID != ""
}

// SheetsConfig holds spreadsheet-append settings. PrivateKey is the
// service account's PEM key with literal \n sequences allowed.
type SheetsConfig struct {
	ServiceAccountEmail string
	PrivateKey          string
	SpreadsheetID       string
	SheetName           string
}

// IsConfigured reports whether the spreadsheet provider can be attempted.
func (c *SheetsConfig) IsConfigured() bool {
	return c.ServiceAccountEmail != "" && c.PrivateKey != "" && c.SpreadsheetID != ""
}

// Load reads the optional YAML file at path, then overlays environment
// variables. A missing file is not an error; the service can run on
// environment configuration alone. A .env file is honored in development.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "./dist"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Brand.Name == "" {
		cfg.Brand.Name = "SK Associate"
	}

	// Environment overlay
	cfg.Server.Port = getEnvInt("PORT", cfg.Server.Port)
	cfg.Server.StaticDir = getEnv("STATIC_DIR", cfg.Server.StaticDir)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Brand.Name = getEnv("BRAND_NAME", cfg.Brand.Name)

	cfg.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnvInt("SMTP_PORT", 587),
		Username: getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASS", ""),
		Secure:   getEnvBool("SMTP_SECURE", false),
		From:     getEnv("MAIL_FROM", ""),
		To:       getEnv("MAIL_TO", ""),
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	cfg.Airtable = AirtableConfig{
		APIKey: getEnv("AIRTABLE_API_KEY", ""),
		BaseID: getEnv("AIRTABLE_BASE_ID", ""),
		Table:  getEnv("AIRTABLE_TABLE_NAME", "Leads"),
	}

	cfg.Sheets = SheetsConfig{
		ServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		PrivateKey:          strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),
		SpreadsheetID:       getEnv("GOOGLE_SHEET_ID", ""),
		SheetName:           getEnv("GOOGLE_SHEET_NAME", "Leads"),
	}

	return &cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
