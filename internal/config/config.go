package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the jobhub service.
type Config struct {
	ListenAddr    string
	DBPath        string
	Sources       []SourceConfig
	SourceTimeout time.Duration
	Mail          MailConfig
}

// SourceConfig describes a single external job feed.
type SourceConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// MailConfig controls which mailer is used and its settings.
type MailConfig struct {
	Type     string `yaml:"type"`      // "log" or "smtp"
	SMTPAddr string `yaml:"smtp_addr"` // required if type is "smtp", host:port
	From     string `yaml:"from"`
}

const (
	defaultListenAddr    = ":8080"
	defaultDBPath        = "jobhub.db"
	defaultSourceTimeout = 5 * time.Second
	defaultMailFrom      = "noreply@jobhub.local"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	ListenAddr    string         `yaml:"listen_addr"`
	DBPath        string         `yaml:"db_path"`
	Sources       []SourceConfig `yaml:"sources"`
	SourceTimeout string         `yaml:"source_timeout"`
	Mail          MailConfig     `yaml:"mail"`
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config with defaults applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	sourceTimeout := defaultSourceTimeout
	if raw.SourceTimeout != "" {
		sourceTimeout, err = time.ParseDuration(raw.SourceTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse source_timeout %q: %w", raw.SourceTimeout, err)
		}
	}

	cfg := &Config{
		ListenAddr:    raw.ListenAddr,
		DBPath:        raw.DBPath,
		Sources:       raw.Sources,
		SourceTimeout: sourceTimeout,
		Mail:          raw.Mail,
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Mail.Type == "" {
		cfg.Mail.Type = "log"
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = defaultMailFrom
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.SourceTimeout < 1*time.Second || cfg.SourceTimeout > 30*time.Second {
		return fmt.Errorf("source_timeout must be between 1s and 30s, got %v", cfg.SourceTimeout)
	}

	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("sources[%d].name is required", i)
		}
		if s.Enabled && s.URL == "" {
			return fmt.Errorf("sources[%d].url is required when enabled", i)
		}
	}

	switch cfg.Mail.Type {
	case "log":
	case "smtp":
		if cfg.Mail.SMTPAddr == "" {
			return fmt.Errorf("mail.smtp_addr is required when type is \"smtp\"")
		}
	default:
		return fmt.Errorf("mail.type must be \"log\" or \"smtp\", got %q", cfg.Mail.Type)
	}

	return nil
}
