package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SMTPConfig carries the outbound mail transport settings. Any field may be
// left empty; the mailer treats an incomplete config as "transport off".
type SMTPConfig struct {
	Sender   string `yaml:"sender"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type AuditConfig struct {
	MailLog  string `yaml:"mail_log"`
	TraceLog string `yaml:"trace_log"`
}

type NotifierConfig struct {
	RunTimeoutSeconds int    `yaml:"run_timeout_seconds"`
	MetricsAddr       string `yaml:"metrics_addr"`
}

type Config struct {
	DB       DBConfig       `yaml:"db"`
	MQ       MQConfig       `yaml:"mq"`
	Redis    RedisConfig    `yaml:"redis"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Audit    AuditConfig    `yaml:"audit"`
	Notifier NotifierConfig `yaml:"notifier"`
}

func Load() *Config {
	cfg, err := LoadFrom("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	overrideFromEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Audit.MailLog == "" {
		cfg.Audit.MailLog = "email_debug.log"
	}
	if cfg.Audit.TraceLog == "" {
		cfg.Audit.TraceLog = "crash_debug.log"
	}
	if cfg.Notifier.RunTimeoutSeconds == 0 {
		cfg.Notifier.RunTimeoutSeconds = 30
	}
	if cfg.Notifier.MetricsAddr == "" {
		cfg.Notifier.MetricsAddr = ":9091"
	}
}

func overrideFromEnv(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	// Mail settings keep the EMAIL_* names the deployment already uses.
	if sender := os.Getenv("EMAIL_SENDER"); sender != "" {
		cfg.SMTP.Sender = sender
	}
	if host := os.Getenv("EMAIL_HOST"); host != "" {
		cfg.SMTP.Host = host
	}
	if port := os.Getenv("EMAIL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if user := os.Getenv("EMAIL_USER"); user != "" {
		cfg.SMTP.User = user
	}
	if password := os.Getenv("EMAIL_PASS"); password != "" {
		cfg.SMTP.Password = password
	}
}
