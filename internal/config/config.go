package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

const (
	DefaultStorageDriver = "json"
	DefaultStoragePath   = "queue.json"
	DefaultInterval      = time.Minute
	DefaultLogLevel      = "info"
)

// SecretPath is the Docker secret checked for the bot token.
var SecretPath = "/run/secrets/telegram_bot_token"

type Config struct {
	TelegramToken string    `yaml:"telegram_token"`
	AdminIDs      []int64   `yaml:"admin_ids"`
	GroupChatID   int64     `yaml:"group_chat_id"`
	ThreadID      int       `yaml:"thread_id"`
	Storage       Storage   `yaml:"storage"`
	Scheduler     Scheduler `yaml:"scheduler"`
	Logging       Logging   `yaml:"logging"`
}

type Storage struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type Scheduler struct {
	Interval time.Duration `yaml:"interval"`
}

type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads the optional YAML file at path, then applies environment
// overrides and defaults. It does not validate.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if cfg.TelegramToken == "" {
		cfg.TelegramToken = getBotToken()
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := env("ADMIN_IDS"); v != "" {
		ids, err := ParseIDs(v)
		if err != nil {
			return fmt.Errorf("ADMIN_IDS: %w", err)
		}
		c.AdminIDs = ids
	}
	if v := env("GROUP_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("GROUP_CHAT_ID: %w", err)
		}
		c.GroupChatID = id
	}
	if v := env("THREAD_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("THREAD_ID: %w", err)
		}
		c.ThreadID = id
	}
	if v := env("SCHEDULER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SCHEDULER_INTERVAL: %w", err)
		}
		c.Scheduler.Interval = d
	}

	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.Path, "STORAGE_PATH")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.File, "LOG_FILE")
	return nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DefaultStorageDriver
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath
	}
	if c.Scheduler.Interval <= 0 {
		c.Scheduler.Interval = DefaultInterval
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Validate checks what the bot needs to run.
func (c Config) Validate() error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("telegram token is not set (docker secret or TELEGRAM_BOT_TOKEN)"))
	}
	if len(c.AdminIDs) == 0 {
		errs = append(errs, errors.New("admin_ids is empty"))
	}
	if c.GroupChatID == 0 {
		errs = append(errs, errors.New("group_chat_id is not set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// IsAdmin reports whether id may use the admin panel.
func (c Config) IsAdmin(id int64) bool {
	for _, a := range c.AdminIDs {
		if a == id {
			return true
		}
	}
	return false
}

// ParseIDs parses a comma separated list of chat ids.
func ParseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getBotToken() string {
	if data, err := os.ReadFile(SecretPath); err == nil {
		token := strings.TrimSpace(string(data))
		if token != "" {
			return token
		}
	}
	return env("TELEGRAM_BOT_TOKEN")
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func setString(dst *string, key string) {
	if v := env(key); v != "" {
		*dst = v
	}
}
