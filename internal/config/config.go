package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yourname/squeezer/pkg/compressproto"
)

const defaultMaxUploadBytes = 32 << 20

type Config struct {
	APIURL         string        `yaml:"api_url" json:"api_url" validate:"required,http_url"`
	UIAddr         string        `yaml:"ui_addr" json:"ui_addr" validate:"required"`
	APIAddr        string        `yaml:"api_addr" json:"api_addr" validate:"required"`
	DownloadDir    string        `yaml:"download_dir" json:"download_dir" validate:"required"`
	DownloadName   string        `yaml:"download_name" json:"download_name" validate:"required"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout" validate:"gt=0"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" json:"max_upload_bytes" validate:"gt=0"`
	Log            Log           `yaml:"log" json:"log"`
}

type Log struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`
}

// Default возвращает конфигурацию, с которой клиент работает без файла и переменных окружения.
func Default() *Config {
	return &Config{
		APIURL:         compressproto.DefaultBaseURL,
		UIAddr:         "127.0.0.1:3000",
		APIAddr:        ":8001",
		DownloadDir:    ".",
		DownloadName:   compressproto.DefaultDownloadName,
		RequestTimeout: 60 * time.Second,
		MaxUploadBytes: defaultMaxUploadBytes,
		Log:            Log{Level: "info", Format: "text"},
	}
}

// Load читает .env, затем YAML-конфигурацию (отсутствие файла не ошибка),
// применяет ENV-переопределения и валидирует результат.
// Пустой path означает CONFIG_PATH либо ./config.yaml.
func Load(path string) (*Config, error) {
	// .env необязателен, переменные окружения процесса остаются в силе
	_ = godotenv.Load()

	if path == "" {
		path = getenv("CONFIG_PATH", "./config.yaml")
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate проверяет значения после всех переопределений.
func (c *Config) Validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	// ENV override
	if v := os.Getenv("SQUEEZER_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("SQUEEZER_UI_ADDR"); v != "" {
		c.UIAddr = v
	}
	if v := os.Getenv("SQUEEZER_API_ADDR"); v != "" {
		c.APIAddr = v
	}
	if v := os.Getenv("SQUEEZER_DOWNLOAD_DIR"); v != "" {
		c.DownloadDir = v
	}
	if v := os.Getenv("SQUEEZER_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SQUEEZER_REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	if v := os.Getenv("SQUEEZER_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SQUEEZER_MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenv("LOG_FORMAT", c.Log.Format)

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
