package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Config содержит конфигурацию веб-интерфейса.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8090"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"debug"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`

	// Бэкенд генерации контента
	BackendURL    string        `envconfig:"BACKEND_URL" default:"http://localhost:8000"`
	ClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"0s"` // 0 - без таймаута

	// Модель, выбранная в форме по умолчанию
	DefaultModel string `envconfig:"DEFAULT_MODEL" default:"gpt-4o-mini"`

	// Пусто - встроенные шаблоны. Если задано в development, шаблоны перечитываются при каждом рендере.
	TemplatesDir string `envconfig:"TEMPLATES_DIR"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:8090"`
}

// IsDevelopment сообщает, запущен ли сервис в режиме разработки.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// GetAllowedOrigins разбивает CORSAllowedOrigins по запятой.
func (c *Config) GetAllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	origins := strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
	out := origins[:0]
	for _, o := range origins {
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate проверяет значения, которые envconfig проверить не может.
func (c *Config) Validate() error {
	u, err := url.ParseRequestURI(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid BACKEND_URL %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid BACKEND_URL %q: scheme must be http or https", c.BackendURL)
	}
	if c.ClientTimeout < 0 {
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must not be negative, got %s", c.ClientTimeout)
	}
	if strings.TrimSpace(c.ServerPort) == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}
	return nil
}

// LoadConfig загружает .env (если есть) и переменные окружения.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LogSummary пишет загруженную конфигурацию в лог.
func (c *Config) LogSummary(logger *zap.Logger) {
	logger.Info("Configuration loaded",
		zap.String("env", c.Env),
		zap.String("port", c.ServerPort),
		zap.String("logLevel", c.LogLevel),
		zap.String("logEncoding", c.LogEncoding),
		zap.String("backendURL", c.BackendURL),
		zap.Duration("clientTimeout", c.ClientTimeout),
		zap.String("defaultModel", c.DefaultModel),
		zap.String("templatesDir", c.TemplatesDir),
		zap.Strings("corsAllowedOrigins", c.GetAllowedOrigins()),
	)
}
