// Package config предоставляет структуры и функции для загрузки конфигурации Questly.
//
// Конфигурация читается из YAML‑файла, путь к которому задаёт CONFIG_PATH;
// переменные окружения переопределяют значения файла. Перед чтением
// подгружается необязательный файл .env.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Драйверы хранилища.
const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

// Хранилища сессий.
const (
	SessionBackendStore = "store"
	SessionBackendRedis = "redis"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	CORS       CORS       `yaml:"cors"`
	Storage    Storage    `yaml:"storage"`
	Session    Session    `yaml:"session"`
	Redis      Redis      `yaml:"redis"`
	Generation Generation `yaml:"generation"`
	Federation Federation `yaml:"federation"`
	RabbitMQ   RabbitMQ   `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"90s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// CORS перечисляет источники, которым разрешены запросы с cookie.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

// Storage настраивает хранилище учётных записей, сессий и истории.
type Storage struct {
	Driver         string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`
	MongoURI       string        `yaml:"mongo_uri" env:"MONGO_URL" env-default:"mongodb://localhost:27017"`
	MongoDatabase  string        `yaml:"mongo_database" env:"DB_NAME" env-default:"questly"`
	PostgresDSN    string        `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	MigrationsPath string        `yaml:"migrations_path" env-default:"./migrations"`
	OpTimeout      time.Duration `yaml:"op_timeout" env-default:"5s"`
}

// Session настраивает срок жизни и cookie сессии.
type Session struct {
	TTL        time.Duration `yaml:"ttl" env-default:"168h"`
	CookieName string        `yaml:"cookie_name" env-default:"session_token"`
	Secure     bool          `yaml:"secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	SameSite   string        `yaml:"same_site" env-default:"lax"`
	Backend    string        `yaml:"backend" env:"SESSION_BACKEND" env-default:"store"`
}

// Redis структура для настройки подключения к redis.
type Redis struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
}

// Generation настраивает клиент генеративной модели.
type Generation struct {
	APIKey          string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model           string        `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout" env-default:"60s"`
	Temperature     float32       `yaml:"temperature" env-default:"0.8"`
	TopP            float32       `yaml:"top_p" env-default:"0.9"`
	MaxOutputTokens int32         `yaml:"max_output_tokens" env-default:"8000"`
}

// Federation настраивает внешнего провайдера входа.
type Federation struct {
	SessionDataURL string        `yaml:"session_data_url" env:"FEDERATION_SESSION_URL"`
	Timeout        time.Duration `yaml:"timeout" env-default:"10s"`
}

// RabbitMQ настраивает публикацию событий о заявках на наставника.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL         string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange    string        `yaml:"exchange" env-default:"questly"`
	Queue       string        `yaml:"queue" env-default:"mentor.requests"`
	RoutingKey  string        `yaml:"routing_key" env-default:"mentor.requested"`
	ConnRetries int           `yaml:"conn_retries" env-default:"5"`
	ConnDelay   time.Duration `yaml:"conn_delay" env-default:"2s"`
}

// MustLoad загружает конфигурацию и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load загружает .env (если есть), затем YAML‑файл из CONFIG_PATH
// с переопределением из окружения и проверяет результат.
func Load() (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: .env: %w", op, err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, fmt.Errorf("%s: CONFIG_PATH is not set", op)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMongo:
		if c.Storage.MongoURI == "" {
			return errors.New("storage.mongo_uri is required for mongo driver")
		}
	case StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is required for postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Session.Backend {
	case SessionBackendStore, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	return nil
}

// String возвращает конфигурацию без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  MongoDatabase: %s\n"+
			"Session:\n"+
			"  TTL: %s\n"+
			"  Backend: %s\n"+
			"Generation:\n"+
			"  Model: %s\n"+
			"  Timeout: %s\n"+
			"RabbitMQ enabled: %t\n",
		c.Env,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.Storage.Driver,
		c.Storage.MongoDatabase,
		c.Session.TTL,
		c.Session.Backend,
		c.Generation.Model,
		c.Generation.Timeout,
		c.RabbitMQ.URL != "",
	)
}
