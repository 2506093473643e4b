package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents an app config.
type Config struct {
	ExchangeRate ExchangeRate
	Telegram     Telegram
	HTTP         HTTP
	Worker       Worker
	Logger       Logger
}

// ExchangeRate represents an exchange rate API configuration.
type ExchangeRate struct {
	BaseURL string        `env:"EXCHANGE_RATE_BASE_URL" env-default:"https://api.exchangerate-api.com/v4/latest"`
	APIKey  string        `env:"EXCHANGE_RATE_API_KEY"`
	Timeout time.Duration `env:"EXCHANGE_RATE_TIMEOUT" env-default:"10s"`
}

// Telegram represents a telegram bot configuration.
type Telegram struct {
	Enabled       bool   `env:"TELEGRAM_ENABLED" env-default:"true"`
	BotToken      string `env:"BOT_TOKEN"`
	UpdatesType   string `env:"UPDATES_TYPE" env-default:"polling"`
	WebhookURL    string `env:"WEBHOOK_URL"`
	ServerAddress string `env:"SERVER_ADDRESS" env-default:":8443"`
}

// HTTP represents a configuration of the conversion HTTP API.
type HTTP struct {
	Address      string        `env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
}

// Worker represents a configuration of the pool that handles messenger updates.
type Worker struct {
	Count     int `env:"WORKER_COUNT" env-default:"4"`
	QueueSize int `env:"WORKER_QUEUE_SIZE" env-default:"64"`
}

// Logger represents a logger configuration.
type Logger struct {
	LogLevel        string `env:"CC_LOGGER_LOG_LEVEL" env-default:"debug"`
	LogFilename     string `env:"CC_LOGGER_LOG_FILENAME" env-default:""`
	PrettyLogOutput bool   `env:"CC_LOGGER_PRETTY_LOG_OUTPUT" env-default:"false"`
	MaxFileSizeMB   int    `env:"CC_LOGGER_MAX_FILE_SIZE_MB" env-default:"10"`
	MaxFileBackups  int    `env:"CC_LOGGER_MAX_FILE_BACKUPS" env-default:"3"`
}

var (
	config Config
	once   sync.Once
)

// Get returns a new config.
func Get() *Config {
	once.Do(func() {
		err := cleanenv.ReadEnv(&config)
		if err != nil {
			log.Fatalf("read env: %v", err)
		}
	})

	return &config
}
