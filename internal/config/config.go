package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Timezone    string `env:"APP_TIMEZONE" envDefault:"America/Sao_Paulo"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Storage struct {
		Backend  string `env:"BACKEND" envDefault:"file"` // file or postgres
		File     string `env:"FILE" envDefault:"data/db.json"`
		Document string `env:"DOCUMENT" envDefault:"household"`
	} `envPrefix:"STORAGE_"`
	Database struct {
		DSN            string `env:"DSN"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Lock struct {
		Backend       string `env:"BACKEND" envDefault:"memory"` // memory or redis
		Key           string `env:"KEY" envDefault:"escala:document-lock"`
		TTL           int    `env:"TTL" envDefault:"10"`            // seconds
		RetryInterval int    `env:"RETRY_INTERVAL" envDefault:"50"` // milliseconds
		WaitTimeout   int    `env:"WAIT_TIMEOUT" envDefault:"5"`    // seconds
	} `envPrefix:"LOCK_"`
	Redis struct {
		Host           string `env:"HOST" envDefault:"localhost"`
		Port           int    `env:"PORT" envDefault:"6379"`
		Password       string `env:"PASSWORD"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	Auth struct {
		Password   string `env:"PASSWORD"`                    // login is disabled when empty
		Expiration int    `env:"EXPIRATION" envDefault:"336"` // hours
		Secret     string `env:"SECRET"`
	} `envPrefix:"AUTH_"`
	RabbitMQ struct {
		Enabled        bool   `env:"ENABLED" envDefault:"false"`
		DSN            string `env:"DSN"`
		Queue          string `env:"QUEUE" envDefault:"notification_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		FamilyRecipients []string `env:"FAMILY_RECIPIENTS" envSeparator:","`
		TemplatesDir     string   `env:"TEMPLATES_DIR" envDefault:"./templates"`
		SMTP             struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Upload struct {
		Dir     string `env:"DIR" envDefault:"data/uploads"`
		MaxSize int64  `env:"MAX_SIZE" envDefault:"5242880"` // 5 MiB
	} `envPrefix:"UPLOAD_"`
	Scheduler struct {
		PopulationSize int32   `env:"POPULATION_SIZE" envDefault:"40"`
		MaxGenerations int32   `env:"MAX_GENERATIONS" envDefault:"150"`
		CrossoverRate  float64 `env:"CROSSOVER_RATE" envDefault:"0.8"`
		MutationRate   float64 `env:"MUTATION_RATE" envDefault:"0.1"`
		EliteCount     int32   `env:"ELITE_COUNT" envDefault:"2"`
		FairnessWeight float64 `env:"FAIRNESS_WEIGHT" envDefault:"0.05"`
	} `envPrefix:"SCHEDULER_"`
}

func LoadConfig() (*Config, error) {
	// .env only exists in local development
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only the first error, keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file":
		if c.Storage.File == "" {
			return errors.New("STORAGE_FILE is required when STORAGE_BACKEND=file")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("DATABASE_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: file, postgres (got %q)", c.Storage.Backend)
	}

	if c.Lock.Backend != "memory" && c.Lock.Backend != "redis" {
		return fmt.Errorf("LOCK_BACKEND must be one of: memory, redis (got %q)", c.Lock.Backend)
	}
	if c.Auth.Password != "" && c.Auth.Secret == "" {
		return errors.New("AUTH_SECRET is required when AUTH_PASSWORD is set")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.DSN == "" {
		return errors.New("RABBITMQ_DSN is required when RABBITMQ_ENABLED=true")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}

	return nil
}

// ValidateMailer checks the settings only the mail worker needs.
func (c *Config) ValidateMailer() error {
	if c.RabbitMQ.DSN == "" {
		return errors.New("RABBITMQ_DSN is required")
	}
	if c.Email.SMTP.Host == "" || c.Email.SMTP.Username == "" || c.Email.SMTP.Password == "" {
		return errors.New("EMAIL_SMTP_HOST, EMAIL_SMTP_USERNAME and EMAIL_SMTP_PASSWORD are required")
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
