package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App      App      `yaml:"app"`
	HTTP     HTTP     `yaml:"http"`
	Log      Log      `yaml:"log"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Kafka    Kafka    `yaml:"kafka"`
	Auth     Auth     `yaml:"auth"`
	Verify   Verify   `yaml:"verify"`
}

type App struct {
	Name    string `yaml:"name" env:"APP_NAME" env-default:"posylka-api"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

type HTTP struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"user"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"password"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB" env-default:"posylka_db"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"notification-events"`
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"notifier-group-1"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

type Verify struct {
	CodeTTL       time.Duration `yaml:"code_ttl" env:"VERIFY_CODE_TTL" env-default:"5m"`
	SMSBaseURL    string        `yaml:"sms_base_url" env:"SMS_BASE_URL"`
	SMSAccountSID string        `yaml:"sms_account_sid" env:"SMS_ACCOUNT_SID"`
	SMSAuthToken  string        `yaml:"sms_auth_token" env:"SMS_AUTH_TOKEN"`
	SMSFrom       string        `yaml:"sms_from" env:"SMS_FROM"`
}

// Configured reports whether a real SMS gateway is set up; otherwise the
// services fall back to the logging sender.
func (v Verify) Configured() bool {
	return v.SMSBaseURL != "" && v.SMSAccountSID != "" && v.SMSAuthToken != ""
}

func New() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		// fallback to env vars if file not found
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else {
		// Allow env vars to override config file
		cleanenv.ReadEnv(cfg)
	}

	return cfg, nil
}
