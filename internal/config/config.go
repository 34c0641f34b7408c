// Package config предоставляет структуры и функцию для загрузки конфига сервиса.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек всех бинарников.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	CommissionFeePct        int    `yaml:"commission_fee_pct" env-default:"10"`
	HTTPServer              `yaml:"http_server"`
	AnalyzerConnection      `yaml:"analyzer_connection"`
	AuthConnection          `yaml:"auth_connection"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQConnection      `yaml:"rabbitmq_connection"`
	JWTToken                `yaml:"jwttoken"`
}

// HTTPServer структура для настройки HTTP-сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// AnalyzerConnection структура для подключения к сервису анализа профилей.
// DelayAnalyzer использует только мок-бинарник: имитация сетевой задержки.
type AnalyzerConnection struct {
	AddressAnalyzer string        `yaml:"addressanalyzer"`
	TimeoutAnalyzer time.Duration `yaml:"timeoutanalyzer"`
	DelayAnalyzer   time.Duration `yaml:"delayanalyzer" env-default:"900ms"`
}

// AuthConnection структура для подключения к auth-сервису.
type AuthConnection struct {
	AddressAuth string        `yaml:"addressauth"`
	TimeoutAuth time.Duration `yaml:"timeoutauth"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQConnection структура для подключения к брокеру рассылки.
type RabbitMQConnection struct {
	RabbitMQURL        string        `yaml:"rabbitmq_url"`
	RabbitMQMaxRetries int           `yaml:"rabbitmq_max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH, при ошибке завершает процесс.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
