package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v8"
)

type Server struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"3000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Firebase struct {
	Type                    string        `env:"FIREBASE_TYPE,required" json:"type"`
	ProjectId               string        `env:"FIREBASE_PROJECT_ID,required" json:"project_id"`
	PrivateKeyId            string        `env:"FIREBASE_PRIVATE_KEY_ID,required" json:"private_key_id"`
	PrivateKey              string        `env:"FIREBASE_PRIVATE_KEY,required" json:"private_key"`
	ClientEmail             string        `env:"FIREBASE_CLIENT_EMAIL,required" json:"client_email"`
	ClientId                string        `env:"FIREBASE_CLIENT_ID,required" json:"client_id"`
	AuthUri                 string        `env:"FIREBASE_AUTH_URI,required" json:"auth_uri"`
	TokenUri                string        `env:"FIREBASE_TOKEN_URI,required" json:"token_uri"`
	AuthProviderX509CertUrl string        `env:"FIREBASE_AUTH_PROVIDER_X509_CERT_URL,required" json:"auth_provider_x509_cert_url"`
	ClientX509CertUrl       string        `env:"FIREBASE_CLIENT_X509_CERT_URL,required" json:"client_x509_cert_url"`
	ApiKey                  string        `env:"FIREBASE_API_KEY" json:"-"`
	StorageBucket           string        `env:"FIREBASE_STORAGE_BUCKET" json:"-"`
	WriteTimeoutSecond      time.Duration `env:"FIREBASE_WRITE_TIMEOUT_SECOND" json:"-"`
}

type AIService struct {
	BaseUrl     string        `env:"AI_SERVICE_URL" envDefault:"http://localhost:8000"`
	ChatTimeout time.Duration `env:"AI_CHAT_TIMEOUT" envDefault:"30s"`
	// service | gpt
	ChatProvider string `env:"CHAT_PROVIDER" envDefault:"service"`
}

type GPT struct {
	ApiKey             string `env:"GPT_API_KEY"`
	ApiUrl             string `env:"GPT_API_URL" envDefault:"https://api.gilas.io/v1/chat/completions"`
	Model              string `env:"GPT_MODEL" envDefault:"gpt-3.5-turbo"`
	HistoryTokenBudget int    `env:"GPT_HISTORY_TOKEN_BUDGET" envDefault:"1500"`
}

type GoogleMaps struct {
	ApiKey  string `env:"GOOGLE_MAPS_API_KEY"`
	Radius  int    `env:"PLACES_RADIUS_METERS" envDefault:"5000"`
	Keyword string `env:"PLACES_KEYWORD" envDefault:"counseling"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Journal struct {
	Timezone       string `env:"JOURNAL_TIMEZONE" envDefault:"Asia/Seoul"`
	RewardInterval int    `env:"REWARD_STREAK_INTERVAL" envDefault:"3"`
	location       *time.Location
}

// Location is the day boundary used for streaks and date queries.
func (j Journal) Location() *time.Location {
	if j.location == nil {
		return time.UTC
	}
	return j.location
}

type RateLimit struct {
	RequestsPerSecond int `env:"RATE_LIMIT_RPS" envDefault:"10"`
	Burst             int `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

type Config struct {
	Server
	Firebase
	AIService
	GPT
	GoogleMaps
	Redis
	Journal
	RateLimit
	Log
}

func LoadConfigOrPanic() Config {
	config, err := Load()
	if err != nil {
		panic(err)
	}
	return config
}

func Load() (Config, error) {
	var config *Config = new(Config)
	if err := env.Parse(config); err != nil {
		return Config{}, err
	}

	if err := config.normalize(); err != nil {
		return Config{}, err
	}
	return *config, nil
}

func (c *Config) normalize() error {

	decodedBytes, err := base64.StdEncoding.DecodeString(c.Firebase.PrivateKey)
	if err != nil {
		return fmt.Errorf("decode firebase private key: %w", err)
	}
	c.Firebase.PrivateKey = string(decodedBytes)
	c.Firebase.PrivateKey = strings.ReplaceAll(c.Firebase.PrivateKey, "\\n", "\n")

	if c.WriteTimeoutSecond == 0 {
		c.WriteTimeoutSecond = time.Second * 30
	}

	if c.StorageBucket == "" {
		c.StorageBucket = fmt.Sprintf("%s.appspot.com", c.ProjectId)
	}

	if c.RewardInterval <= 0 {
		c.RewardInterval = 3
	}

	if c.ChatProvider != "service" && c.ChatProvider != "gpt" {
		return fmt.Errorf("unknown CHAT_PROVIDER %q", c.ChatProvider)
	}
	if c.ChatProvider == "gpt" && c.GPT.ApiKey == "" {
		return fmt.Errorf("GPT_API_KEY is required when CHAT_PROVIDER=gpt")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load journal timezone %q: %w", c.Timezone, err)
	}
	c.Journal.location = loc

	return nil
}
