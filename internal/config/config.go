package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl      string
	JWTSecret  string
	ServerPort string
	GoEnv      string
	Timezone   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSOrigins         []string
	WhatsAppNumber      string
	BootstrapAdminEmail string
	CheckEmailDomain    bool
	RateLimitPerMinute  int

	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSS3Endpoint      string

	MercadoPagoToken string
	PublicBaseURL    string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

// Load reads .env.<GO_ENV> (falling back to .env) and then the process
// environment. The returned error is fatal for the caller.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file found, using system environment variables")
		}
	} else {
		log.Printf("loaded configuration from %s", envFile)
	}

	cfg := &Config{
		DBUrl:      os.Getenv("DATABASE_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GoEnv:      getEnv("GO_ENV", "development"),
		Timezone:   getEnv("APP_TIMEZONE", "America/Bogota"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		WhatsAppNumber:      getEnv("WHATSAPP_NUMBER", ""),
		BootstrapAdminEmail: strings.ToLower(strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_EMAIL"))),
		CheckEmailDomain:    getEnv("CHECK_EMAIL_DOMAIN", "true") == "true",
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 20),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        os.Getenv("AWS_S3_BUCKET"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSS3Endpoint:      os.Getenv("AWS_S3_ENDPOINT"),

		MercadoPagoToken: os.Getenv("MP_ACCESS_TOKEN"),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", "http://localhost:5173"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the two values without which the data store cannot be
// reached or sessions cannot be signed.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DBUrl) == "" {
		errs = append(errs, ErrMissingDatabaseURL)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func (c *Config) StorageEnabled() bool {
	return c.AWSS3Bucket != ""
}

func (c *Config) PaymentsEnabled() bool {
	return c.MercadoPagoToken != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
