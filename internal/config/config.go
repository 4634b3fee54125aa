package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DriverMongo    = "mongodb"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultJWTSecret = "change-me"
)

type Config struct {
	AppEnv            string        `env:"APP_ENV" envDefault:"development"`
	AppPort           string        `env:"APP_PORT" envDefault:"8080"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	TranslationFolder string        `env:"TRANSLATION_FOLDER" envDefault:"pkg/translator/translation"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	TrustedProxiesRaw string        `env:"TRUSTED_PROXIES"`
	TrustedProxies    []string

	Database Database `envPrefix:"DATABASE_"`
	MySQL    MySQL    `envPrefix:"MYSQL_"`
	JWT      JWT      `envPrefix:"JWT_"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

type Database struct {
	Driver         string        `env:"DRIVER" envDefault:"mongodb"`
	URL            string        `env:"URL"`
	Name           string        `env:"NAME" envDefault:"task_manager"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

// MySQL is used to build a DSN when DATABASE_URL is empty and the driver is mysql.
type MySQL struct {
	Host     string `env:"HOST" envDefault:"db"`
	Port     string `env:"PORT" envDefault:"3306"`
	User     string `env:"USER" envDefault:"taskmanager"`
	Password string `env:"PASSWORD" envDefault:"taskmanager"`
	Database string `env:"DATABASE" envDefault:"taskmanager"`
	Params   string `env:"PARAMS" envDefault:"parseTime=true&multiStatements=true"`
}

type JWT struct {
	Secret    string `env:"SECRET" envDefault:"change-me"`
	ExpiresIn int64  `env:"EXPIRES_IN" envDefault:"604800"`
	Issuer    string `env:"ISSUER" envDefault:"taskmanager"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.TrustedProxies = parseTrustedProxies(cfg.TrustedProxiesRaw)
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.AppEnv {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("unsupported APP_ENV %q", c.AppEnv))
	}

	switch c.Database.Driver {
	case DriverMongo, DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for driver %q", c.Database.Driver))
		}
	case DriverMySQL, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}

	if c.JWT.ExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpiresIn) * time.Second
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	switch c.Database.Driver {
	case DriverMySQL:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?%s",
			c.MySQL.User,
			c.MySQL.Password,
			c.MySQL.Host,
			c.MySQL.Port,
			c.MySQL.Database,
			c.MySQL.Params,
		)
	case DriverSQLite:
		return "var/taskmanager.db"
	}

	return ""
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
