package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Env           string         `yaml:"env"`
	Addr          string         `yaml:"addr"`
	JWTSecret     string         `yaml:"jwt_secret"`
	APITimeout    time.Duration  `yaml:"timeout"`
	TokenDuration time.Duration  `yaml:"token_duration"`
	Database      DatabaseConfig `yaml:"database"`
	Storage       StorageConfig  `yaml:"storage"`
	Admin         AdminConfig    `yaml:"admin"`
	Client        ClientConfig   `yaml:"client"`
}

// DatabaseConfig selects the document store. Driver is "sqlite" or "postgres".
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type StorageConfig struct {
	Dir            string `yaml:"dir"`
	BaseURL        string `yaml:"base_url"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// AdminConfig holds the single back-office account. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// ClientConfig is what the admin tooling needs to reach a running server.
type ClientConfig struct {
	APIURL   string        `yaml:"api_url"`
	AdminURL string        `yaml:"admin_url"`
	ImageURL string        `yaml:"image_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Token    string        `yaml:"token"`
}

// LoadConfig builds the configuration from defaults, the environment (a .env
// file is loaded when present) and finally the optional YAML file at path.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:           getEnv("PORTFOLIO_ENV", "development"),
		Addr:          getEnv("PORTFOLIO_ADDR", ":8080"),
		JWTSecret:     getEnv("PORTFOLIO_JWT_SECRET", insecureJWTSecret),
		APITimeout:    getEnvDuration("PORTFOLIO_TIMEOUT", 15*time.Second),
		TokenDuration: getEnvDuration("PORTFOLIO_TOKEN_DURATION", 24*time.Hour),
		Database: DatabaseConfig{
			Driver:   getEnv("PORTFOLIO_DATABASE_DRIVER", "sqlite"),
			Path:     getEnv("PORTFOLIO_DATABASE_PATH", "portfolio.db"),
			URL:      getEnv("PORTFOLIO_DATABASE_URL", ""),
			MaxConns: int32(getEnvInt("PORTFOLIO_DATABASE_MAX_CONNS", 10)),
		},
		Storage: StorageConfig{
			Dir:            getEnv("PORTFOLIO_UPLOAD_DIR", "./uploads"),
			BaseURL:        getEnv("PORTFOLIO_UPLOAD_BASE_URL", "/uploads"),
			MaxUploadBytes: int64(getEnvInt("PORTFOLIO_MAX_UPLOAD_BYTES", 10<<20)),
		},
		Admin: AdminConfig{
			Username:     getEnv("PORTFOLIO_ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("PORTFOLIO_ADMIN_PASSWORD_HASH", ""),
		},
		Client: ClientConfig{
			APIURL:   getEnv("PORTFOLIO_API_URL", "http://localhost:8080/api"),
			AdminURL: getEnv("PORTFOLIO_ADMIN_URL", "http://localhost:8080/admin"),
			ImageURL: getEnv("PORTFOLIO_IMAGE_URL", "http://localhost:8080/uploads"),
			Timeout:  getEnvDuration("PORTFOLIO_CLIENT_TIMEOUT", 30*time.Second),
			Token:    getEnv("PORTFOLIO_TOKEN", ""),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// IsDevelopment reports whether insecure defaults are tolerated.
func (c *Config) IsDevelopment() bool {
	env := c.Env
	if v := os.Getenv("PORTFOLIO_ENV"); v != "" {
		env = v
	}
	return env == "development"
}

// Validate checks the server side settings.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.JWTSecret == insecureJWTSecret && !c.IsDevelopment() {
		return errors.New("jwt_secret uses the insecure default outside development")
	}
	if c.TokenDuration <= 0 {
		return errors.New("token_duration must be positive")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("database.url is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Storage.Dir == "" {
		return errors.New("storage.dir is required")
	}
	if c.Admin.Username == "" || c.Admin.PasswordHash == "" {
		return errors.New("admin.username and admin.password_hash are required")
	}
	return nil
}

// Validate checks that the client endpoints are absolute URLs.
func (c ClientConfig) Validate() error {
	for name, v := range map[string]string{"api_url": c.APIURL, "admin_url": c.AdminURL, "image_url": c.ImageURL} {
		if _, err := url.ParseRequestURI(v); err != nil {
			return fmt.Errorf("client.%s: %w", name, err)
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return def
}
