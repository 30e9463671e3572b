package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	IdentityServer struct {
		Port int `yaml:"port"`
	} `yaml:"identity_server"`
	Database struct {
		URL      string `yaml:"url"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Internal struct {
		Secret               string `yaml:"secret"`
		IdentityServiceURL   string `yaml:"identity_service_url"`
		PropertiesServiceURL string `yaml:"properties_service_url"`
		ClientTimeoutSeconds int    `yaml:"client_timeout_seconds"`
	} `yaml:"internal"`
	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	// Override with environment variables if set
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT value: %v", err)
		}
		cfg.Server.Port = portNum
	}
	if port := os.Getenv("IDENTITY_SERVER_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid IDENTITY_SERVER_PORT value: %v", err)
		}
		cfg.IdentityServer.Port = portNum
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT value: %v", err)
		}
		cfg.Database.Port = portNum
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}
	if sslmode := os.Getenv("DB_SSLMODE"); sslmode != "" {
		cfg.Database.SSLMode = sslmode
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		host, port, err := splitHostPort(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_ADDR value: %v", err)
		}
		cfg.Redis.Host = host
		cfg.Redis.Port = port
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		dbNum, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value: %v", err)
		}
		cfg.Redis.DB = dbNum
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if secret := os.Getenv("INTERNAL_API_SECRET"); secret != "" {
		cfg.Internal.Secret = secret
	}
	if url := os.Getenv("IDENTITY_SERVICE_URL"); url != "" {
		cfg.Internal.IdentityServiceURL = url
	}
	if url := os.Getenv("PROPERTIES_SERVICE_URL"); url != "" {
		cfg.Internal.PropertiesServiceURL = url
	}
	if timeout := os.Getenv("CLIENT_TIMEOUT_SECONDS"); timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid CLIENT_TIMEOUT_SECONDS value: %v", err)
		}
		cfg.Internal.ClientTimeoutSeconds = seconds
	}
	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		rpsNum, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS value: %v", err)
		}
		cfg.RateLimit.RequestsPerSecond = rpsNum
	}
	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		burstNum, err := strconv.Atoi(burst)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST value: %v", err)
		}
		cfg.RateLimit.Burst = burstNum
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	// Set default values
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.IdentityServer.Port == 0 {
		cfg.IdentityServer.Port = 8081
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	if cfg.Internal.IdentityServiceURL == "" {
		cfg.Internal.IdentityServiceURL = fmt.Sprintf("http://localhost:%d", cfg.IdentityServer.Port)
	}
	if cfg.Internal.PropertiesServiceURL == "" {
		cfg.Internal.PropertiesServiceURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.Internal.ClientTimeoutSeconds == 0 {
		cfg.Internal.ClientTimeoutSeconds = 5
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 100 / 60.0
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}

	// Validation
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("server port must be between 1 and 65535")
	}
	if cfg.IdentityServer.Port <= 0 || cfg.IdentityServer.Port > 65535 {
		return nil, fmt.Errorf("identity server port must be between 1 and 65535")
	}
	if cfg.Database.URL == "" && cfg.Database.Name == "" {
		return nil, fmt.Errorf("DB_NAME or DATABASE_URL is required")
	}
	if cfg.Internal.Secret == "" {
		return nil, fmt.Errorf("INTERNAL_API_SECRET is required")
	}
	if cfg.Internal.ClientTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("CLIENT_TIMEOUT_SECONDS must be positive")
	}
	if !strings.HasPrefix(cfg.Internal.IdentityServiceURL, "http://") && !strings.HasPrefix(cfg.Internal.IdentityServiceURL, "https://") {
		return nil, fmt.Errorf("IDENTITY_SERVICE_URL must be an http(s) URL")
	}
	if !strings.HasPrefix(cfg.Internal.PropertiesServiceURL, "http://") && !strings.HasPrefix(cfg.Internal.PropertiesServiceURL, "https://") {
		return nil, fmt.Errorf("PROPERTIES_SERVICE_URL must be an http(s) URL")
	}

	return &cfg, nil
}

// DSN for the Postgres connection. DATABASE_URL wins over the discrete parts.
func (c *Config) DatabaseDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// Redis address in host:port form.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Timeout for cross-service HTTP calls.
func (c *Config) ClientTimeout() time.Duration {
	return time.Duration(c.Internal.ClientTimeoutSeconds) * time.Second
}

// TTL for issued session tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitHostPort(addr string) (string, int, error) {
	idx := strings.LastIndex(addr, ":")
	if idx < 0 {
		return "", 0, fmt.Errorf("missing port in %q", addr)
	}
	port, err := strconv.Atoi(addr[idx+1:])
	if err != nil {
		return "", 0, err
	}
	return addr[:idx], port, nil
}
