package structs

import "time"

type Config struct {
	Server     *ServerConfig
	Cors       *CorsConfig
	Database   *DatabaseConfig
	Auth       *AuthConfig
	Cache      *CacheConfig
	RateLimit  *RateLimitConfig
	Email      *EmailConfig
	Encryption *EncryptionConfig
}

type ServerConfig struct {
	AppName        string        // Burnshop
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
	CookieDomain   string        // empty means host-only cookies
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Driver       string // postgres or sqlite
	DSN          string // only used by sqlite
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CreateSchema bool
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
}

type CacheConfig struct {
	Enabled         bool
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	GeneralLimit  int
	GeneralWindow time.Duration
	AuthLimit     int
	AuthWindow    time.Duration
	AdminLimit    int
	AdminWindow   time.Duration
	SearchLimit   int
	SearchWindow  time.Duration
}

type EmailConfig struct {
	ApiKey string // empty disables outgoing mail
	From   string
}

type EncryptionConfig struct {
	Key string // 32 bytes, AES-256
}
