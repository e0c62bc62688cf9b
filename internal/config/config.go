package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinJWTKeyLength はHS256署名鍵として受け付ける最小バイト長。
const MinJWTKeyLength = 32

// EnvDevelopment は開発環境を示すAPP_ENVの値。
const EnvDevelopment = "development"

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// JWT（Jwt:Issuer / Jwt:Audience / Jwt:Key）
	JWTIssuer   string
	JWTAudience string
	JWTKey      string
	TokenTTL    time.Duration

	// Environment
	AppEnv string

	// Server
	ServerPort    string
	HTTPSRedirect bool
	HTTPSPort     string
	// TrustProxyHeaders がtrueの場合のみX-Forwarded-For / X-Real-IPをクライアントIPとして扱う。
	// 信頼できるリバースプロキシ配下でのみ有効にすること。
	TrustProxyHeaders bool

	// Rate Limit（req/min）
	RateLimitGeneral int
	RateLimitLogin   int

	// Client shim
	ClientIsLocal bool

	// Logging
	LogLevel string
}

// IsDevelopment は開発環境で起動しているかを返す。
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// LoadDotEnv は指定された.envファイルを読み込み、未設定の環境変数のみを補完する。
// 既に設定されている環境変数は上書きしない。ファイルが存在しない場合は何もしない。
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合、または署名鍵が短すぎる場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTIssuer = os.Getenv("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		missing = append(missing, "JWT_ISSUER")
	}

	cfg.JWTAudience = os.Getenv("JWT_AUDIENCE")
	if cfg.JWTAudience == "" {
		missing = append(missing, "JWT_AUDIENCE")
	}

	cfg.JWTKey = os.Getenv("JWT_KEY")
	if cfg.JWTKey == "" {
		missing = append(missing, "JWT_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	if len(cfg.JWTKey) < MinJWTKeyLength {
		return nil, fmt.Errorf("JWT_KEY must be at least %d bytes, got %d", MinJWTKeyLength, len(cfg.JWTKey))
	}

	// Optional fields with defaults
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", 24*time.Hour)
	cfg.AppEnv = strings.ToLower(getEnvString("APP_ENV", "production"))
	cfg.ServerPort = getEnvString("SERVER_PORT", "7137")
	cfg.HTTPSRedirect = getEnvBool("HTTPS_REDIRECT", false)
	cfg.HTTPSPort = getEnvString("HTTPS_PORT", "")
	cfg.TrustProxyHeaders = getEnvBool("TRUST_PROXY_HEADERS", false)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitLogin = getEnvInt("RATE_LIMIT_LOGIN", 10)
	cfg.ClientIsLocal = getEnvBool("CLIENT_IS_LOCAL", false)
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.RateLimitGeneral <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_GENERAL must be positive, got %d", cfg.RateLimitGeneral)
	}
	if cfg.RateLimitLogin <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_LOGIN must be positive, got %d", cfg.RateLimitLogin)
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
