package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Redis   RedisConfig
	NATS    NATSConfig
	Auth    AuthConfig
	Admin   AdminConfig
	Coupons CouponConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreConfig selects the backing store. An empty DatabaseURL keeps all
// state in process memory, which is the reference deployment for a single
// shop's app session.
type StoreConfig struct {
	DatabaseURL string
	MaxConns    int
	MinConns    int
	MaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type NATSConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
	GuestFlowTTL   time.Duration
	AdminTokenTTL  time.Duration
}

// AdminConfig holds the shared back-office credential. It gates the owner
// dashboard only; it is not a security boundary.
type AdminConfig struct {
	Password string
}

type CouponConfig struct {
	WelcomeAmount  int64
	ReferralAmount int64
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Store: StoreConfig{
			DatabaseURL: getEnv("DATABASE_URL", ""),
			MaxConns:    getInt("DB_MAX_CONNS", 10),
			MinConns:    getInt("DB_MIN_CONNS", 1),
			MaxLifetime: getDuration("DB_MAX_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "dev-only-secret-change-in-prod"),
			AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
			GuestFlowTTL:   getDuration("GUEST_FLOW_TTL", 30*time.Minute),
			AdminTokenTTL:  getDuration("ADMIN_TOKEN_TTL", 2*time.Hour),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PASSWORD", "1234"),
		},
		Coupons: CouponConfig{
			WelcomeAmount:  int64(getInt("COUPON_WELCOME_AMOUNT", 5000)),
			ReferralAmount: int64(getInt("COUPON_REFERRAL_AMOUNT", 4000)),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
