package app

import (
	"time"

	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/envutil"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func LoadConfig() Config {
	return Config{
		Port:            envutil.String("PORT", "8080"),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  envutil.Duration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: envutil.Duration("REFRESH_TOKEN_TTL", 24*time.Hour),
	}
}
