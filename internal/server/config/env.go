package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration from environment variables. Variable names
// follow the platform's existing deployment surface:
//
//	AUTH_HTTP_ADDR        HTTP bind address
//	AUTH_DB_URL           PostgreSQL DSN
//	AUTH_JWT_SECRET       token signing secret
//	AUTH_JWT_EXP_SECONDS  token lifetime in seconds
//	REDIS_URL             session cache address (absent = in-memory backend)
//	APP_ENCRYPTION_KEY    secret cipher key (absent = plaintext fallback)
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("AUTH_HTTP_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("AUTH_DB_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("AUTH_JWT_SECRET"); ok {
		config.JWTSecret = v
	}
	if v, ok := os.LookupEnv("AUTH_JWT_EXP_SECONDS"); ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			config.TokenTTL = time.Duration(secs) * time.Second
		}
	}
	if v, ok := os.LookupEnv("REDIS_URL"); ok {
		config.RedisURL = v
	}
	if v, ok := os.LookupEnv("APP_ENCRYPTION_KEY"); ok {
		config.EncryptionKey = v
	}
}
