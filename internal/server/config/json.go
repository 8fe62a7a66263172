package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/datamind-io/authcore/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. Token lifetime is expressed in whole seconds, matching the
// environment surface (AUTH_JWT_EXP_SECONDS).
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	DatabaseDSN      string `json:"database_dsn"`
	JWTSecret        string `json:"jwt_secret"`
	TokenTTLSeconds  int    `json:"token_ttl_seconds"`
	RedisURL         string `json:"redis_url"`
	EncryptionKey    string `json:"encryption_key"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. Unreadable or invalid
// files panic, config errors at startup are not recoverable.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.JWTSecret != "" {
		config.JWTSecret = c.JWTSecret
	}
	if c.TokenTTLSeconds > 0 {
		config.TokenTTL = time.Duration(c.TokenTTLSeconds) * time.Second
	}
	if c.RedisURL != "" {
		config.RedisURL = c.RedisURL
	}
	if c.EncryptionKey != "" {
		config.EncryptionKey = c.EncryptionKey
	}
}
