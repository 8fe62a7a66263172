package config

import (
	"flag"
	"os"
	"time"

	"github.com/datamind-io/authcore/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, seconds
//	-r string   redis URL for the session cache
//	-k string   encryption key for attached data-source passwords
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-r", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "secret key")

	tokenTTLSeconds := fs.Int("t", int(config.TokenTTL.Seconds()), "token validity (in seconds)")

	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL for the session cache")
	fs.StringVar(&config.EncryptionKey, "k", config.EncryptionKey, "encryption key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenTTL = time.Duration(*tokenTTLSeconds) * time.Second
}
