// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the BazaarBuddy API server. A Config is
// built once at start-up and not modified afterwards.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: store connection string; postgres:// selects PostgreSQL,
//     mongodb:// or mongodb+srv:// selects MongoDB, memory:// keeps data in
//     process. Required.
//   - DatabaseName: MongoDB database name (ignored by PostgreSQL).
//   - SecretKey: HMAC secret for signing access tokens (HS256). Required.
//   - TokenValidityDuration: access token lifetime.
//   - LogLevel: debug, info, warn or error.
//   - CORSAllowedOrigins: origins the browser client may call from.
//   - S3*: object storage for product images. Uploads are disabled when
//     S3Bucket is empty.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	DatabaseName          string
	SecretKey             string
	TokenValidityDuration time.Duration
	LogLevel              string
	CORSAllowedOrigins    []string
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
	S3PublicBaseURL       string
}

var (
	ErrNoDatabaseDSN = errors.New("database DSN is not set")
	ErrNoSecretKey   = errors.New("secret key is not set")
)

// LoadDefaults populates Config with development defaults. There is no
// default DSN or secret on purpose.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.DatabaseName = "bazaarbuddy"
	c.TokenValidityDuration = time.Hour
	c.LogLevel = "info"
	c.CORSAllowedOrigins = []string{"*"}
	c.S3Region = "us-east-1"
}

// Validate reports settings the server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseDSN == "" {
		errs = append(errs, ErrNoDatabaseDSN)
	}
	if c.SecretKey == "" {
		errs = append(errs, ErrNoSecretKey)
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags
// found in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
