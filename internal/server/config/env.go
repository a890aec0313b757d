package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// parseEnv overlays process environment variables.
//
//	PORT                    HTTP port (bind address becomes ":" + PORT)
//	DATABASE_DSN, MONGO_URI store connection string (DATABASE_DSN wins)
//	DATABASE_NAME           MongoDB database name
//	JWT_SECRET              token signing secret
//	TOKEN_VALIDITY          token lifetime, e.g. "1h"; a bare number is minutes
//	LOG_LEVEL               debug, info, warn, error
//	CORS_ALLOWED_ORIGINS    comma separated origins
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION,
//	S3_BASE_ENDPOINT, S3_PUBLIC_BASE_URL
func parseEnv(config *Config) {
	v := viper.New()
	v.AutomaticEnv()

	if v.IsSet("PORT") {
		config.EndpointAddrHTTP = ":" + v.GetString("PORT")
	}

	switch {
	case v.IsSet("DATABASE_DSN"):
		config.DatabaseDSN = v.GetString("DATABASE_DSN")
	case v.IsSet("MONGO_URI"):
		config.DatabaseDSN = v.GetString("MONGO_URI")
	}

	envString(v, "DATABASE_NAME", &config.DatabaseName)
	envString(v, "JWT_SECRET", &config.SecretKey)
	envString(v, "LOG_LEVEL", &config.LogLevel)

	if v.IsSet("TOKEN_VALIDITY") {
		if d, ok := parseValidity(v.GetString("TOKEN_VALIDITY")); ok {
			config.TokenValidityDuration = d
		}
	}

	if v.IsSet("CORS_ALLOWED_ORIGINS") {
		config.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	}

	envString(v, "S3_ROOT_USER", &config.S3RootUser)
	envString(v, "S3_ROOT_PASSWORD", &config.S3RootPassword)
	envString(v, "S3_BUCKET", &config.S3Bucket)
	envString(v, "S3_REGION", &config.S3Region)
	envString(v, "S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	envString(v, "S3_PUBLIC_BASE_URL", &config.S3PublicBaseURL)
}

// parseValidity reads a Go duration ("90m", "2h"). A bare integer is taken
// as minutes, the same unit as the -t flag. Non-positive values are ignored.
func parseValidity(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Minute, n > 0
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func envString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
