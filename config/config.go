package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings and the BCU upstream channel.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	BCU_ENDPOINT=https://webservices.bcu.gub.uy/ArbitrajeServicio/AWArbitrajes.svc
//	BCU_MTLS_ENABLED=true
//	BCU_CLIENT_CERT=/etc/bcu/client.crt
//	BCU_CLIENT_KEY=/etc/bcu/client.key
//	BCU_KEY_PASSWORD=secret
//	BCU_CA_CERT=/etc/bcu/ca.crt
//	BCU_CONNECT_TIMEOUT_MS=10000
//	BCU_READ_TIMEOUT_MS=30000
//	GATEWAY_VERSION=1.0
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	BCU     BCUConfig     // Upstream BCU SOAP channel settings
	Gateway GatewayConfig // Gateway-level settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// BCUConfig defines the upstream SOAP channel.
//
// Fields:
//   - Endpoint: BCU service URL.
//   - MTLSEnabled: whether the channel uses mutual TLS. When false the
//     channel runs in the insecure development mode and logs a loud warning.
//   - ClientCert, ClientKey, KeyPassword, CACert: PEM material for mutual TLS.
//   - ConnectTimeout, ReadTimeout: dial and full-response deadlines.
type BCUConfig struct {
	Endpoint       string
	MTLSEnabled    bool
	ClientCert     string
	ClientKey      string
	KeyPassword    string
	CACert         string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// GatewayConfig holds gateway-level settings surfaced in response metadata.
type GatewayConfig struct {
	Version string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all fields with a safe default.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("BCU_ENDPOINT", "https://webservices.bcu.gub.uy/ArbitrajeServicio/AWArbitrajes.svc")
	viper.SetDefault("BCU_MTLS_ENABLED", false)
	viper.SetDefault("BCU_CLIENT_CERT", "")
	viper.SetDefault("BCU_CLIENT_KEY", "")
	viper.SetDefault("BCU_KEY_PASSWORD", "")
	viper.SetDefault("BCU_CA_CERT", "")
	viper.SetDefault("BCU_CONNECT_TIMEOUT_MS", 10000)
	viper.SetDefault("BCU_READ_TIMEOUT_MS", 30000)

	viper.SetDefault("GATEWAY_VERSION", "1.0")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		BCU: BCUConfig{
			Endpoint:       viper.GetString("BCU_ENDPOINT"),
			MTLSEnabled:    viper.GetBool("BCU_MTLS_ENABLED"),
			ClientCert:     viper.GetString("BCU_CLIENT_CERT"),
			ClientKey:      viper.GetString("BCU_CLIENT_KEY"),
			KeyPassword:    viper.GetString("BCU_KEY_PASSWORD"),
			CACert:         viper.GetString("BCU_CA_CERT"),
			ConnectTimeout: time.Duration(viper.GetInt("BCU_CONNECT_TIMEOUT_MS")) * time.Millisecond,
			ReadTimeout:    time.Duration(viper.GetInt("BCU_READ_TIMEOUT_MS")) * time.Millisecond,
		},
		Gateway: GatewayConfig{
			Version: viper.GetString("GATEWAY_VERSION"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Mutual TLS requires the certificate, key and trust anchor paths.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.BCU.Endpoint == "" {
		missing = append(missing, "BCU_ENDPOINT")
	}
	if AppConfig.BCU.ConnectTimeout <= 0 {
		missing = append(missing, "BCU_CONNECT_TIMEOUT_MS")
	}
	if AppConfig.BCU.ReadTimeout <= 0 {
		missing = append(missing, "BCU_READ_TIMEOUT_MS")
	}
	if AppConfig.BCU.MTLSEnabled {
		if AppConfig.BCU.ClientCert == "" {
			missing = append(missing, "BCU_CLIENT_CERT")
		}
		if AppConfig.BCU.ClientKey == "" {
			missing = append(missing, "BCU_CLIENT_KEY")
		}
		if AppConfig.BCU.CACert == "" {
			missing = append(missing, "BCU_CA_CERT")
		}
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
