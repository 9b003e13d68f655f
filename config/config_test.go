package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded when no env vars are set.
func TestLoadConfig_Defaults(t *testing.T) {
	// Clear relevant env vars to ensure defaults are used
	for _, k := range []string{
		"SERVER_PORT", "BCU_ENDPOINT", "BCU_MTLS_ENABLED",
		"BCU_CLIENT_CERT", "BCU_CLIENT_KEY", "BCU_KEY_PASSWORD", "BCU_CA_CERT",
		"BCU_CONNECT_TIMEOUT_MS", "BCU_READ_TIMEOUT_MS", "GATEWAY_VERSION",
	} {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.BCU.Endpoint != "https://webservices.bcu.gub.uy/ArbitrajeServicio/AWArbitrajes.svc" {
		t.Fatalf("unexpected default endpoint: %q", AppConfig.BCU.Endpoint)
	}
	if AppConfig.BCU.MTLSEnabled {
		t.Fatalf("mutual TLS must be an explicit opt-in, got enabled by default")
	}
	if AppConfig.BCU.ConnectTimeout != 10*time.Second || AppConfig.BCU.ReadTimeout != 30*time.Second {
		t.Fatalf("unexpected default timeouts: %+v", AppConfig.BCU)
	}
	if AppConfig.Gateway.Version != "1.0" {
		t.Fatalf("unexpected default version: %q", AppConfig.Gateway.Version)
	}
}

// TestLoadConfig_EnvOverride verifies that environment variables take precedence.
func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BCU_ENDPOINT", "https://stub.example/soap")
	t.Setenv("BCU_READ_TIMEOUT_MS", "5000")

	LoadConfig()

	if AppConfig.Server.Port != "9090" {
		t.Fatalf("expected SERVER_PORT=9090, got %q", AppConfig.Server.Port)
	}
	if AppConfig.BCU.Endpoint != "https://stub.example/soap" {
		t.Fatalf("unexpected endpoint: %q", AppConfig.BCU.Endpoint)
	}
	if AppConfig.BCU.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected read timeout: %v", AppConfig.BCU.ReadTimeout)
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		// In child process: set empty AppConfig and call validateConfig() to trigger log.Fatalf (os.Exit)
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}

// TestValidateConfig_MTLSRequiresMaterial asserts that enabling mutual TLS without
// the PEM paths is fatal (subprocess idiom, same as above).
func TestValidateConfig_MTLSRequiresMaterial(t *testing.T) {
	if os.Getenv("RUN_MTLS_FATAL") == "1" {
		AppConfig = Config{
			Server: ServerConfig{Port: "8080"},
			BCU: BCUConfig{
				Endpoint:       "https://stub.example/soap",
				MTLSEnabled:    true,
				ConnectTimeout: time.Second,
				ReadTimeout:    time.Second,
			},
		}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_MTLSRequiresMaterial")
	cmd.Env = append(os.Environ(), "RUN_MTLS_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
