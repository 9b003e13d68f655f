package app

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/enlamano/bcugateway/config"
	"github.com/enlamano/bcugateway/internal/api"
	"github.com/enlamano/bcugateway/internal/metrics"
	"github.com/enlamano/bcugateway/internal/service"
	"github.com/enlamano/bcugateway/internal/soap"
)

// clientOpener builds the SOAP client from configuration.
// Indirection for unit testing.
var clientOpener = func(cfg config.Config) (*soap.Client, error) {
	return soap.NewClient(soap.Options{
		Endpoint:       cfg.BCU.Endpoint,
		Mode:           channelMode(cfg.BCU),
		ConnectTimeout: cfg.BCU.ConnectTimeout,
		ReadTimeout:    cfg.BCU.ReadTimeout,
	})
}

// channelMode maps the BCU configuration onto a channel variant. Mutual TLS
// is an explicit opt-in; everything else is the insecure development mode.
func channelMode(cfg config.BCUConfig) soap.ChannelMode {
	if cfg.MTLSEnabled {
		return soap.MutualTLS{
			CertFile:    cfg.ClientCert,
			KeyFile:     cfg.ClientKey,
			KeyPassword: cfg.KeyPassword,
			CAFile:      cfg.CACert,
		}
	}
	return soap.Insecure{}
}

// Prometheus instruments register on the default registry; guard against
// double registration when InitializeApp runs more than once in tests.
var (
	metricsOnce sync.Once
	appMetrics  *metrics.Metrics
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the BCU SOAP client over the configured channel (mTLS or insecure).
//   - Initializes the bridge service layer (business logic).
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (SOAP client).
//
// A ChannelConfigurationError here is returned as-is; the caller treats it
// as fatal since the gateway cannot reach the BCU without a valid channel.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Build the SOAP client (fails fast on channel misconfiguration)
	client, err := clientOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize BCU client: %w", err)
	}

	// Initialize service layer (business logic)
	svc := service.NewBridgeService(client)

	metricsOnce.Do(func() { appMetrics = metrics.NewMetrics() })

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, cfg.Gateway.Version, appMetrics)

	// Setup Gin router with routes
	router := api.NewRouter(handler, appMetrics)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(client.Probe)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		client.Close()
	}

	return router, cleanup, nil
}
