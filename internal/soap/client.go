package soap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/enlamano/bcugateway/internal/domain/errs"
	"github.com/enlamano/bcugateway/internal/domain/model"
	"github.com/enlamano/bcugateway/internal/logger"
)

// DefaultEndpoint is the production BCU arbitrage service endpoint.
const DefaultEndpoint = "https://webservices.bcu.gub.uy/ArbitrajeServicio/AWArbitrajes.svc"

// Default channel timeouts: a single upstream attempt per inbound request,
// bounded by these two limits. No retries.
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 30 * time.Second
)

const fechaConsultaLayout = "2006-01-02 15:04:05"

// Options configures a Client.
type Options struct {
	// Endpoint overrides the upstream URL; empty means DefaultEndpoint.
	Endpoint string
	// Mode selects the channel-configuration variant (MutualTLS or Insecure).
	Mode ChannelMode
	// ConnectTimeout bounds TCP connect plus TLS handshake (default 10s).
	ConnectTimeout time.Duration
	// ReadTimeout bounds the whole exchange including the response (default 30s).
	ReadTimeout time.Duration
}

// Client is the SOAP adapter for the BCU arbitrage service.
//
// A single Client is shared by all inbound requests: the channel
// configuration is immutable after construction and the underlying
// http.Client is safe for concurrent use, so no per-request instantiation or
// checkout pool is needed. Construction fails fast with
// ChannelConfigurationError when the TLS material cannot be loaded.
type Client struct {
	endpoint string
	mode     ChannelMode
	httpc    *http.Client
	now      func() time.Time // injectable clock for tests
}

// NewClient builds the adapter and its TLS channel.
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Mode == nil {
		return nil, errs.New(errs.KindChannelConfiguration,
			"Modo de canal TLS no configurado. Configure mTLS o el modo inseguro explícitamente.")
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}

	tlsCfg, err := buildTLSConfig(opts.Mode)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectTimeout,
		}).DialContext,
		TLSClientConfig:     tlsCfg,
		TLSHandshakeTimeout: opts.ConnectTimeout,
		MaxIdleConns:        10,
		IdleConnTimeout:     60 * time.Second,
	}

	_, mutual := opts.Mode.(MutualTLS)
	logger.L().Info().
		Str("endpoint", opts.Endpoint).
		Bool("mtls", mutual).
		Msg("cliente SOAP BCU inicializado")

	return &Client{
		endpoint: opts.Endpoint,
		mode:     opts.Mode,
		httpc: &http.Client{
			Transport: transport,
			Timeout:   opts.ReadTimeout,
		},
		now: time.Now,
	}, nil
}

// FetchQuote performs ConsultarCotizacion for one currency and date.
// FechaConsulta on the returned quote is the adapter's local time at parse
// completion, not the upstream quotation date.
func (c *Client) FetchQuote(ctx context.Context, moneda, fecha string) (model.ExchangeQuote, error) {
	logger.L().Info().Str("moneda", moneda).Str("fecha", fecha).Msg("consultando cotización")

	envelope, err := NewCotizacionEnvelope(moneda, fecha)
	if err != nil {
		return model.ExchangeQuote{}, errs.Wrap(errs.KindUnexpectedAdapterError,
			"Error inesperado construyendo la petición SOAP. Contacte al administrador del sistema.", err)
	}

	body, err := c.call(ctx, ActionCotizacion, envelope)
	if err != nil {
		return model.ExchangeQuote{}, err
	}

	quote, err := ParseCotizacionResponse(body)
	if err != nil {
		return model.ExchangeQuote{}, err
	}
	quote.FechaConsulta = c.now().Format(fechaConsultaLayout)

	logger.L().Info().
		Str("moneda", quote.Moneda).
		Str("compra", quote.Compra.String()).
		Str("venta", quote.Venta.String()).
		Msg("cotización obtenida")
	return quote, nil
}

// FetchHistory performs ConsultarHistorico for one currency over a date
// range. The series keeps the upstream order.
func (c *Client) FetchHistory(ctx context.Context, moneda, fechaInicio, fechaFin string) ([]model.HistoricalRecord, error) {
	logger.L().Info().
		Str("moneda", moneda).
		Str("desde", fechaInicio).
		Str("hasta", fechaFin).
		Msg("consultando histórico")

	envelope, err := NewHistoricoEnvelope(moneda, fechaInicio, fechaFin)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnexpectedAdapterError,
			"Error inesperado construyendo la petición SOAP. Contacte al administrador del sistema.", err)
	}

	body, err := c.call(ctx, ActionHistorico, envelope)
	if err != nil {
		return nil, err
	}
	return ParseHistoricoResponse(body)
}

// Probe reports whether the channel configuration is still loadable. The
// readiness endpoint uses it as the "can the adapter initialize" check.
func (c *Client) Probe() error {
	_, err := buildTLSConfig(c.mode)
	return err
}

// Close releases idle connections. Idempotent; safe on a partially
// initialized client.
func (c *Client) Close() {
	if c == nil || c.httpc == nil {
		return
	}
	c.httpc.CloseIdleConnections()
}

// call sends one SOAP request and returns the raw response body. Transport
// failures come back already classified.
func (c *Client) call(ctx context.Context, action string, envelope []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(envelope))
	if err != nil {
		return nil, errs.Wrap(errs.KindUnexpectedAdapterError,
			"Error inesperado construyendo la petición HTTP. Contacte al administrador del sistema.", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+action+`"`)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	// SOAP faults usually arrive with a 500; surface the fault reason
	// instead of the bare status.
	if resp.StatusCode != http.StatusOK {
		if fault := parseFault(body); fault != nil {
			return nil, errs.New(errs.KindUpstreamProtocolError,
				"Error en la comunicación SOAP con el BCU: "+fault.Reason+". Verifique que el servicio esté disponible.")
		}
		return nil, errs.New(errs.KindUpstreamProtocolError,
			"El BCU respondió con estado HTTP "+resp.Status+". Verifique que el servicio esté disponible.")
	}
	return body, nil
}

// classifyTransportError maps a transport failure to the error taxonomy.
// Each kind carries an operator-actionable message distinct from the raw
// exception text; the cause stays attached for logs.
func classifyTransportError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return errs.Wrap(errs.KindHostUnreachable,
			"No se puede conectar al Banco Central del Uruguay. Verifique la conexión a internet y que el servicio del BCU esté disponible. Host: "+dnsErr.Name, err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return errs.Wrap(errs.KindServiceUnavailable,
			"El servicio web del BCU no está disponible temporalmente. Intente nuevamente en unos minutos.", err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errs.Wrap(errs.KindUpstreamTimeout,
			"Tiempo de espera agotado conectando al BCU. El servicio puede estar sobrecargado, intente nuevamente.", err)
	}
	return errs.Wrap(errs.KindUnexpectedAdapterError,
		"Error inesperado consultando el BCU: "+err.Error()+". Contacte al administrador del sistema.", err)
}
