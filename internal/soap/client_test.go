package soap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/enlamano/bcugateway/internal/domain/errs"
)

func newTestClient(t *testing.T, endpoint string, readTimeout time.Duration) *Client {
	t.Helper()
	c, err := NewClient(Options{
		Endpoint:    endpoint,
		Mode:        Insecure{},
		ReadTimeout: readTimeout,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestFetchQuote_Success(t *testing.T) {
	var gotAction, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.Header.Get("SOAPAction")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = w.Write([]byte(cotizacionOK))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	fixed := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	quote, err := c.FetchQuote(context.Background(), "USD", "2024-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Moneda != "USD" || quote.Compra.String() != "39.5" || quote.Venta.String() != "41.2" {
		t.Fatalf("unexpected quote: %+v", quote)
	}
	if quote.FechaConsulta != "2024-01-15 10:30:00" {
		t.Fatalf("FechaConsulta not stamped with local time: %q", quote.FechaConsulta)
	}
	if gotAction != `"`+ActionCotizacion+`"` {
		t.Fatalf("wrong SOAPAction: %q", gotAction)
	}
	if gotContentType != "text/xml; charset=utf-8" {
		t.Fatalf("wrong Content-Type: %q", gotContentType)
	}
}

func TestFetchQuote_NoResultElement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"><s:Body/></s:Envelope>`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	_, err := c.FetchQuote(context.Background(), "USD", "2024-01-15")
	if err == nil || errs.KindOf(err) != errs.KindUpstreamProtocolError {
		t.Fatalf("expected UpstreamProtocolError, got %v", err)
	}
}

func TestFetchQuote_SoapFaultWith500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"><s:Body><s:Fault><faultcode>s:Server</faultcode><faultstring>fecha fuera de rango</faultstring></s:Fault></s:Body></s:Envelope>`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	_, err := c.FetchQuote(context.Background(), "USD", "2024-01-15")
	if err == nil || errs.KindOf(err) != errs.KindUpstreamProtocolError {
		t.Fatalf("expected UpstreamProtocolError, got %v", err)
	}
	if msg := errs.MessageOf(err); msg == "" || !strings.Contains(msg, "fecha fuera de rango") {
		t.Fatalf("fault reason not surfaced: %q", msg)
	}
}

func TestFetchQuote_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 50*time.Millisecond)
	_, err := c.FetchQuote(context.Background(), "USD", "2024-01-15")
	if err == nil || errs.KindOf(err) != errs.KindUpstreamTimeout {
		t.Fatalf("expected UpstreamTimeout, got %v", err)
	}
}

func TestFetchQuote_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // port is now closed, connections get refused

	c := newTestClient(t, url, time.Second)
	_, err := c.FetchQuote(context.Background(), "USD", "2024-01-15")
	if err == nil || errs.KindOf(err) != errs.KindServiceUnavailable {
		t.Fatalf("expected ServiceUnavailable, got %v", err)
	}
}

func TestFetchQuote_HostUnreachable(t *testing.T) {
	c := newTestClient(t, "http://bcu-gateway-test.invalid:9/svc", time.Second)
	_, err := c.FetchQuote(context.Background(), "USD", "2024-01-15")
	if err == nil || errs.KindOf(err) != errs.KindHostUnreachable {
		t.Fatalf("expected HostUnreachable, got %v", err)
	}
}

// Timeout and unreachable-host failures must carry distinct
// operator-actionable messages.
func TestTransportMessages_Distinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	slow := newTestClient(t, srv.URL, 50*time.Millisecond)
	_, timeoutErr := slow.FetchQuote(context.Background(), "USD", "2024-01-15")

	gone := newTestClient(t, "http://bcu-gateway-test.invalid:9/svc", time.Second)
	_, dnsErr := gone.FetchQuote(context.Background(), "USD", "2024-01-15")

	if timeoutErr == nil || dnsErr == nil {
		t.Fatalf("expected both failures")
	}
	if errs.MessageOf(timeoutErr) == errs.MessageOf(dnsErr) {
		t.Fatalf("messages must differ: %q", errs.MessageOf(timeoutErr))
	}
}

func TestFetchHistory_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("SOAPAction"); got != `"`+ActionHistorico+`"` {
			t.Errorf("wrong SOAPAction: %q", got)
		}
		_, _ = w.Write([]byte(historicoOK))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	serie, err := c.FetchHistory(context.Background(), "USD", "2024-01-15", "2024-01-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(serie) != 2 || serie[0].Fecha != "2024-01-15" {
		t.Fatalf("unexpected series: %+v", serie)
	}
}

func TestNewClient_RequiresMode(t *testing.T) {
	_, err := NewClient(Options{Endpoint: "http://localhost:1"})
	if err == nil || errs.KindOf(err) != errs.KindChannelConfiguration {
		t.Fatalf("expected ChannelConfigurationError, got %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	c := newTestClient(t, "http://localhost:1", time.Second)
	c.Close()
	c.Close()
	var nilClient *Client
	nilClient.Close() // safe on partially failed initialization
}

func TestProbe(t *testing.T) {
	c := newTestClient(t, "http://localhost:1", time.Second)
	if err := c.Probe(); err != nil {
		t.Fatalf("insecure channel probe failed: %v", err)
	}
}
