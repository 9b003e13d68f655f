package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindMalformedRequest, http.StatusBadRequest},
		{KindMissingField, http.StatusBadRequest},
		{KindUnsupportedOperation, http.StatusBadRequest},
		{KindHostUnreachable, http.StatusBadGateway},
		{KindUpstreamProtocolError, http.StatusBadGateway},
		{KindServiceUnavailable, http.StatusServiceUnavailable},
		{KindUpstreamTimeout, http.StatusGatewayTimeout},
		{KindChannelConfiguration, http.StatusInternalServerError},
		{KindUnexpectedAdapterError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.kind.HTTPStatus(); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.kind, tc.want, got)
		}
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	e := New(KindMissingField, "Campo 'parametros' requerido")
	if e.Error() != "Campo 'parametros' requerido" {
		t.Fatalf("unexpected message: %q", e.Error())
	}

	cause := errors.New("dial tcp: boom")
	e2 := Wrap(KindServiceUnavailable, "servicio no disponible", cause)
	if e2.Error() != "servicio no disponible: dial tcp: boom" {
		t.Fatalf("unexpected message: %q", e2.Error())
	}
	if !errors.Is(e2, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
}

func TestKindOf_PreservedThroughWrapping(t *testing.T) {
	inner := New(KindUpstreamTimeout, "tiempo de espera agotado")
	outer := fmt.Errorf("consulta cotizacion USD: %w", inner)

	if got := KindOf(outer); got != KindUpstreamTimeout {
		t.Fatalf("expected kind preserved through fmt wrapping, got %s", got)
	}
	if got := MessageOf(outer); got != "tiempo de espera agotado" {
		t.Fatalf("expected classified message, got %q", got)
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindUnexpectedAdapterError {
		t.Fatalf("unclassified error must map to UnexpectedAdapterError, got %s", got)
	}
	if got := MessageOf(nil); got != "" {
		t.Fatalf("expected empty message for nil error, got %q", got)
	}
}
