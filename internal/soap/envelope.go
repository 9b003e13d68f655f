package soap

import (
	"bytes"
	"encoding/xml"

	"github.com/shopspring/decimal"

	"github.com/enlamano/bcugateway/internal/domain/errs"
	"github.com/enlamano/bcugateway/internal/domain/model"
)

// Wire contract with the BCU arbitrage service. Element names, the service
// namespace and the SOAPAction identifiers must match the upstream schema
// exactly.
const (
	Namespace = "http://tempuri.org/"

	ActionCotizacion = "http://tempuri.org/IArbitrajeServicio/ConsultarCotizacion"
	ActionHistorico  = "http://tempuri.org/IArbitrajeServicio/ConsultarHistorico"

	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	xmlHeader  = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
)

// requestEnvelope is a SOAP 1.1 request envelope. encoding/xml has no
// first-class namespace prefixes, so the prefixed names are spelled out.
type requestEnvelope struct {
	XMLName   xml.Name    `xml:"soapenv:Envelope"`
	NSSoapEnv string      `xml:"xmlns:soapenv,attr"`
	NSTns     string      `xml:"xmlns:tns,attr"`
	Body      requestBody `xml:"soapenv:Body"`
}

type requestBody struct {
	Payload any
}

type consultarCotizacion struct {
	XMLName xml.Name `xml:"tns:ConsultarCotizacion"`
	Moneda  string   `xml:"tns:moneda"`
	Fecha   string   `xml:"tns:fecha"`
}

type consultarHistorico struct {
	XMLName     xml.Name `xml:"tns:ConsultarHistorico"`
	Moneda      string   `xml:"tns:moneda"`
	FechaInicio string   `xml:"tns:fechaInicio"`
	FechaFin    string   `xml:"tns:fechaFin"`
}

// NewCotizacionEnvelope builds the request envelope for ConsultarCotizacion.
func NewCotizacionEnvelope(moneda, fecha string) ([]byte, error) {
	return marshalEnvelope(consultarCotizacion{Moneda: moneda, Fecha: fecha})
}

// NewHistoricoEnvelope builds the request envelope for ConsultarHistorico.
func NewHistoricoEnvelope(moneda, fechaInicio, fechaFin string) ([]byte, error) {
	return marshalEnvelope(consultarHistorico{
		Moneda:      moneda,
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
	})
}

func marshalEnvelope(payload any) ([]byte, error) {
	env := requestEnvelope{
		NSSoapEnv: envelopeNS,
		NSTns:     Namespace,
		Body:      requestBody{Payload: payload},
	}
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// responseEnvelope matches inbound SOAP envelopes regardless of the prefix
// the upstream chose; element matching here is by local name.
type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`
}

type responseBody struct {
	Fault      *soapFault                   `xml:"Fault"`
	Cotizacion *consultarCotizacionResponse `xml:"ConsultarCotizacionResponse"`
	Historico  *consultarHistoricoResponse  `xml:"ConsultarHistoricoResponse"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	Reason string `xml:"faultstring"`
}

type consultarCotizacionResponse struct {
	Result *cotizacionResult `xml:"ConsultarCotizacionResult"`
}

type cotizacionResult struct {
	Moneda           string `xml:"Moneda"`
	Fecha            string `xml:"Fecha"`
	TipoCambioCompra string `xml:"TipoCambioCompra"`
	TipoCambioVenta  string `xml:"TipoCambioVenta"`
}

type consultarHistoricoResponse struct {
	Result *historicoResult `xml:"ConsultarHistoricoResult"`
}

// historicoResult accepts the record wrapper under any element name; each
// record carries the same field vocabulary as the single-quote result.
type historicoResult struct {
	Registros []registroHistorico `xml:",any"`
}

type registroHistorico struct {
	Fecha            string `xml:"Fecha"`
	TipoCambioCompra string `xml:"TipoCambioCompra"`
	TipoCambioVenta  string `xml:"TipoCambioVenta"`
}

// parseFault extracts a SOAP fault from a response body, if present.
// Returns nil when the body holds no fault.
func parseFault(data []byte) *soapFault {
	var env responseEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil
	}
	return env.Body.Fault
}

// ParseCotizacionResponse decodes a ConsultarCotizacion response envelope
// into a domain quote. FechaConsulta is left empty; the client stamps it.
//
// Classified failures:
//   - undecodable XML, SOAP fault, or missing result element → UpstreamProtocolError
//   - non-numeric TipoCambioCompra / TipoCambioVenta → UpstreamProtocolError
func ParseCotizacionResponse(data []byte) (model.ExchangeQuote, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return model.ExchangeQuote{}, errs.Wrap(errs.KindUpstreamProtocolError,
			"Respuesta del BCU no es un XML válido. Verifique que el servicio esté disponible.", err)
	}
	if env.Body.Fault != nil {
		return model.ExchangeQuote{}, errs.New(errs.KindUpstreamProtocolError,
			"Error en la comunicación SOAP con el BCU: "+env.Body.Fault.Reason+". Verifique que el servicio esté disponible.")
	}
	if env.Body.Cotizacion == nil || env.Body.Cotizacion.Result == nil {
		return model.ExchangeQuote{}, errs.New(errs.KindUpstreamProtocolError,
			"No se encontró resultado válido en la respuesta del BCU.")
	}

	res := env.Body.Cotizacion.Result
	compra, err := parseRate(res.TipoCambioCompra, "TipoCambioCompra")
	if err != nil {
		return model.ExchangeQuote{}, err
	}
	venta, err := parseRate(res.TipoCambioVenta, "TipoCambioVenta")
	if err != nil {
		return model.ExchangeQuote{}, err
	}

	return model.ExchangeQuote{
		Moneda: res.Moneda,
		Fecha:  res.Fecha,
		Compra: compra,
		Venta:  venta,
	}, nil
}

// ParseHistoricoResponse decodes a ConsultarHistorico response envelope into
// an ordered series of historical records. The upstream order is preserved;
// an empty result element yields an empty (non-nil) series.
func ParseHistoricoResponse(data []byte) ([]model.HistoricalRecord, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, errs.Wrap(errs.KindUpstreamProtocolError,
			"Respuesta del BCU no es un XML válido. Verifique que el servicio esté disponible.", err)
	}
	if env.Body.Fault != nil {
		return nil, errs.New(errs.KindUpstreamProtocolError,
			"Error en la comunicación SOAP con el BCU: "+env.Body.Fault.Reason+". Verifique que el servicio esté disponible.")
	}
	if env.Body.Historico == nil || env.Body.Historico.Result == nil {
		return nil, errs.New(errs.KindUpstreamProtocolError,
			"No se encontraron datos históricos en la respuesta del BCU.")
	}

	registros := env.Body.Historico.Result.Registros
	serie := make([]model.HistoricalRecord, 0, len(registros))
	for _, reg := range registros {
		compra, err := parseRate(reg.TipoCambioCompra, "TipoCambioCompra")
		if err != nil {
			return nil, err
		}
		venta, err := parseRate(reg.TipoCambioVenta, "TipoCambioVenta")
		if err != nil {
			return nil, err
		}
		serie = append(serie, model.HistoricalRecord{
			Fecha:  reg.Fecha,
			Compra: compra,
			Venta:  venta,
		})
	}
	return serie, nil
}

func parseRate(raw, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, errs.Wrap(errs.KindUpstreamProtocolError,
			"Campo '"+field+"' de la respuesta del BCU no es numérico: '"+raw+"'.", err)
	}
	return d, nil
}
