package dto

import (
	"encoding/json"
	"time"

	"github.com/enlamano/bcugateway/internal/domain/model"
)

// Metadatos carries response metadata expected by the business application.
type Metadatos struct {
	Fuente      string `json:"fuente" example:"BCU"`
	ProcesadoEn int64  `json:"procesadoEn"` // epoch milliseconds
	Version     string `json:"version" example:"1.0"`
}

// CotizacionDatos is the data block of a successful "cotizacion" response.
// Rates are emitted as JSON numbers with the exact digits parsed from the
// upstream XML (no binary-float rounding).
type CotizacionDatos struct {
	Moneda        string      `json:"moneda" example:"USD"`
	Fecha         string      `json:"fecha" example:"2024-01-15"`
	Compra        json.Number `json:"compra"`
	Venta         json.Number `json:"venta"`
	FechaConsulta string      `json:"fechaConsulta"`
}

// CotizacionResponse is the full body of a successful "cotizacion" response.
type CotizacionResponse struct {
	Status    string          `json:"status" example:"success"`
	Operation string          `json:"operation" example:"cotizacion"`
	Datos     CotizacionDatos `json:"datos"`
	Metadatos Metadatos       `json:"metadatos"`
}

// CotizacionLado is one leg (origin or destination) of an arbitrage result.
type CotizacionLado struct {
	Compra json.Number `json:"compra"`
	Venta  json.Number `json:"venta"`
}

// ArbitrajeDatos is the data block of a successful "arbitraje" response.
type ArbitrajeDatos struct {
	MonedaOrigen      string         `json:"monedaOrigen" example:"USD"`
	MonedaDestino     string         `json:"monedaDestino" example:"EUR"`
	Fecha             string         `json:"fecha" example:"2024-01-15"`
	TasaArbitraje     json.Number    `json:"tasaArbitraje"`
	CotizacionOrigen  CotizacionLado `json:"cotizacionOrigen"`
	CotizacionDestino CotizacionLado `json:"cotizacionDestino"`
}

// ArbitrajeResponse is the full body of a successful "arbitraje" response.
type ArbitrajeResponse struct {
	Status    string         `json:"status" example:"success"`
	Operation string         `json:"operation" example:"arbitraje"`
	Datos     ArbitrajeDatos `json:"datos"`
	Metadatos Metadatos      `json:"metadatos"`
}

// RegistroHistorico is one entry of the historical series.
type RegistroHistorico struct {
	Fecha  string      `json:"fecha" example:"2024-01-15"`
	Compra json.Number `json:"compra"`
	Venta  json.Number `json:"venta"`
}

// HistoricoDatos is the data block of a successful "historico" response.
type HistoricoDatos struct {
	Moneda         string              `json:"moneda" example:"USD"`
	FechaInicio    string              `json:"fechaInicio" example:"2024-01-01"`
	FechaFin       string              `json:"fechaFin" example:"2024-01-31"`
	TotalRegistros int                 `json:"totalRegistros" example:"22"`
	Serie          []RegistroHistorico `json:"serie"`
}

// HistoricoResponse is the full body of a successful "historico" response.
type HistoricoResponse struct {
	Status    string         `json:"status" example:"success"`
	Operation string         `json:"operation" example:"historico"`
	Datos     HistoricoDatos `json:"datos"`
	Metadatos Metadatos      `json:"metadatos"`
}

// NewMetadatos builds the metadata block stamped with the current time.
func NewMetadatos(version string) Metadatos {
	return Metadatos{
		Fuente:      "BCU",
		ProcesadoEn: time.Now().UnixMilli(),
		Version:     version,
	}
}

// NewCotizacionResponse maps a domain quote to the response contract.
func NewCotizacionResponse(q model.ExchangeQuote, version string) CotizacionResponse {
	return CotizacionResponse{
		Status:    "success",
		Operation: OpCotizacion,
		Datos: CotizacionDatos{
			Moneda:        q.Moneda,
			Fecha:         q.Fecha,
			Compra:        json.Number(q.Compra.String()),
			Venta:         json.Number(q.Venta.String()),
			FechaConsulta: q.FechaConsulta,
		},
		Metadatos: NewMetadatos(version),
	}
}

// NewArbitrajeResponse maps a domain arbitrage result to the response contract.
func NewArbitrajeResponse(a model.ArbitrageResult, version string) ArbitrajeResponse {
	return ArbitrajeResponse{
		Status:    "success",
		Operation: OpArbitraje,
		Datos: ArbitrajeDatos{
			MonedaOrigen:  a.MonedaOrigen,
			MonedaDestino: a.MonedaDestino,
			Fecha:         a.Fecha,
			TasaArbitraje: json.Number(a.Tasa.String()),
			CotizacionOrigen: CotizacionLado{
				Compra: json.Number(a.Origen.Compra.String()),
				Venta:  json.Number(a.Origen.Venta.String()),
			},
			CotizacionDestino: CotizacionLado{
				Compra: json.Number(a.Destino.Compra.String()),
				Venta:  json.Number(a.Destino.Venta.String()),
			},
		},
		Metadatos: NewMetadatos(version),
	}
}

// NewHistoricoResponse maps a historical series to the response contract.
// The series keeps the upstream order; the gateway never re-sorts it.
func NewHistoricoResponse(moneda, fechaInicio, fechaFin string, serie []model.HistoricalRecord, version string) HistoricoResponse {
	registros := make([]RegistroHistorico, 0, len(serie))
	for _, rec := range serie {
		registros = append(registros, RegistroHistorico{
			Fecha:  rec.Fecha,
			Compra: json.Number(rec.Compra.String()),
			Venta:  json.Number(rec.Venta.String()),
		})
	}
	return HistoricoResponse{
		Status:    "success",
		Operation: OpHistorico,
		Datos: HistoricoDatos{
			Moneda:         moneda,
			FechaInicio:    fechaInicio,
			FechaFin:       fechaFin,
			TotalRegistros: len(registros),
			Serie:          registros,
		},
		Metadatos: NewMetadatos(version),
	}
}
