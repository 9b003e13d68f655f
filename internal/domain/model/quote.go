package model

import "github.com/shopspring/decimal"

// ExchangeQuote represents a buy/sell exchange-rate pair for one currency on
// one date, as published by the BCU.
//
// Fields:
//   - Moneda: BCU currency token (e.g., "USD", "2225").
//   - Fecha: quotation date, ISO-8601 calendar date (e.g., "2024-01-15").
//   - Compra: buy rate, parsed as an exact decimal (no binary rounding).
//   - Venta: sell rate, parsed as an exact decimal.
//   - FechaConsulta: local timestamp taken when the upstream response was
//     parsed, not the upstream quotation date.
//
// Instances are created only by the SOAP client when parsing a successful
// upstream response and are never mutated afterwards.
type ExchangeQuote struct {
	Moneda        string
	Fecha         string
	Compra        decimal.Decimal
	Venta         decimal.Decimal
	FechaConsulta string
}

// HistoricalRecord is one entry of a historical quote series: the quotation
// date plus the buy/sell rates for that day.
type HistoricalRecord struct {
	Fecha  string
	Compra decimal.Decimal
	Venta  decimal.Decimal
}

// ArbitrageResult is the derived outcome of comparing two independently
// fetched quotes for the same date.
//
// Tasa = Destino.Venta / Origen.Compra. The result exists only when both
// underlying fetches succeeded; there is no partial arbitrage.
type ArbitrageResult struct {
	MonedaOrigen  string
	MonedaDestino string
	Fecha         string
	Tasa          decimal.Decimal
	Origen        ExchangeQuote
	Destino       ExchangeQuote
}

// NewArbitrageResult computes the arbitrage rate from the two quotes.
// Currency codes are the ones the caller asked for; the embedded quotes keep
// whatever token the upstream echoed back.
func NewArbitrageResult(monedaOrigen, monedaDestino, fecha string, origen, destino ExchangeQuote) ArbitrageResult {
	return ArbitrageResult{
		MonedaOrigen:  monedaOrigen,
		MonedaDestino: monedaDestino,
		Fecha:         fecha,
		Tasa:          destino.Venta.Div(origen.Compra),
		Origen:        origen,
		Destino:       destino,
	}
}
