package dto

// GatewayRequest is the JSON body accepted by POST /api/bcu/consulta.
//
// Fields match the contract with the calling business application:
//   - Operation: one of "cotizacion", "arbitraje", "historico".
//   - Parameters: operation-specific parameter bag. The business tier sends
//     every value as a JSON string, but numbers are tolerated and converted.
//
// The request lives for a single HTTP request/response cycle and is never
// persisted.
type GatewayRequest struct {
	Operation  string         `json:"operation" example:"cotizacion"`
	Parameters map[string]any `json:"parameters"`
}

// Operation tags supported by the gateway.
const (
	OpCotizacion = "cotizacion"
	OpArbitraje  = "arbitraje"
	OpHistorico  = "historico"
)
