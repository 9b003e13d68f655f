package dto

import (
	"time"

	"github.com/enlamano/bcugateway/internal/domain/errs"
)

// ErrorResponse is the standardized JSON error body emitted by the gateway.
//
// Contract with the business application:
//
//	{
//	    "status": "error",
//	    "mensaje": "Tiempo de espera agotado conectando al BCU...",
//	    "codigo": "UpstreamTimeout",
//	    "timestamp": 1705312200000
//	}
//
// The codigo field carries the stable taxonomy code; mensaje carries the
// classification message built at the point of failure, unchanged.
type ErrorResponse struct {
	Status    string `json:"status" example:"error"`
	Mensaje   string `json:"mensaje"`
	Codigo    string `json:"codigo" example:"UpstreamTimeout"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// Error implements the error interface so handlers and middleware can pass
// the response around as a plain error when convenient.
func (e ErrorResponse) Error() string {
	if e.Codigo != "" {
		return e.Codigo + ": " + e.Mensaje
	}
	return e.Mensaje
}

// NewErrorResponse builds an ErrorResponse for a classified error kind.
func NewErrorResponse(kind errs.Kind, mensaje string) ErrorResponse {
	return ErrorResponse{
		Status:    "error",
		Mensaje:   mensaje,
		Codigo:    string(kind),
		Timestamp: time.Now().UnixMilli(),
	}
}

// FromError maps any error to an ErrorResponse, classifying unclassified
// errors as UnexpectedAdapterError.
func FromError(err error) ErrorResponse {
	return NewErrorResponse(errs.KindOf(err), errs.MessageOf(err))
}
