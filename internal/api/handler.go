package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/enlamano/bcugateway/internal/domain/dto"
	"github.com/enlamano/bcugateway/internal/domain/errs"
	"github.com/enlamano/bcugateway/internal/logger"
	"github.com/enlamano/bcugateway/internal/metrics"
	"github.com/enlamano/bcugateway/internal/middleware"
	"github.com/enlamano/bcugateway/internal/service"
)

// Handler provides the HTTP handlers for the BCU consulta endpoint.
//
// Responsibilities:
//   - Validate the incoming request envelope (operation + parameters)
//   - Dispatch to the bridge service per operation
//   - Translate domain results into response DTOs
//   - Translate classified errors into the standardized error body
type Handler struct {
	svc     service.BridgeService
	version string
	metrics *metrics.Metrics
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.BridgeService): Business operations over the SOAP adapter.
//   - version (string): Gateway version echoed in response metadata.
//   - m (*metrics.Metrics): Instrumentation; may be nil in tests.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.BridgeService, version string, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, version: version, metrics: m}
}

// Consulta handles POST /api/bcu/consulta requests.
//
// Consulta godoc
// @Summary      Execute a BCU query
// @Description  Dispatches cotizacion, arbitraje or historico queries against the BCU SOAP service
// @Tags         consulta
// @Accept       json
// @Produce      json
// @Param        request  body      dto.GatewayRequest  true  "Operation and parameters"
// @Success      200      {object}  dto.CotizacionResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse       "Malformed or unsupported request"
// @Failure      502      {object}  dto.ErrorResponse       "Upstream unreachable or protocol error"
// @Failure      503      {object}  dto.ErrorResponse       "Upstream refused the connection"
// @Failure      504      {object}  dto.ErrorResponse       "Upstream timed out"
// @Failure      500      {object}  dto.ErrorResponse       "Internal error"
// @Router       /api/bcu/consulta [post]
func (h *Handler) Consulta(c *gin.Context) {
	var req dto.GatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errs.KindMalformedRequest,
			"El cuerpo de la petición no es un JSON válido")
		return
	}

	if strings.TrimSpace(req.Operation) == "" {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'operation' requerido")
		return
	}
	if req.Parameters == nil {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'parametros' requerido")
		return
	}

	if h.metrics != nil {
		h.metrics.ConsultasTotal.WithLabelValues(req.Operation).Inc()
	}

	switch req.Operation {
	case dto.OpCotizacion:
		h.cotizacion(c, req.Parameters)
	case dto.OpArbitraje:
		h.arbitraje(c, req.Parameters)
	case dto.OpHistorico:
		h.historico(c, req.Parameters)
	default:
		middleware.AbortWithError(c, errs.KindUnsupportedOperation,
			fmt.Sprintf("Operación no soportada: '%s'", req.Operation))
	}
}

func (h *Handler) cotizacion(c *gin.Context, params map[string]any) {
	moneda, ok := stringParam(params, "moneda")
	if !ok {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'moneda' requerido")
		return
	}
	fecha, ok := stringParam(params, "fecha")
	if !ok {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'fecha' requerido")
		return
	}

	quote, err := h.svc.Cotizacion(c.Request.Context(), moneda, fecha)
	if err != nil {
		h.fail(c, dto.OpCotizacion, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCotizacionResponse(quote, h.version))
}

func (h *Handler) arbitraje(c *gin.Context, params map[string]any) {
	origen, ok := stringParam(params, "monedaOrigen")
	if !ok {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'monedaOrigen' requerido")
		return
	}
	destino, ok := stringParam(params, "monedaDestino")
	if !ok {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'monedaDestino' requerido")
		return
	}
	fecha, ok := stringParam(params, "fecha")
	if !ok {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'fecha' requerido")
		return
	}

	result, err := h.svc.Arbitraje(c.Request.Context(), origen, destino, fecha)
	if err != nil {
		h.fail(c, dto.OpArbitraje, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewArbitrajeResponse(result, h.version))
}

func (h *Handler) historico(c *gin.Context, params map[string]any) {
	moneda, ok := stringParam(params, "moneda")
	if !ok {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'moneda' requerido")
		return
	}
	inicio, ok := stringParam(params, "fechaInicio")
	if !ok {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'fechaInicio' requerido")
		return
	}
	fin, ok := stringParam(params, "fechaFin")
	if !ok {
		middleware.AbortWithError(c, errs.KindMissingField, "Campo 'fechaFin' requerido")
		return
	}

	serie, err := h.svc.Historico(c.Request.Context(), moneda, inicio, fin)
	if err != nil {
		h.fail(c, dto.OpHistorico, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoricoResponse(moneda, inicio, fin, serie, h.version))
}

// fail translates a classified error into the standardized error body. The
// classification message is surfaced verbatim, prefixed with the operation so
// a log line alone is enough to diagnose the failure.
func (h *Handler) fail(c *gin.Context, operation string, err error) {
	kind := errs.KindOf(err)

	logger.L().Error().
		Err(err).
		Str("operation", operation).
		Str("kind", string(kind)).
		Msg("consulta fallida")

	if h.metrics != nil {
		h.metrics.UpstreamFailuresTotal.WithLabelValues(string(kind)).Inc()
	}

	mensaje := fmt.Sprintf("[%s] %s", operation, errs.MessageOf(err))
	middleware.AbortWithError(c, kind, mensaje)
}

// Info handles GET /api/bcu/consulta requests.
//
// Info godoc
// @Summary      Describe the consulta endpoint
// @Description  Static description of the supported operations and their parameters
// @Tags         consulta
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "Service description"
// @Router       /api/bcu/consulta [get]
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"servicio":    "BCU Gateway",
		"descripcion": "Puente JSON/SOAP hacia el servicio de arbitraje del Banco Central del Uruguay",
		"metodo":      "POST",
		"operaciones": gin.H{
			dto.OpCotizacion: gin.H{"parametros": []string{"moneda", "fecha"}},
			dto.OpArbitraje:  gin.H{"parametros": []string{"monedaOrigen", "monedaDestino", "fecha"}},
			dto.OpHistorico:  gin.H{"parametros": []string{"moneda", "fechaInicio", "fechaFin"}},
		},
	})
}

// stringParam pulls a required string parameter out of the bag. The business
// tier sends every value as a string, but JSON numbers are tolerated.
func stringParam(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		if strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	default:
		str := strings.TrimSpace(fmt.Sprintf("%v", v))
		if str == "" {
			return "", false
		}
		return str, true
	}
}
