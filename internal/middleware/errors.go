package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/enlamano/bcugateway/internal/domain/dto"
	"github.com/enlamano/bcugateway/internal/domain/errs"
)

// ErrorHandler is a Gin middleware that converts errors attached to the
// context (via c.Error) into the standardized JSON error body, using the
// error taxonomy to pick the HTTP status.
//
// Handlers that already wrote a response are left untouched.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	kind := errs.KindOf(err)
	c.AbortWithStatusJSON(kind.HTTPStatus(), dto.FromError(err))
}

// AbortWithError writes a classified JSON error response and aborts the
// request. The status is taken from the kind's fixed mapping; mensaje is the
// classification message, surfaced verbatim.
func AbortWithError(c *gin.Context, kind errs.Kind, mensaje string) {
	c.AbortWithStatusJSON(kind.HTTPStatus(), dto.NewErrorResponse(kind, mensaje))
}
