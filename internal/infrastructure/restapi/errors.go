package restapi

import (
	"errors"
	"net/http"

	"mixin_wallet/internal/client"
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/pkg/memo"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, entity.ErrInvalidSpotOrder),
		errors.Is(err, entity.ErrInvalidSymbol),
		errors.Is(err, entity.ErrInvalidPayment),
		errors.Is(err, memo.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrNotConnected):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), ErrorResponse{Error: err.Error()})
}
