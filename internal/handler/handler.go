package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/pkg/response"
)

// respondError maps service error kinds onto HTTP statuses: malformed
// parameters are the caller's fault, a dead store is retryable, anything
// else is a server error.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(c, verr.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		response.Unavailable(c, "store unavailable, retry later")
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
