package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/models"
)

// respondError writes the {message} error shape used by the group, page and
// assistant routes. The message is passed through verbatim.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": err.Error()})
}

// respondPdfError writes the {success, message} envelope used by the
// /api/pdf routes.
func respondPdfError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), models.PdfEnvelope{
		Success: false,
		Message: err.Error(),
	})
}
