package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/types"
)

// respondGenerationError maps generation failures to HTTP. Quota errors
// become a 429 carrying the full structured payload so clients can render
// limit and reset time; everything else becomes an opaque 500.
func respondGenerationError(c *gin.Context, err error) {
	var qe *types.QuotaError
	if errors.As(err, &qe) {
		c.JSON(http.StatusTooManyRequests, types.DataResponse{
			Status:  "error",
			Message: qe.Message,
			Data:    qe,
		})
		return
	}
	logrus.WithError(err).Error("generation request failed")
	c.JSON(http.StatusInternalServerError, types.DataResponse{
		Status:  "error",
		Message: "content generation failed",
	})
}
