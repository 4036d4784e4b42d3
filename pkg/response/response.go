package response

import (
	"errors"
	"net/http"

	"ledger-service/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire format shared by every endpoint: the transport status is
// mirrored in the body so clients can treat responses uniformly.
type Envelope struct {
	Status      int         `json:"status"`
	Result      bool        `json:"result"`
	Addition    interface{} `json:"addition"`
	Description interface{} `json:"description"`
}

// OK sends a 200 envelope with the given addition payload.
func OK(c *gin.Context, addition interface{}) {
	if addition == nil {
		addition = gin.H{}
	}
	c.JSON(http.StatusOK, Envelope{
		Status:      http.StatusOK,
		Result:      true,
		Addition:    addition,
		Description: gin.H{},
	})
}

// Error sends a failure envelope. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Envelope{
			Status:      appErr.HTTPStatus,
			Result:      false,
			Addition:    gin.H{"reason": appErr.Reason},
			Description: gin.H{},
		})
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, Envelope{
		Status:      http.StatusInternalServerError,
		Result:      false,
		Addition:    gin.H{"reason": "internal server error"},
		Description: gin.H{},
	})
}
