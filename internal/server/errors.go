package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/duplik8/internal/fetch"
	"github.com/ironsheep/duplik8/internal/imaging"
)

// errorBody is the JSON shape of every failure response.
type errorBody struct {
	Detail string `json:"detail"`
}

const (
	detailInvalidImage = "URL did not point to a valid image file."
	detailInternal     = "Internal Server Error"
)

// classify maps component errors to an HTTP status and client-facing detail.
// This is the only place errors become statuses.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, fetch.ErrDownload):
		return http.StatusBadRequest, "Failed to download image: " + cause(err, fetch.ErrDownload)
	case errors.Is(err, imaging.ErrInvalidImage):
		return http.StatusBadRequest, detailInvalidImage
	case errors.Is(err, imaging.ErrProcessing):
		return http.StatusUnprocessableEntity, "Image processing failed: " + cause(err, imaging.ErrProcessing)
	default:
		// Engine failures and anything unexpected: no internals leak out.
		return http.StatusInternalServerError, detailInternal
	}
}

// cause strips the sentinel's own text from a wrapped error message.
func cause(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}

func recoverJSON(c *gin.Context, recovered any) {
	log.Printf("[%s] panic: %v", c.GetString(requestIDKey), recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Detail: detailInternal})
}
