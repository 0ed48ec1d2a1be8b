package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ironsheep/duplik8/internal/ocr"
)

// AnalysisRequest is the body of POST /analyze.
type AnalysisRequest struct {
	// ImageURL must be an absolute URL; nothing else is checked before use.
	ImageURL string `json:"image_url" binding:"required,url"`
}

// AnalysisResponse is the 200 body of POST /analyze.
type AnalysisResponse struct {
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    []ocr.Detection `json:"data"`
}

// HealthResponse is the body of GET /.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleHealth always reports ready; the engine is built before the server
// starts listening.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: fmt.Sprintf("%s Service is Ready", s.opts.ServiceName),
	})
}

// handleAnalyze downloads, decodes and recognises one image. The gate has
// already run as route middleware.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorBody{Detail: bindingDetail(err)})
		return
	}

	ctx := c.Request.Context()

	data, err := s.deps.Fetcher.Fetch(ctx, req.ImageURL)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.debugf(c, "downloaded %d bytes from %s", len(data), req.ImageURL)

	raster, err := s.deps.Decoder.Decode(data)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.debugf(c, "decoded %s image %dx%dx%d", raster.Format(), raster.Width(), raster.Height(), raster.Channels())

	detections, err := s.deps.Recognizer.Recognize(ctx, raster)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.debugf(c, "recognised %d lines", len(detections))

	c.JSON(http.StatusOK, AnalysisResponse{
		Message: "Analysis successful",
		Count:   len(detections),
		Data:    detections,
	})
}

// fail writes the error response for err and logs it.
func (s *Server) fail(c *gin.Context, err error) {
	status, detail := classify(err)
	log.Printf("[%s] %s %s: %d %v", c.GetString(requestIDKey), c.Request.Method, c.Request.URL.Path, status, err)
	c.JSON(status, errorBody{Detail: detail})
}

func (s *Server) debugf(c *gin.Context, format string, args ...interface{}) {
	if !s.opts.Debug {
		return
	}
	log.Printf("[%s] "+format, append([]interface{}{c.GetString(requestIDKey)}, args...)...)
}

// bindingDetail renders body validation errors using JSON field names.
func bindingDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Sprintf("invalid request body: %v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := jsonName(fe.StructField())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+": field required")
		case "url":
			msgs = append(msgs, name+": must be a valid URL")
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %q validation", name, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func jsonName(field string) string {
	switch field {
	case "ImageURL":
		return "image_url"
	default:
		return field
	}
}
