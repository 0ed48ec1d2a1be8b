package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/duplik8/internal/auth"
	"github.com/ironsheep/duplik8/internal/imaging"
	"github.com/ironsheep/duplik8/internal/ocr"
)

// shutdownTimeout bounds graceful shutdown, including in-flight recognitions.
const shutdownTimeout = 10 * time.Second

// ImageFetcher downloads the bytes behind a URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ImageDecoder turns downloaded bytes into a raster.
type ImageDecoder interface {
	Decode(data []byte) (*imaging.Raster, error)
}

// TextRecognizer runs OCR on a raster.
type TextRecognizer interface {
	Recognize(ctx context.Context, raster *imaging.Raster) ([]ocr.Detection, error)
}

// Options holds the server's own settings.
type Options struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// ServiceName appears in the health message and the auth realm.
	ServiceName string

	// Debug enables per-stage debug logging.
	Debug bool
}

// Deps are the per-request collaborators, all created once at startup and
// shared read-only by every request.
type Deps struct {
	Gate       *auth.Gate
	Fetcher    ImageFetcher
	Decoder    ImageDecoder
	Recognizer TextRecognizer
}

// Server exposes the health and analysis endpoints.
type Server struct {
	opts   Options
	deps   Deps
	router *gin.Engine
}

// Mode returns the gin mode for the process. Release mode keeps gin from
// printing its route table and debug warning at startup.
func Mode(debug bool) string {
	if debug {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// New creates a server and registers its routes. A nil Gate means open
// access.
func New(opts Options, deps Deps) *Server {
	if deps.Gate == nil {
		deps.Gate = auth.NewGate(opts.ServiceName, "", "")
	}
	s := &Server{opts: opts, deps: deps}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(), gin.CustomRecovery(recoverJSON))

	r.GET("/", s.handleHealth)
	r.POST("/analyze", s.deps.Gate.Middleware(), s.handleAnalyze)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Detail: "Not Found"})
	})
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorBody{Detail: "Method Not Allowed"})
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s", s.opts.ServiceName, s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down %s", s.opts.ServiceName)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
