package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/duplik8/internal/auth"
	"github.com/ironsheep/duplik8/internal/config"
	"github.com/ironsheep/duplik8/internal/fetch"
	"github.com/ironsheep/duplik8/internal/imaging"
	"github.com/ironsheep/duplik8/internal/ocr"
	"github.com/ironsheep/duplik8/internal/ocr/rekognition"
	"github.com/ironsheep/duplik8/internal/ocr/tesseract"
	"github.com/ironsheep/duplik8/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("duplik8 %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("duplik8 v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	gin.SetMode(server.Mode(cfg.Debug()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gate := auth.NewGate(cfg.ServiceName, cfg.Auth.Username, cfg.Auth.Password)
	if gate.Enabled() {
		log.Printf("Basic authentication enabled for /analyze")
	} else {
		log.Printf("Basic authentication disabled: no credentials configured")
	}

	decoder, err := imaging.NewDecoder(cfg.ImageBackground, cfg.MaxImagePixels)
	if err != nil {
		log.Fatalf("Decoder setup failed: %v", err)
	}

	engines, err := buildEngines(ctx, cfg)
	if err != nil {
		log.Fatalf("OCR engine setup failed: %v", err)
	}
	recognizer, err := ocr.NewRecognizer(engines, ocr.RecognizerConfig{
		AngleCls:  cfg.OCR.AngleCls,
		Grayscale: cfg.OCR.Grayscale,
	})
	if err != nil {
		log.Fatalf("OCR engine setup failed: %v", err)
	}
	defer recognizer.Close()

	info := recognizer.Info()
	log.Printf("OCR engine ready: %s %s, %d worker(s), angle classification %t",
		info.Backend, info.Version, recognizer.Workers(), cfg.OCR.AngleCls)

	srv := server.New(server.Options{
		Addr:        cfg.ListenAddr,
		ServiceName: cfg.ServiceName,
		Debug:       cfg.Debug(),
	}, server.Deps{
		Gate:       gate,
		Fetcher:    fetch.New(cfg.FetchTimeout, cfg.MaxImageBytes, fetch.WithUserAgent("duplik8/"+Version)),
		Decoder:    decoder,
		Recognizer: recognizer,
	})

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildEngines creates one handle per worker. Tesseract handles are
// independent; the Rekognition client is thread-safe, so every pool slot
// shares one.
func buildEngines(ctx context.Context, cfg *config.Config) ([]ocr.Engine, error) {
	engines := make([]ocr.Engine, 0, cfg.OCR.Workers)

	switch cfg.OCR.Engine {
	case config.EngineRekognition:
		e, err := rekognition.NewFromRegion(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		for i := 0; i < cfg.OCR.Workers; i++ {
			engines = append(engines, e)
		}

	default:
		for i := 0; i < cfg.OCR.Workers; i++ {
			e, err := tesseract.New(tesseract.Config{
				Language:       cfg.OCR.Language,
				TessdataPrefix: cfg.OCR.TessdataPrefix,
				AngleCls:       cfg.OCR.AngleCls,
			})
			if err != nil {
				for _, built := range engines {
					built.Close()
				}
				return nil, err
			}
			engines = append(engines, e)
		}
	}

	return engines, nil
}

func printHelp() {
	fmt.Println("duplik8 - HTTP service that runs OCR on images fetched by URL")
	fmt.Println()
	fmt.Println("Usage: duplik8 [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Endpoints:")
	fmt.Println("  GET  /           Health check")
	fmt.Println("  POST /analyze    {\"image_url\": \"...\"} -> recognised text lines")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  BASIC_AUTH_USERNAME          Require this username on /analyze")
	fmt.Println("  BASIC_AUTH_PASSWORD          Require this password on /analyze")
	fmt.Println("  DUPLIK8_LISTEN_ADDR=:8000    Listen address")
	fmt.Println("  DUPLIK8_LOG_LEVEL=debug      Enable debug logging")
	fmt.Println("  DUPLIK8_FETCH_TIMEOUT=10s    Image download timeout")
	fmt.Println("  DUPLIK8_MAX_IMAGE_BYTES      Download size cap (default 20 MiB)")
	fmt.Println("  DUPLIK8_MAX_IMAGE_PIXELS     Decoded size cap in pixels (default 64 MiP)")
	fmt.Println("  DUPLIK8_OCR_ENGINE           tesseract (default) or rekognition")
	fmt.Println("  DUPLIK8_OCR_LANGUAGE=eng     Tesseract language(s), joined with +")
	fmt.Println("  DUPLIK8_OCR_WORKERS=1        Concurrent recognitions")
	fmt.Println("  DUPLIK8_OCR_ANGLE_CLS=true   Detect text orientation")
	fmt.Println("  DUPLIK8_CONFIG               Optional YAML config file")
	fmt.Println()
	fmt.Println("A .env file in the working directory is loaded if present.")
}
