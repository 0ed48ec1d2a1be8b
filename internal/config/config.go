// Package config loads the service configuration from the environment, an
// optional .env file and an optional YAML file.
//
// Every key can be set through an environment variable prefixed with DUPLIK8_
// (for example ocr.workers -> DUPLIK8_OCR_WORKERS). The basic-auth secrets are
// the exception: they are read from BASIC_AUTH_USERNAME and BASIC_AUTH_PASSWORD.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
)

// Engine names accepted by ocr.engine.
const (
	EngineTesseract   = "tesseract"
	EngineRekognition = "rekognition"
)

// Config holds all settings fixed at process startup.
type Config struct {
	ListenAddr  string `mapstructure:"listen_addr"`
	ServiceName string `mapstructure:"service_name"`
	LogLevel    string `mapstructure:"log_level"`

	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	MaxImageBytes   int64         `mapstructure:"max_image_bytes"`
	MaxImagePixels  int           `mapstructure:"max_image_pixels"`
	ImageBackground string        `mapstructure:"image_background"`

	Auth AuthConfig `mapstructure:"auth"`
	OCR  OCRConfig  `mapstructure:"ocr"`
	AWS  AWSConfig  `mapstructure:"aws"`
}

// AuthConfig holds the optional basic-auth secrets. Empty means unset.
type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// OCRConfig selects and tunes the recognition engine.
type OCRConfig struct {
	Engine         string `mapstructure:"engine"`
	Language       string `mapstructure:"language"`
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
	Workers        int    `mapstructure:"workers"`
	AngleCls       bool   `mapstructure:"angle_cls"`
	Grayscale      bool   `mapstructure:"grayscale"`
}

// AWSConfig is used only by the rekognition engine.
type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("service_name", "duplik8")
	v.SetDefault("log_level", "info")
	v.SetDefault("fetch_timeout", 10*time.Second)
	v.SetDefault("max_image_bytes", int64(20<<20))
	v.SetDefault("max_image_pixels", 64<<20)
	v.SetDefault("image_background", "#ffffff")

	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password", "")

	v.SetDefault("ocr.engine", EngineTesseract)
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.workers", 1)
	v.SetDefault("ocr.angle_cls", true)
	v.SetDefault("ocr.grayscale", false)

	v.SetDefault("aws.region", "us-east-1")
}

// Load reads the configuration. A missing .env file is not an error; a
// missing file named by DUPLIK8_CONFIG is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	return load(viper.New(), os.Getenv("DUPLIK8_CONFIG"))
}

func load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("DUPLIK8")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// BindEnv with explicit names bypasses the prefix.
	if err := v.BindEnv("auth.username", "BASIC_AUTH_USERNAME"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("auth.password", "BASIC_AUTH_PASSWORD"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("ocr.tessdata_prefix", "DUPLIK8_OCR_TESSDATA_PREFIX", "TESSDATA_PREFIX"); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("max_image_bytes must be positive, got %d", c.MaxImageBytes)
	}
	if c.MaxImagePixels <= 0 {
		return fmt.Errorf("max_image_pixels must be positive, got %d", c.MaxImagePixels)
	}
	if _, err := colorful.Hex(c.ImageBackground); err != nil {
		return fmt.Errorf("image_background %q is not a #rrggbb colour: %w", c.ImageBackground, err)
	}
	if c.OCR.Workers < 1 {
		return fmt.Errorf("ocr.workers must be at least 1, got %d", c.OCR.Workers)
	}
	switch c.OCR.Engine {
	case EngineTesseract, EngineRekognition:
	default:
		return fmt.Errorf("unknown ocr.engine %q", c.OCR.Engine)
	}
	if c.OCR.Language == "" {
		return errors.New("ocr.language must not be empty")
	}
	return nil
}
