package config

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Upload   UploadConfig
	Document DocumentConfig
	Photo    PhotoConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// GeminiConfig holds model settings only. The API key is supplied by the
// user with every request and never read from the environment by the server.
type GeminiConfig struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	Timeout         time.Duration
	// BaseURL overrides the Gemini API endpoint, e.g. for a gateway. Empty
	// uses the SDK default.
	BaseURL string
}

type UploadConfig struct {
	MaxFileSize int64
}

type DocumentConfig struct {
	Title    string
	FileName string
	// StripMarkdown removes heading markers, "-"/"*" bullets, emphasis and
	// link syntax from model output lines. Off by default so that lines are
	// kept verbatim.
	StripMarkdown bool
}

type PhotoConfig struct {
	MaxBorder    int
	PreviewWidth int
	FillColor    color.RGBA
	// MaxPixels bounds width*height of an uploaded photo, checked from the
	// image header before the pixels are decoded.
	MaxPixels int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	fill, err := ParseHexColor(getEnv("PHOTO_FILL_COLOR", "#000000"))
	if err != nil {
		log.Printf("⚠️  Invalid PHOTO_FILL_COLOR, using black: %v\n", err)
		fill = color.RGBA{A: 0xff}
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.7),
			MaxOutputTokens: int32(getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 4096)),
			Timeout:         getEnvAsDuration("GEMINI_TIMEOUT", "120s"),
			BaseURL:         getEnv("GEMINI_BASE_URL", ""),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Document: DocumentConfig{
			Title:         getEnv("DOCUMENT_TITLE", "Curriculum Vitae"),
			FileName:      getEnv("DOCUMENT_FILE_NAME", "CV.docx"),
			StripMarkdown: getEnvAsBool("DOCUMENT_STRIP_MARKDOWN", false),
		},
		Photo: PhotoConfig{
			MaxBorder:    getEnvAsInt("PHOTO_MAX_BORDER", 50),
			PreviewWidth: getEnvAsInt("PHOTO_PREVIEW_WIDTH", 300),
			FillColor:    fill,
			MaxPixels:    getEnvAsInt("PHOTO_MAX_PIXELS", 25_000_000),
		},
	}
}

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
