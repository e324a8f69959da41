package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"alfredoptarigan/cv-rewriter/internal/config"
	"alfredoptarigan/cv-rewriter/internal/models"
	"alfredoptarigan/cv-rewriter/internal/services"
)

type options struct {
	input    string
	output   string
	language string
	apiKey   string
	dryRun   bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("rewrite_cv", flag.ContinueOnError)
	fs.StringVarP(&opts.input, "in", "i", "", "input CV in PDF format (required)")
	fs.StringVarP(&opts.output, "out", "o", "", "output .docx path (default: DOCUMENT_FILE_NAME)")
	fs.StringVarP(&opts.language, "lang", "l", "English", "target language name or code")
	fs.StringVar(&opts.apiKey, "api-key", "", "Gemini API key (default: $GEMINI_API_KEY)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the paragraphs instead of writing the file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.input == "" {
		return nil, fmt.Errorf("--in is required")
	}
	if opts.apiKey == "" {
		opts.apiKey = os.Getenv("GEMINI_API_KEY")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	cfg := config.Load()
	if opts.output == "" {
		opts.output = cfg.Document.FileName
	}

	language, err := models.ParseLanguage(opts.language)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", opts.input, err)
	}

	pipeline := services.NewCVPipeline(
		services.NewPDFParserService(),
		services.NewGeminiService(cfg.Gemini),
		services.NewDocumentAssembler(cfg.Document),
	)

	runID := uuid.NewString()
	log.Printf("🚀 Rewriting %s in %s (run %s)", opts.input, language, runID)

	ctx := services.WithRequestID(context.Background(), runID)
	result := pipeline.Run(ctx, models.Settings{APIKey: opts.apiKey, Language: language}, data)
	if !result.OK() {
		log.Fatalf("❌ %s (%s): %v", result.Message, result.Kind, result.Err)
	}

	if opts.dryRun {
		fmt.Println(result.Document.Title)
		fmt.Println(strings.Repeat("=", len(result.Document.Title)))
		for _, p := range result.Document.Paragraphs {
			fmt.Println(p)
		}
		return
	}

	if err := os.WriteFile(opts.output, result.File, 0o644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", opts.output, err)
	}

	log.Printf("✅ Wrote %s (%d paragraphs)", opts.output, len(result.Document.Paragraphs))
}
