package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"alfredoptarigan/cv-rewriter/internal/config"
	"alfredoptarigan/cv-rewriter/internal/handlers"
	"alfredoptarigan/cv-rewriter/internal/services"
)

func main() {
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env,
	// in which case the runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(log.Printf))

	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	uploadService := services.NewUploadService(cfg.Upload.MaxFileSize)
	pdfParser := services.NewPDFParserService()
	geminiService := services.NewGeminiService(cfg.Gemini)
	assembler := services.NewDocumentAssembler(cfg.Document)
	photoService := services.NewPhotoService(cfg.Photo)
	log.Println("✅ Services initialized successfully")

	pipeline := services.NewCVPipeline(pdfParser, geminiService, assembler)
	log.Printf("✅ CV pipeline initialized (model: %s, timeout: %s)\n", cfg.Gemini.Model, cfg.Gemini.Timeout)

	// Initialize Handlers
	app := handlers.NewApp(handlers.Handlers{
		CV:       handlers.NewCVHandler(uploadService, pipeline, cfg.Document.FileName),
		Photo:    handlers.NewPhotoHandler(uploadService, photoService),
		Language: handlers.NewLanguageHandler(),
	}, cfg.Upload.MaxFileSize)
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
