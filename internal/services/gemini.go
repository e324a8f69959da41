package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/cv-rewriter/internal/config"
)

type GeminiService interface {
	GenerateText(ctx context.Context, apiKey, prompt string) (string, error)
}

type geminiService struct {
	modelName       string
	temperature     float32
	maxOutputTokens int32
	timeout         time.Duration
	baseURL         string
}

func NewGeminiService(cfg config.GeminiConfig) GeminiService {
	return &geminiService{
		modelName:       cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
		timeout:         cfg.Timeout,
		baseURL:         cfg.BaseURL,
	}
}

// GenerateText implements GeminiService. The client is built per call
// because every user brings their own API key. Exactly one request is made.
func (g *geminiService) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create gemini client: %w", ErrGeneration, err)
	}

	temperature := g.temperature
	generateConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxOutputTokens,
	}

	resp, err := client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), generateConfig)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	if resp == nil {
		log.Println("❌ Gemini API returned nil response")
		return "", fmt.Errorf("%w: nil response", ErrEmptyResponse)
	}

	text := resp.Text()
	if text == "" {
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			log.Printf("❌ No text content in response (finish reason: %s)\n", resp.Candidates[0].FinishReason)
		}
		return "", ErrEmptyResponse
	}

	log.Printf("📊 Gemini response received: %d characters\n", len(text))
	return text, nil
}
