package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"alfredoptarigan/cv-rewriter/internal/models"
)

type CVPipeline interface {
	// Run performs one rewrite action. It never panics and never returns a
	// nil result; failures are reported through RewriteResult.Kind.
	Run(ctx context.Context, settings models.Settings, pdfData []byte) *models.RewriteResult
}

type cvPipeline struct {
	pdfParser     PDFParserService
	geminiService GeminiService
	assembler     DocumentAssembler
	promptBuilder *PromptBuilder
}

func NewCVPipeline(
	pdfParser PDFParserService,
	geminiService GeminiService,
	assembler DocumentAssembler,
) CVPipeline {
	return &cvPipeline{
		pdfParser:     pdfParser,
		geminiService: geminiService,
		assembler:     assembler,
		promptBuilder: NewPromptBuilder(),
	}
}

func (p *cvPipeline) Run(ctx context.Context, settings models.Settings, pdfData []byte) *models.RewriteResult {
	result := &models.RewriteResult{Language: settings.Language}
	reqID := RequestIDFromContext(ctx)

	if err := settings.Validate(); err != nil {
		if errors.Is(err, models.ErrMissingCredential) {
			return fail(result, models.KindCredentialError, "Please enter your API key before generating a CV.", err)
		}
		return fail(result, models.KindInputError, "Please choose one of the supported languages.", err)
	}

	// Step 1: Extract text
	log.Printf("📄 [%s] Extracting CV text...\n", reqID)
	text, err := p.pdfParser.ExtractText(pdfData)
	if err != nil {
		log.Printf("❌ [%s] Extraction failed: %v\n", reqID, err)
		return fail(result, models.KindExtractionError, extractionMessage(err), err)
	}
	result.ExtractedText = text

	// Step 2: Rewrite with Gemini
	prompt := p.promptBuilder.BuildCVRewritePrompt(text, settings.Language)
	log.Printf("🤖 [%s] Rewriting CV in %s (prompt length: %d characters)\n", reqID, settings.Language, len(prompt))

	rewritten, err := p.geminiService.GenerateText(ctx, settings.APIKey, prompt)
	if err != nil {
		log.Printf("❌ [%s] Rewrite call failed: %v\n", reqID, err)
		return fail(result, models.KindCallError, fmt.Sprintf("Error generating CV: %v", err), err)
	}
	result.RewrittenText = rewritten

	// Step 3: Assemble and serialize
	log.Printf("📝 [%s] Assembling document...\n", reqID)
	doc, file, err := p.assemble(rewritten, settings.Language)
	if err != nil {
		log.Printf("❌ [%s] Assembly failed: %v\n", reqID, err)
		return fail(result, models.KindAssemblyError, "Error creating the Word document. Please try again.", err)
	}

	result.Kind = models.KindSuccess
	result.Document = doc
	result.File = file

	log.Printf("✅ [%s] CV rewritten: %d paragraphs, %d bytes\n", reqID, len(doc.Paragraphs), len(file))
	return result
}

// assemble converts panics from the assembly step into ErrAssembly.
func (p *cvPipeline) assemble(text string, language models.Language) (doc *models.CVDocument, file []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, file = nil, nil
			err = fmt.Errorf("%w: %v", ErrAssembly, rec)
		}
	}()

	doc = p.assembler.Assemble(text, language)
	file, err = p.assembler.Serialize(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, file, nil
}

func fail(result *models.RewriteResult, kind models.ResultKind, message string, err error) *models.RewriteResult {
	result.Kind = kind
	result.Message = message
	result.Err = err
	result.Document = nil
	result.File = nil
	return result
}

func extractionMessage(err error) string {
	if errors.Is(err, ErrNoTextContent) {
		return "The PDF does not contain any extractable text."
	}
	return "Could not read the PDF file. Please upload a different file."
}
