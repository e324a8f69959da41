package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"alfredoptarigan/cv-rewriter/internal/config"
	"alfredoptarigan/cv-rewriter/internal/models"
)

const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type DocumentAssembler interface {
	Assemble(text string, language models.Language) *models.CVDocument
	Serialize(doc *models.CVDocument) ([]byte, error)
}

type documentAssembler struct {
	title    string
	stripper *MarkdownStripper
}

func NewDocumentAssembler(cfg config.DocumentConfig) DocumentAssembler {
	a := &documentAssembler{
		title: cfg.Title,
	}
	if a.title == "" {
		a.title = "Curriculum Vitae"
	}
	if cfg.StripMarkdown {
		a.stripper = NewMarkdownStripper()
	}
	return a
}

// Assemble implements DocumentAssembler. Every line whose trimmed form is
// non-empty becomes one paragraph, in order; blank lines are dropped.
func (a *documentAssembler) Assemble(text string, language models.Language) *models.CVDocument {
	doc := &models.CVDocument{
		Title:      a.title,
		Language:   language,
		Paragraphs: []string{},
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if a.stripper != nil {
			line = a.stripper.StripLine(line)
		}
		doc.Paragraphs = append(doc.Paragraphs, line)
	}

	return doc
}

// Serialize implements DocumentAssembler. The package is built entirely in
// memory on the go-docx default template.
func (a *documentAssembler) Serialize(doc *models.CVDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrAssembly)
	}

	w := docx.New().WithDefaultTheme()

	w.AddParagraph().Style("Title").AddText(doc.Title).Size(titleFontSize).Bold()
	for _, p := range doc.Paragraphs {
		w.AddParagraph().AddText(p)
	}
	w.WithA4Page()

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: failed to write docx: %w", ErrAssembly, err)
	}

	return buf.Bytes(), nil
}

// Half-points.
const titleFontSize = "36"
