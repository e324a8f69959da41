package services

import (
	"fmt"

	"alfredoptarigan/cv-rewriter/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCVRewritePrompt creates the single instruction sent to the model.
func (pb *PromptBuilder) BuildCVRewritePrompt(cvText string, language models.Language) string {
	return fmt.Sprintf(`You are an expert career coach and professional CV writer.

Rewrite the following CV so that it reads as a polished, professional Curriculum Vitae written in %s.

Rules:
- Keep every fact from the original: names, dates, employers, degrees and skills. Do not invent anything.
- Improve wording, structure and clarity. Use concise, achievement-oriented sentences.
- Write one section heading or paragraph per line. Separate sections with a blank line.
- Return ONLY the rewritten CV text in %s, without any introduction or closing remarks.

ORIGINAL CV:
%s`,
		language, language, CleanText(cvText))
}
