package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-rewriter/internal/models"
)

type LanguageHandler struct{}

func NewLanguageHandler() *LanguageHandler {
	return &LanguageHandler{}
}

// HandleList handles GET /languages
func (h *LanguageHandler) HandleList(c *fiber.Ctx) error {
	var options []models.LanguageOption
	for _, lang := range models.SupportedLanguages() {
		options = append(options, models.LanguageOption{
			Name: string(lang),
			Code: lang.Code(),
		})
	}

	return c.JSON(models.LanguageResponse{
		Languages: options,
		Default:   string(models.LanguageEnglish),
	})
}
