package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-rewriter/internal/models"
	"alfredoptarigan/cv-rewriter/internal/services"
)

const apiKeyHeader = "X-Api-Key"

type CVHandler struct {
	uploadService services.UploadService
	pipeline      services.CVPipeline
	fileName      string
}

func NewCVHandler(
	uploadService services.UploadService,
	pipeline services.CVPipeline,
	fileName string,
) *CVHandler {
	return &CVHandler{
		uploadService: uploadService,
		pipeline:      pipeline,
		fileName:      fileName,
	}
}

// HandleRewrite handles POST /cv/rewrite and answers with the .docx file.
func (h *CVHandler) HandleRewrite(c *fiber.Ctx) error {
	result, err := h.rewrite(c)
	if err != nil || result == nil {
		return err
	}

	c.Attachment(h.fileName)
	c.Set(fiber.HeaderContentType, services.DocxContentType)
	return c.Status(fiber.StatusOK).Send(result.File)
}

// HandlePreview handles POST /cv/rewrite/preview and answers with the
// generated paragraphs as JSON instead of a file.
func (h *CVHandler) HandlePreview(c *fiber.Ctx) error {
	result, err := h.rewrite(c)
	if err != nil || result == nil {
		return err
	}

	return c.JSON(models.RewritePreviewResponse{
		Language:   string(result.Language),
		Title:      result.Document.Title,
		Paragraphs: result.Document.Paragraphs,
		Text:       result.RewrittenText,
	})
}

// rewrite runs the pipeline for the request. When the returned result is
// nil the error response has already been written.
func (h *CVHandler) rewrite(c *fiber.Ctx) (*models.RewriteResult, error) {
	settings, err := settingsFromRequest(c)
	if err != nil {
		if errors.Is(err, models.ErrMissingCredential) {
			return nil, errorJSON(c, fiber.StatusUnauthorized, models.KindCredentialError, "API key is required")
		}
		return nil, errorJSON(c, fiber.StatusBadRequest, models.KindInputError, err.Error())
	}

	file, err := c.FormFile("cv")
	if err != nil {
		return nil, errorJSON(c, fiber.StatusBadRequest, models.KindInputError, "cv file is required")
	}

	data, err := h.uploadService.ReadPDF(file)
	if err != nil {
		code := fiber.StatusBadRequest
		if errors.Is(err, services.ErrFileTooLarge) {
			code = fiber.StatusRequestEntityTooLarge
		}
		return nil, errorJSON(c, code, models.KindInputError, err.Error())
	}

	ctx := services.WithRequestID(c.UserContext(), c.GetRespHeader(fiber.HeaderXRequestID))
	result := h.pipeline.Run(ctx, settings, data)
	if !result.OK() {
		return nil, errorJSON(c, statusForKind(result.Kind), result.Kind, result.Message)
	}

	return result, nil
}

func settingsFromRequest(c *fiber.Ctx) (models.Settings, error) {
	apiKey := strings.TrimSpace(c.Get(apiKeyHeader))
	if apiKey == "" {
		apiKey = strings.TrimSpace(c.FormValue("api_key"))
	}

	language := models.LanguageEnglish
	if raw := c.FormValue("language"); strings.TrimSpace(raw) != "" {
		parsed, err := models.ParseLanguage(raw)
		if err != nil {
			return models.Settings{}, err
		}
		language = parsed
	}

	settings := models.Settings{APIKey: apiKey, Language: language}
	if err := settings.Validate(); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
