package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-rewriter/internal/models"
	"alfredoptarigan/cv-rewriter/internal/services"
)

type PhotoHandler struct {
	uploadService services.UploadService
	photoService  services.PhotoService
}

func NewPhotoHandler(
	uploadService services.UploadService,
	photoService services.PhotoService,
) *PhotoHandler {
	return &PhotoHandler{
		uploadService: uploadService,
		photoService:  photoService,
	}
}

// HandleBorder handles POST /photo/border
func (h *PhotoHandler) HandleBorder(c *fiber.Ctx) error {
	width := 0
	if raw := strings.TrimSpace(c.FormValue("width")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, models.KindInputError, "width must be an integer")
		}
		width = parsed
	}

	if width < 0 || width > h.photoService.MaxBorder() {
		return errorJSON(c, fiber.StatusBadRequest, models.KindInputError,
			fmt.Sprintf("width must be between 0 and %d", h.photoService.MaxBorder()))
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, models.KindInputError, "photo file is required")
	}

	data, err := h.uploadService.ReadImage(file)
	if err != nil {
		code := fiber.StatusBadRequest
		if errors.Is(err, services.ErrFileTooLarge) {
			code = fiber.StatusRequestEntityTooLarge
		}
		return errorJSON(c, code, models.KindInputError, err.Error())
	}

	img, format, err := h.photoService.Decode(data)
	if errors.Is(err, services.ErrImageTooLarge) {
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, models.KindInputError, err.Error())
	}
	if err != nil {
		return errorJSON(c, fiber.StatusUnprocessableEntity, models.KindInputError, "unsupported or corrupt image")
	}

	bordered, err := h.photoService.AddBorder(img, width)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, models.KindInputError, err.Error())
	}

	c.Set("X-Image-Width", strconv.Itoa(bordered.Bounds().Dx()))
	c.Set("X-Image-Height", strconv.Itoa(bordered.Bounds().Dy()))
	c.Set("X-Source-Format", format)

	out := bordered
	if wantPreview(c) {
		out = h.photoService.Preview(bordered)
	}

	encoded, err := h.photoService.EncodePNG(out)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(fiber.StatusOK).Send(encoded)
}

func wantPreview(c *fiber.Ctx) bool {
	raw := c.FormValue("preview")
	if raw == "" {
		raw = c.Query("preview")
	}
	preview, _ := strconv.ParseBool(raw)
	return preview
}
