package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"textverse/internal/sync/ports/storage"
	"textverse/pkg/logger"
)

// publicNoteResponse - проекция заметки для неаутентифицированного чтения.
type publicNoteResponse struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	LastEdited time.Time `json:"last_edited"`
}

// PublicHandler обслуживает чтение опубликованных заметок по publicId.
type PublicHandler struct {
	backend storage.Backend
}

// NewPublicHandler создает обработчик публичных заметок.
func NewPublicHandler(backend storage.Backend) *PublicHandler {
	return &PublicHandler{backend: backend}
}

// GetPublicNote возвращает опубликованную заметку по publicId.
func (h *PublicHandler) GetPublicNote(c fiber.Ctx) error {
	ctx := c.Context()
	publicID := c.Params("public_id")

	record, err := h.backend.PublicNote(ctx, publicID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to resolve public note", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load note",
		})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Note not found",
		})
	}

	note, err := h.backend.Note(ctx, record.UID, record.ID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to load shared note", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load note",
		})
	}
	if note == nil {
		// Запись публикации пережила заметку; считаем ссылку отозванной.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Note not found",
		})
	}

	return c.JSON(publicNoteResponse{
		Title:      note.Title,
		Content:    note.Content,
		LastEdited: note.LastEdited,
	})
}
