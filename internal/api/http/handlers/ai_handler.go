package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studypay-service/internal/api/dto"
	"github.com/spec-kit/studypay-service/internal/auth"
	"github.com/spec-kit/studypay-service/internal/service"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// AIHandler exposes the generative-content relay.
type AIHandler struct {
	ai *service.AIService
}

// NewAIHandler constructs handler.
func NewAIHandler(ai *service.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

// Generate handles POST /ai/request.
func (h *AIHandler) Generate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AIGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	text, err := h.ai.GenerateText(c.Context(), principal.User, req.Prompt)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AIGenerateResponse{Text: text}})
}
