package handler

import (
	"go-warehouse-ws/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper untuk ambil User Info dari JWT Context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system" // Fallback jika tidak ada (shouldn't happen in protected routes)
	}
	return userID.(string)
}

func getActorUUID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(getUserID(c))
}

// respondError maps the error taxonomy to HTTP status codes. Raw storage
// errors never leak; callers see the generic infrastructure message.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		status = fiber.StatusBadRequest
	case apperror.KindNotFound:
		status = fiber.StatusNotFound
	case apperror.KindInvalidState:
		status = fiber.StatusConflict
	case apperror.KindUnauthorized:
		status = fiber.StatusUnauthorized
	}

	body := fiber.Map{
		"error": err.Error(),
		"kind":  string(apperror.KindOf(err)),
	}
	if details := apperror.DetailsOf(err); len(details) > 0 {
		body["details"] = details
	}
	return c.Status(status).JSON(body)
}
