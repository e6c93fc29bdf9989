package handler

import (
	"go-warehouse-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GetInventory handles GET /inventory
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	rows, err := h.service.GetInventory()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// GetTransactionLogs handles GET /transaction-logs
func (h *InventoryHandler) GetTransactionLogs(c *fiber.Ctx) error {
	entries, err := h.service.GetTransactionLogs()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// GetActionLogs handles GET /action-logs
func (h *InventoryHandler) GetActionLogs(c *fiber.Ctx) error {
	entries, err := h.service.GetActionLogs()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
