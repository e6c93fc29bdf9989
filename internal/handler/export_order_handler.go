package handler

import (
	"strconv"
	"time"

	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExportOrderHandler struct {
	service service.ExportOrderService
}

func NewExportOrderHandler(s service.ExportOrderService) *ExportOrderHandler {
	return &ExportOrderHandler{service: s}
}

// CreateExportOrder handles POST /export-orders
func (h *ExportOrderHandler) CreateExportOrder(c *fiber.Ctx) error {
	var req service.CreateExportOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actorID, err := getActorUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	resp, err := h.service.Create(actorID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Export order created", "data": resp})
}

// ReviewExportOrder handles PUT /export-orders/:id/review
func (h *ExportOrderHandler) ReviewExportOrder(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req ReviewOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	reviewerID, err := getActorUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	ok, err := h.service.Review(uint(orderID), reviewerID, req.Approve, req.Note)
	if err != nil {
		return respondError(c, err)
	}

	message := "Export order canceled"
	if req.Approve {
		message = "Export order completed and stock updated"
	}
	return c.JSON(fiber.Map{"message": message, "success": ok})
}

// GetExportOrders handles GET /export-orders with filters + paging
func (h *ExportOrderHandler) GetExportOrders(c *fiber.Ctx) error {
	filter := repository.ExportOrderListFilter{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
	}

	if customerID := c.QueryInt("customerId", 0); customerID > 0 {
		id := uint(customerID)
		filter.CustomerID = &id
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'from' date, use YYYY-MM-DD"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'to' date, use YYYY-MM-DD"})
		}
		filter.To = &t
	}

	result, err := h.service.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetExportOrder handles GET /export-orders/:id
func (h *ExportOrderHandler) GetExportOrder(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	detail, err := h.service.GetDetail(uint(orderID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}
