package handler

import (
	"strconv"
	"time"

	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ImportOrderHandler struct {
	service service.ImportOrderService
}

func NewImportOrderHandler(s service.ImportOrderService) *ImportOrderHandler {
	return &ImportOrderHandler{service: s}
}

// ReviewOrderRequest is the body for the review endpoint
type ReviewOrderRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// CreateImportOrder handles POST /import-orders
func (h *ImportOrderHandler) CreateImportOrder(c *fiber.Ctx) error {
	var req service.CreateImportOrderRequest
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

	return c.Status(201).JSON(fiber.Map{"message": "Import order created", "data": resp})
}

// ReviewImportOrder handles PUT /import-orders/:id/review
// approve=true  => Pending -> Completed (stock masuk)
// approve=false => Pending -> Canceled  (stock tidak berubah)
func (h *ImportOrderHandler) ReviewImportOrder(c *fiber.Ctx) error {
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

	message := "Import order canceled"
	if req.Approve {
		message = "Import order completed and stock updated"
	}
	return c.JSON(fiber.Map{"message": message, "success": ok})
}

// GetImportOrders handles GET /import-orders with filters + paging
func (h *ImportOrderHandler) GetImportOrders(c *fiber.Ctx) error {
	filter := repository.ImportOrderListFilter{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
	}

	if providerID := c.QueryInt("providerId", 0); providerID > 0 {
		id := uint(providerID)
		filter.ProviderID = &id
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

// GetImportOrder handles GET /import-orders/:id
func (h *ImportOrderHandler) GetImportOrder(c *fiber.Ctx) error {
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
