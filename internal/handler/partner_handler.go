package handler

import (
	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type PartnerHandler struct {
	partnerRepo  repository.PartnerRepository
	locationRepo repository.LocationRepository
}

func NewPartnerHandler(partnerRepo repository.PartnerRepository, locationRepo repository.LocationRepository) *PartnerHandler {
	return &PartnerHandler{partnerRepo: partnerRepo, locationRepo: locationRepo}
}

// GetPartners handles GET /partners?kind=PROVIDER|CUSTOMER
func (h *PartnerHandler) GetPartners(c *fiber.Ctx) error {
	kind := model.PartnerKind(c.Query("kind"))
	partners, err := h.partnerRepo.FindAll(kind)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch partners"})
	}
	return c.JSON(partners)
}

// GetLocations handles GET /locations
func (h *PartnerHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.locationRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch locations"})
	}
	return c.JSON(locations)
}
