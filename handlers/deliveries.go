package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshkart/freshkart-backend-go/metrics"
	"github.com/freshkart/freshkart-backend-go/models"
	"github.com/freshkart/freshkart-backend-go/repository"
	"github.com/freshkart/freshkart-backend-go/services"
)

// VendorDeliveries holds the delivery dashboard handlers.
type VendorDeliveries struct {
	lifecycle *services.Lifecycle
	repo      *repository.DeliveryRepository
}

func NewVendorDeliveries(lifecycle *services.Lifecycle, repo *repository.DeliveryRepository) *VendorDeliveries {
	return &VendorDeliveries{lifecycle: lifecycle, repo: repo}
}

// List returns the vendor's deliveries, optionally filtered by status.
func (h *VendorDeliveries) List(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	status := c.QueryParam("status")
	if status != "" {
		if _, err := models.ParseDeliveryStatus(status); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status filter"})
		}
	}

	deliveries, err := h.repo.ListByVendor(c.Request().Context(), vendorID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch deliveries"})
	}
	if deliveries == nil {
		deliveries = []models.Delivery{}
	}

	return c.JSON(http.StatusOK, deliveries)
}

// UpdateStatus handles PUT /api/vendor/deliveries/:id/status with body
// {"newStatus": ...}.
func (h *VendorDeliveries) UpdateStatus(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	var req struct {
		NewStatus string `json:"newStatus"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	delivery, err := h.lifecycle.UpdateDeliveryStatus(c.Request().Context(), c.Param("id"), req.NewStatus, vendorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, delivery)
}

// Assign handles PUT /api/vendor/deliveries/:id/assign with body
// {"agentId": <string|null>}. A null agentId unassigns.
func (h *VendorDeliveries) Assign(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	var req struct {
		AgentID *string `json:"agentId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	delivery, err := h.lifecycle.AssignAgent(c.Request().Context(), c.Param("id"), req.AgentID, vendorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if req.AgentID != nil {
		metrics.CountAgentAssignment()
	}
	return c.JSON(http.StatusOK, delivery)
}
