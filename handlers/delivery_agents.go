package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshkart/freshkart-backend-go/models"
	"github.com/freshkart/freshkart-backend-go/services"
)

// DeliveryAgents holds the courier management handlers.
type DeliveryAgents struct {
	agents *services.Agents
}

func NewDeliveryAgents(agents *services.Agents) *DeliveryAgents {
	return &DeliveryAgents{agents: agents}
}

func (h *DeliveryAgents) Create(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	var req services.CreateAgentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	agent, err := h.agents.Create(c.Request().Context(), req, vendorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, agent)
}

func (h *DeliveryAgents) List(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	agents, err := h.agents.List(c.Request().Context(), vendorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch agents"})
	}
	if agents == nil {
		agents = []models.DeliveryAgent{}
	}

	return c.JSON(http.StatusOK, agents)
}

func (h *DeliveryAgents) Get(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	agent, err := h.agents.Get(c.Request().Context(), c.Param("id"), vendorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, agent)
}

func (h *DeliveryAgents) Update(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	var update services.AgentUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	agent, err := h.agents.Update(c.Request().Context(), c.Param("id"), update, vendorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, agent)
}

func (h *DeliveryAgents) Delete(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	if err := h.agents.Delete(c.Request().Context(), c.Param("id"), vendorID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Agent deleted successfully"})
}
