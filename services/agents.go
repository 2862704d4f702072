package services

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshkart/freshkart-backend-go/models"
)

// AgentManagerStore is the persistence surface for agent CRUD.
type AgentManagerStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryAgent, error)
	ListByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.DeliveryAgent, error)
	Insert(ctx context.Context, agent *models.DeliveryAgent) error
	Update(ctx context.Context, id, vendorID primitive.ObjectID, update AgentUpdate) error
	Delete(ctx context.Context, id, vendorID primitive.ObjectID) error
}

// AgentUnassigner clears agent references on deliveries still waiting
// to be carried out when that agent is removed.
type AgentUnassigner interface {
	ClearActiveAssignments(ctx context.Context, vendorID, agentID primitive.ObjectID) error
}

// CreateAgentRequest is the validated payload for agent creation. The
// vendor comes from the authenticated session, never from the body.
type CreateAgentRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required,min=7"`
	VehicleType string `json:"vehicleType" validate:"required,oneof=bike car scooter other"`
}

// AgentUpdate carries the editable agent fields. There is deliberately
// no vendor field, so ownership cannot be reassigned through update.
type AgentUpdate struct {
	Name        string             `json:"name" validate:"required"`
	Phone       string             `json:"phone" validate:"required,min=7"`
	VehicleType models.VehicleType `json:"vehicleType" validate:"required,oneof=bike car scooter other"`
	Active      bool               `json:"active"`
}

// Agents implements vendor-scoped delivery agent management.
type Agents struct {
	store      AgentManagerStore
	deliveries AgentUnassigner
	validate   *validator.Validate
	now        func() time.Time
}

func NewAgents(store AgentManagerStore, deliveries AgentUnassigner) *Agents {
	return &Agents{
		store:      store,
		deliveries: deliveries,
		validate:   validator.New(),
		now:        time.Now,
	}
}

func (a *Agents) Create(ctx context.Context, req CreateAgentRequest, vendorID primitive.ObjectID) (*models.DeliveryAgent, error) {
	if err := a.validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}

	agent := &models.DeliveryAgent{
		ID:          primitive.NewObjectID(),
		VendorID:    vendorID,
		Name:        req.Name,
		Phone:       req.Phone,
		VehicleType: models.VehicleType(req.VehicleType),
		Active:      true,
		CreatedAt:   a.now(),
		UpdatedAt:   a.now(),
	}

	if err := a.store.Insert(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (a *Agents) List(ctx context.Context, vendorID primitive.ObjectID) ([]models.DeliveryAgent, error) {
	return a.store.ListByVendor(ctx, vendorID)
}

func (a *Agents) Get(ctx context.Context, agentID string, vendorID primitive.ObjectID) (*models.DeliveryAgent, error) {
	agent, err := a.authorized(ctx, agentID, vendorID)
	if err != nil {
		return nil, err
	}
	return agent, nil
}

func (a *Agents) Update(ctx context.Context, agentID string, update AgentUpdate, vendorID primitive.ObjectID) (*models.DeliveryAgent, error) {
	if err := a.validate.Struct(update); err != nil {
		return nil, asValidationError(err)
	}

	agent, err := a.authorized(ctx, agentID, vendorID)
	if err != nil {
		return nil, err
	}

	if err := a.store.Update(ctx, agent.ID, vendorID, update); err != nil {
		return nil, err
	}

	agent.Name = update.Name
	agent.Phone = update.Phone
	agent.VehicleType = update.VehicleType
	agent.Active = update.Active
	agent.UpdatedAt = a.now()
	return agent, nil
}

// Delete removes an agent and resets the agent's still-assigned
// deliveries to Pending Assignment. Completed or cancelled deliveries
// keep the reference as a historical record.
func (a *Agents) Delete(ctx context.Context, agentID string, vendorID primitive.ObjectID) error {
	agent, err := a.authorized(ctx, agentID, vendorID)
	if err != nil {
		return err
	}

	if err := a.store.Delete(ctx, agent.ID, vendorID); err != nil {
		return wrapStoreErr("delete agent", err)
	}
	return a.deliveries.ClearActiveAssignments(ctx, vendorID, agent.ID)
}

func (a *Agents) authorized(ctx context.Context, agentID string, vendorID primitive.ObjectID) (*models.DeliveryAgent, error) {
	aid, err := primitive.ObjectIDFromHex(agentID)
	if err != nil {
		return nil, ErrInvalidID
	}
	agent, err := a.store.FindByID(ctx, aid)
	if err != nil {
		return nil, err
	}
	if agent.VendorID != vendorID {
		return nil, ErrForbidden
	}
	return agent, nil
}

func asValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()[:1])+fe.Field()[1:])
	}
	return &ValidationError{Fields: fields}
}
