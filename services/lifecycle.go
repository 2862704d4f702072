package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshkart/freshkart-backend-go/models"
)

// OrderStore is the order persistence surface the lifecycle needs.
type OrderStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	SetStatus(ctx context.Context, id, vendorID primitive.ObjectID, status models.OrderStatus) error
}

// DeliveryStore is the delivery persistence surface the lifecycle needs.
type DeliveryStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Delivery, error)
	Create(ctx context.Context, delivery *models.Delivery) error
	ApplyState(ctx context.Context, id, vendorID primitive.ObjectID, change DeliveryStateChange) error
}

// AgentStore is the agent lookup surface the lifecycle needs.
type AgentStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryAgent, error)
}

// DeliveryStateChange is the full set of fields a delivery status move
// touches. Both the assign and the set-status paths build one through
// NewDeliveryStateChange, so agent clearing and timestamp stamping
// cannot drift between the two call sites.
type DeliveryStateChange struct {
	Status             models.DeliveryStatus
	AgentID            *primitive.ObjectID
	ActualPickupTime   *time.Time
	ActualDeliveryTime *time.Time
}

// NewDeliveryStateChange derives the persisted consequences of moving
// a delivery to status. Pending Assignment always clears the agent
// reference regardless of the agentID argument; Out for Delivery
// stamps the pickup time and Delivered the delivery time.
func NewDeliveryStateChange(status models.DeliveryStatus, agentID *primitive.ObjectID, now time.Time) DeliveryStateChange {
	change := DeliveryStateChange{Status: status, AgentID: agentID}
	if !status.AllowsAgent() {
		change.AgentID = nil
	}
	switch status {
	case models.DeliveryStatusOutForDelivery:
		change.ActualPickupTime = &now
	case models.DeliveryStatusDelivered:
		change.ActualDeliveryTime = &now
	}
	return change
}

// Lifecycle implements the order and delivery fulfillment operations.
type Lifecycle struct {
	orders     OrderStore
	deliveries DeliveryStore
	agents     AgentStore
	now        func() time.Time
}

func NewLifecycle(orders OrderStore, deliveries DeliveryStore, agents AgentStore) *Lifecycle {
	return &Lifecycle{orders: orders, deliveries: deliveries, agents: agents, now: time.Now}
}

// UpdateOrderStatus advances an order along the transition table on
// behalf of the owning vendor. Moving Pending -> Preparing also
// creates the paired Delivery document, since that is the point the
// order enters fulfillment.
func (l *Lifecycle) UpdateOrderStatus(ctx context.Context, orderID, newStatus string, vendorID primitive.ObjectID) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrInvalidID
	}

	status, err := models.ParseOrderStatus(newStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	order, err := l.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, ErrForbidden
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := l.orders.SetStatus(ctx, oid, vendorID, status); err != nil {
		return nil, wrapStoreErr("update order status", err)
	}

	order.Status = status
	order.UpdatedAt = l.now()

	if status == models.OrderStatusPreparing {
		delivery := &models.Delivery{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			VendorID:   order.VendorID,
			Address:    order.DeliveryAddress,
			Status:     models.DeliveryStatusPendingAssignment,
			CreatedAt:  l.now(),
			UpdatedAt:  l.now(),
		}
		if err := l.deliveries.Create(ctx, delivery); err != nil {
			return nil, wrapStoreErr("create delivery", err)
		}
	}

	return order, nil
}

// AssignAgent binds an agent to a delivery, or unbinds when agentID is
// nil. An agent employed by another vendor is rejected before the
// delivery is touched.
func (l *Lifecycle) AssignAgent(ctx context.Context, deliveryID string, agentID *string, vendorID primitive.ObjectID) (*models.Delivery, error) {
	did, err := primitive.ObjectIDFromHex(deliveryID)
	if err != nil {
		return nil, ErrInvalidID
	}

	delivery, err := l.deliveries.FindByID(ctx, did)
	if err != nil {
		return nil, err
	}
	if delivery.VendorID != vendorID {
		return nil, ErrForbidden
	}

	var change DeliveryStateChange
	if agentID != nil {
		aid, err := primitive.ObjectIDFromHex(*agentID)
		if err != nil {
			return nil, ErrInvalidID
		}
		agent, err := l.agents.FindByID(ctx, aid)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrAgentNotFound
			}
			return nil, err
		}
		if agent.VendorID != vendorID {
			return nil, ErrForbidden
		}
		change = NewDeliveryStateChange(models.DeliveryStatusAssigned, &aid, l.now())
	} else {
		change = NewDeliveryStateChange(models.DeliveryStatusPendingAssignment, nil, l.now())
	}

	if err := l.deliveries.ApplyState(ctx, did, vendorID, change); err != nil {
		return nil, wrapStoreErr("assign agent", err)
	}

	applyChange(delivery, change, l.now())
	return delivery, nil
}

// UpdateDeliveryStatus advances a delivery independently of the
// assignment flow. The existing agent reference is carried along
// unless the target status disallows one.
func (l *Lifecycle) UpdateDeliveryStatus(ctx context.Context, deliveryID, newStatus string, vendorID primitive.ObjectID) (*models.Delivery, error) {
	did, err := primitive.ObjectIDFromHex(deliveryID)
	if err != nil {
		return nil, ErrInvalidID
	}

	status, err := models.ParseDeliveryStatus(newStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	delivery, err := l.deliveries.FindByID(ctx, did)
	if err != nil {
		return nil, err
	}
	if delivery.VendorID != vendorID {
		return nil, ErrForbidden
	}

	change := NewDeliveryStateChange(status, delivery.DeliveryAgentID, l.now())
	if err := l.deliveries.ApplyState(ctx, did, vendorID, change); err != nil {
		return nil, wrapStoreErr("update delivery status", err)
	}

	applyChange(delivery, change, l.now())
	return delivery, nil
}

func applyChange(d *models.Delivery, change DeliveryStateChange, now time.Time) {
	d.Status = change.Status
	d.DeliveryAgentID = change.AgentID
	if change.ActualPickupTime != nil {
		d.ActualPickupTime = change.ActualPickupTime
	}
	if change.ActualDeliveryTime != nil {
		d.ActualDeliveryTime = change.ActualDeliveryTime
	}
	d.UpdatedAt = now
}
