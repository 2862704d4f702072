package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DeliveryStatus string

const (
	DeliveryStatusPendingAssignment DeliveryStatus = "Pending Assignment"
	DeliveryStatusAssigned          DeliveryStatus = "Assigned"
	DeliveryStatusOutForDelivery    DeliveryStatus = "Out for Delivery"
	DeliveryStatusDelivered         DeliveryStatus = "Delivered"
	DeliveryStatusAttempted         DeliveryStatus = "Attempted Delivery"
	DeliveryStatusCancelled         DeliveryStatus = "Cancelled"
	DeliveryStatusDelayed           DeliveryStatus = "Delayed"
)

var deliveryStatuses = map[DeliveryStatus]bool{
	DeliveryStatusPendingAssignment: true,
	DeliveryStatusAssigned:          true,
	DeliveryStatusOutForDelivery:    true,
	DeliveryStatusDelivered:         true,
	DeliveryStatusAttempted:         true,
	DeliveryStatusCancelled:         true,
	DeliveryStatusDelayed:           true,
}

// ParseDeliveryStatus converts a wire string into a known status.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	status := DeliveryStatus(s)
	if !deliveryStatuses[status] {
		return "", fmt.Errorf("unknown delivery status %q", s)
	}
	return status, nil
}

// AllowsAgent reports whether a delivery in status s may carry an
// agent reference. Pending Assignment never does; every other status
// sits at or past the assignment point of the happy path.
func (s DeliveryStatus) AllowsAgent() bool {
	return s != DeliveryStatusPendingAssignment
}

type Delivery struct {
	ID                    primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderID               primitive.ObjectID  `bson:"orderId" json:"orderId"`
	CustomerID            primitive.ObjectID  `bson:"customerId" json:"customerId"`
	VendorID              primitive.ObjectID  `bson:"vendorId" json:"vendorId"`
	Address               Address             `bson:"address" json:"address"`
	Status                DeliveryStatus      `bson:"status" json:"status"`
	DeliveryAgentID       *primitive.ObjectID `bson:"deliveryAgentId,omitempty" json:"deliveryAgentId,omitempty"`
	ScheduledPickupTime   *time.Time          `bson:"scheduledPickupTime,omitempty" json:"scheduledPickupTime,omitempty"`
	ActualPickupTime      *time.Time          `bson:"actualPickupTime,omitempty" json:"actualPickupTime,omitempty"`
	ScheduledDeliveryTime *time.Time          `bson:"scheduledDeliveryTime,omitempty" json:"scheduledDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time          `bson:"actualDeliveryTime,omitempty" json:"actualDeliveryTime,omitempty"`
	CreatedAt             time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time           `bson:"updatedAt" json:"updatedAt"`
}
