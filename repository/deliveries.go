package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshkart/freshkart-backend-go/database"
	"github.com/freshkart/freshkart-backend-go/models"
	"github.com/freshkart/freshkart-backend-go/services"
)

// DeliveryRepository wraps the Delivery collection.
type DeliveryRepository struct {
	db *mongo.Database
}

func NewDeliveryRepository(db *mongo.Database) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollDeliveries)
}

func (r *DeliveryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&delivery)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

func (r *DeliveryRepository) Create(ctx context.Context, delivery *models.Delivery) error {
	if delivery.ID.IsZero() {
		delivery.ID = primitive.NewObjectID()
	}
	_, err := r.coll().InsertOne(ctx, delivery)
	return err
}

// ApplyState writes one delivery state change. Clearing the agent is
// an $unset so an unassigned delivery carries no deliveryAgentId field
// at all.
func (r *DeliveryRepository) ApplyState(ctx context.Context, id, vendorID primitive.ObjectID, change services.DeliveryStateChange) error {
	set := bson.M{"status": change.Status, "updatedAt": time.Now()}
	if change.ActualPickupTime != nil {
		set["actualPickupTime"] = change.ActualPickupTime
	}
	if change.ActualDeliveryTime != nil {
		set["actualDeliveryTime"] = change.ActualDeliveryTime
	}

	update := bson.M{"$set": set}
	if change.AgentID != nil {
		set["deliveryAgentId"] = change.AgentID
	} else {
		update["$unset"] = bson.M{"deliveryAgentId": ""}
	}

	result, err := r.coll().UpdateOne(ctx, bson.M{"_id": id, "vendorId": vendorID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

// ListByVendor returns the vendor's deliveries, optionally filtered by
// status, newest first.
func (r *DeliveryRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID, status string) ([]models.Delivery, error) {
	filter := bson.M{"vendorId": vendorID}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.coll().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var deliveries []models.Delivery
	if err := cursor.All(ctx, &deliveries); err != nil {
		return nil, err
	}
	return deliveries, nil
}

// ClearActiveAssignments resets the agent's still-Assigned deliveries
// to Pending Assignment. Terminal deliveries keep the reference as a
// historical record.
func (r *DeliveryRepository) ClearActiveAssignments(ctx context.Context, vendorID, agentID primitive.ObjectID) error {
	_, err := r.coll().UpdateMany(
		ctx,
		bson.M{
			"vendorId":        vendorID,
			"deliveryAgentId": agentID,
			"status":          models.DeliveryStatusAssigned,
		},
		bson.M{
			"$set":   bson.M{"status": models.DeliveryStatusPendingAssignment, "updatedAt": time.Now()},
			"$unset": bson.M{"deliveryAgentId": ""},
		},
	)
	return err
}
