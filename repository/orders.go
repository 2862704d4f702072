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

// OrderRepository wraps the Order collection.
type OrderRepository struct {
	db *mongo.Database
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollOrders)
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// SetStatus performs the guarded update, filtering on both the order
// ID and the owning vendor.
func (r *OrderRepository) SetStatus(ctx context.Context, id, vendorID primitive.ObjectID, status models.OrderStatus) error {
	result, err := r.coll().UpdateOne(
		ctx,
		bson.M{"_id": id, "vendorId": vendorID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}
