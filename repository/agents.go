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

// AgentRepository wraps the DeliveryAgent collection.
type AgentRepository struct {
	db *mongo.Database
}

func NewAgentRepository(db *mongo.Database) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollDeliveryAgents)
}

func (r *AgentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&agent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &agent, nil
}

func (r *AgentRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.DeliveryAgent, error) {
	cursor, err := r.coll().Find(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var agents []models.DeliveryAgent
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *AgentRepository) Insert(ctx context.Context, agent *models.DeliveryAgent) error {
	_, err := r.coll().InsertOne(ctx, agent)
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrDuplicatePhone
	}
	return err
}

func (r *AgentRepository) Update(ctx context.Context, id, vendorID primitive.ObjectID, update services.AgentUpdate) error {
	result, err := r.coll().UpdateOne(
		ctx,
		bson.M{"_id": id, "vendorId": vendorID},
		bson.M{"$set": bson.M{
			"name":        update.Name,
			"phone":       update.Phone,
			"vehicleType": update.VehicleType,
			"active":      update.Active,
			"updatedAt":   time.Now(),
		}},
	)
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrDuplicatePhone
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *AgentRepository) Delete(ctx context.Context, id, vendorID primitive.ObjectID) error {
	result, err := r.coll().DeleteOne(ctx, bson.M{"_id": id, "vendorId": vendorID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}
