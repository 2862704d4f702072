package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshkart/freshkart-backend-go/config"
)

// Collection names used across the repository layer.
const (
	CollCustomers      = "customers"
	CollVendors        = "Vendor"
	CollProducts       = "Product"
	CollCarts          = "Cart"
	CollOrders         = "Order"
	CollDeliveries     = "Delivery"
	CollDeliveryAgents = "DeliveryAgent"
)

var DB *mongo.Database

// ConnectDB connects to MongoDB and bootstraps the indexes the
// application relies on. Must be called before any handler runs.
func ConnectDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoURI := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return err
	}

	// Ping the database
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	DB = client.Database(config.GetEnv("MONGODB_DB", "freshkart"))
	log.Println("Connected to MongoDB")

	return ensureIndexes(ctx)
}

// ensureIndexes creates the indexes the store cannot work without.
// The agent phone index is compound on vendorId so two vendors may
// employ agents sharing a phone, but one vendor may not register the
// same phone twice.
func ensureIndexes(ctx context.Context) error {
	agentPhone := mongo.IndexModel{
		Keys:    bson.D{{Key: "vendorId", Value: 1}, {Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := DB.Collection(CollDeliveryAgents).Indexes().CreateOne(ctx, agentPhone); err != nil {
		return err
	}

	customerEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := DB.Collection(CollCustomers).Indexes().CreateOne(ctx, customerEmail); err != nil {
		return err
	}

	vendorEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := DB.Collection(CollVendors).Indexes().CreateOne(ctx, vendorEmail)
	return err
}
