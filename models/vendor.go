package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreSettings is the vendor-editable slice of the Vendor document.
type StoreSettings struct {
	Description      string  `bson:"description" json:"description"`
	Address          Address `bson:"address" json:"address"`
	Open             bool    `bson:"open" json:"open"`
	DeliveryRadiusKm float64 `bson:"deliveryRadiusKm" json:"deliveryRadiusKm"`
	MinOrderAmount   float64 `bson:"minOrderAmount" json:"minOrderAmount"`
}

type Vendor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StoreName string             `bson:"storeName" json:"storeName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Settings  StoreSettings      `bson:"settings" json:"settings"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
