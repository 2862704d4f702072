package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleType string

const (
	VehicleBike    VehicleType = "bike"
	VehicleCar     VehicleType = "car"
	VehicleScooter VehicleType = "scooter"
	VehicleOther   VehicleType = "other"
)

type DeliveryAgent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VendorID    primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	Name        string             `bson:"name" json:"name"`
	Phone       string             `bson:"phone" json:"phone"`
	VehicleType VehicleType        `bson:"vehicleType" json:"vehicleType"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
