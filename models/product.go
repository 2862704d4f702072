package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductUnit string

const (
	UnitKg    ProductUnit = "kg"
	UnitGram  ProductUnit = "g"
	UnitLitre ProductUnit = "litre"
	UnitMl    ProductUnit = "ml"
	UnitPiece ProductUnit = "piece"
	UnitPack  ProductUnit = "pack"
	UnitDozen ProductUnit = "dozen"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VendorID    primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Unit        ProductUnit        `bson:"unit" json:"unit" validate:"required,oneof=kg g litre ml piece pack dozen"`
	Stock       int                `bson:"stock" json:"stock" validate:"gte=0"`
	Available   bool               `bson:"available" json:"available"`
	Images      []string           `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
