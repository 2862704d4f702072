package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshkart/freshkart-backend-go/database"
	"github.com/freshkart/freshkart-backend-go/models"
)

// GetStoreSettings returns the vendor's store profile.
func GetStoreSettings(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	var vendor models.Vendor
	err := database.DB.Collection(database.CollVendors).FindOne(
		c.Request().Context(),
		bson.M{"_id": vendorID},
	).Decode(&vendor)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Vendor not found"})
	}

	return c.JSON(http.StatusOK, vendor.Settings)
}

// UpdateStoreSettings replaces the vendor's store profile.
func UpdateStoreSettings(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	var settings models.StoreSettings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.CollVendors).UpdateOne(
		ctx,
		bson.M{"_id": vendorID},
		bson.M{"$set": bson.M{"settings": settings, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update settings"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Vendor not found"})
	}

	return c.JSON(http.StatusOK, settings)
}
