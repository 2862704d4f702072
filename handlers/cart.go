package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshkart/freshkart-backend-go/database"
	"github.com/freshkart/freshkart-backend-go/models"
)

// GetCart retrieves the customer's cart. An account that never added
// anything gets an empty cart back rather than a 404.
func GetCart(c echo.Context) error {
	customerID := c.Get("customerID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	err := database.DB.Collection(database.CollCarts).FindOne(ctx, bson.M{"customerId": customerID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusOK, models.Cart{CustomerID: customerID, Items: []models.CartItem{}})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}

	return c.JSON(http.StatusOK, cart)
}

// AddToCart appends an item, creating the cart on first use.
func AddToCart(c echo.Context) error {
	customerID := c.Get("customerID").(primitive.ObjectID)

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Quantity must be positive"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{
			"items": bson.M{"productId": productID, "quantity": req.Quantity},
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	result := database.DB.Collection(database.CollCarts).FindOneAndUpdate(
		ctx,
		bson.M{"customerId": customerID},
		update,
		options.FindOneAndUpdate().SetUpsert(true),
	)
	if result.Err() != nil && result.Err() != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add item to cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item added to cart"})
}

// UpdateCartItemQuantity changes the quantity of one cart line.
func UpdateCartItemQuantity(c echo.Context) error {
	customerID := c.Get("customerID").(primitive.ObjectID)

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Quantity must be positive"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"items.$[elem].quantity": req.Quantity,
			"updatedAt":              time.Now(),
		},
	}
	arrayFilters := options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem.productId": productID}},
	}

	result, err := database.DB.Collection(database.CollCarts).UpdateOne(
		ctx,
		bson.M{"customerId": customerID},
		update,
		options.Update().SetArrayFilters(arrayFilters),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update quantity"})
	}
	if result.ModifiedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Quantity updated successfully"})
}

// RemoveFromCart deletes one cart line.
func RemoveFromCart(c echo.Context) error {
	customerID := c.Get("customerID").(primitive.ObjectID)
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"items": bson.M{"productId": productID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := database.DB.Collection(database.CollCarts).UpdateOne(ctx, bson.M{"customerId": customerID}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove item"})
	}
	if result.ModifiedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item removed from cart"})
}
