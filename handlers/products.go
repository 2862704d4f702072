package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshkart/freshkart-backend-go/database"
	"github.com/freshkart/freshkart-backend-go/models"
)

var productValidate = validator.New()

// GetProducts lists the public catalog. Supports vendorId, category,
// search and availableOnly query filters.
func GetProducts(c echo.Context) error {
	filter := bson.M{}

	if vendorID := c.QueryParam("vendorId"); vendorID != "" {
		vid, err := primitive.ObjectIDFromHex(vendorID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid vendor ID"})
		}
		filter["vendorId"] = vid
	}
	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}
	if search := c.QueryParam("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}
	if c.QueryParam("availableOnly") == "true" {
		filter["available"] = true
	}

	collection := database.DB.Collection(database.CollProducts)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}

	return c.JSON(http.StatusOK, products)
}

// GetProduct fetches a single catalog entry.
func GetProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var product models.Product
	err = database.DB.Collection(database.CollProducts).FindOne(c.Request().Context(), bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the vendor's inventory.
func CreateProduct(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := productValidate.Struct(product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	product.ID = primitive.NewObjectID()
	product.VendorID = vendorID
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.DB.Collection(database.CollProducts).InsertOne(ctx, product); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create product"})
	}

	return c.JSON(http.StatusCreated, product)
}

// GetVendorProducts lists the authenticated vendor's own inventory.
func GetVendorProducts(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection(database.CollProducts).Find(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}

	return c.JSON(http.StatusOK, products)
}

// UpdateProduct edits a product owned by the vendor. The filter
// matches on both product and vendor, so a foreign product is never
// touched.
func UpdateProduct(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var req struct {
		Name        string             `json:"name"`
		Category    string             `json:"category"`
		Description string             `json:"description"`
		Price       float64            `json:"price"`
		Unit        models.ProductUnit `json:"unit"`
		Stock       int                `json:"stock"`
		Available   bool               `json:"available"`
		Images      []string           `json:"images"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        req.Name,
		"category":    req.Category,
		"description": req.Description,
		"price":       req.Price,
		"unit":        req.Unit,
		"stock":       req.Stock,
		"available":   req.Available,
		"images":      req.Images,
		"updatedAt":   time.Now(),
	}}

	result, err := database.DB.Collection(database.CollProducts).UpdateOne(
		ctx,
		bson.M{"_id": productID, "vendorId": vendorID},
		update,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update product"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

// DeleteProduct removes a product owned by the vendor.
func DeleteProduct(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.CollProducts).DeleteOne(ctx, bson.M{"_id": productID, "vendorId": vendorID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete product"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
