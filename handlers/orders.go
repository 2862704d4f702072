package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshkart/freshkart-backend-go/database"
	"github.com/freshkart/freshkart-backend-go/metrics"
	"github.com/freshkart/freshkart-backend-go/models"
	"github.com/freshkart/freshkart-backend-go/services"
)

// newOrderNumber builds the human-readable order reference shown to
// customers and vendors.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// Checkout turns the customer's cart into an order. Prices, names and
// units are captured on the order lines so later catalog edits do not
// rewrite history.
func Checkout(c echo.Context) error {
	customerID := c.Get("customerID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	err := database.DB.Collection(database.CollCarts).FindOne(ctx, bson.M{"customerId": customerID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}
	if len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
	}

	var customer models.User
	if err := database.DB.Collection(database.CollCustomers).FindOne(ctx, bson.M{"_id": customerID}).Decode(&customer); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch account"})
	}
	address, ok := customer.DefaultAddress()
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No delivery address on file"})
	}

	productsCollection := database.DB.Collection(database.CollProducts)

	var vendorID primitive.ObjectID
	var orderItems []models.OrderItem
	totalAmount := 0.0

	for _, item := range cart.Items {
		var product models.Product
		if err := productsCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprintf("Failed to fetch product %s", item.ProductID.Hex()),
			})
		}

		if vendorID.IsZero() {
			vendorID = product.VendorID
		} else if product.VendorID != vendorID {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "All cart items must be from the same store"})
		}

		if !product.Available || product.Stock < item.Quantity {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("Insufficient stock for %s", product.Name),
			})
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Unit:      product.Unit,
		})
		totalAmount += product.Price * float64(item.Quantity)
	}

	order := models.Order{
		ID:              primitive.NewObjectID(),
		OrderNumber:     newOrderNumber(),
		CustomerID:      customerID,
		VendorID:        vendorID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		DeliveryAddress: address,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if _, err := database.DB.Collection(database.CollOrders).InsertOne(ctx, order); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create order"})
	}

	for _, item := range order.Items {
		if _, err := productsCollection.UpdateOne(
			ctx,
			bson.M{"_id": item.ProductID},
			bson.M{"$inc": bson.M{"stock": -item.Quantity}},
		); err != nil {
			log.Printf("Failed to decrement stock for product %s: %v", item.ProductID.Hex(), err)
		}
	}

	if _, err := database.DB.Collection(database.CollCarts).UpdateOne(
		ctx,
		bson.M{"customerId": customerID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}},
	); err != nil {
		log.Printf("Failed to clear cart after checkout: %v", err)
	}

	return c.JSON(http.StatusCreated, order)
}

// GetMyOrders lists the customer's own orders, newest first.
func GetMyOrders(c echo.Context) error {
	customerID := c.Get("customerID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection(database.CollOrders).Find(
		ctx,
		bson.M{"customerId": customerID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// GetMyOrder fetches one of the customer's orders.
func GetMyOrder(c echo.Context) error {
	customerID := c.Get("customerID").(primitive.ObjectID)
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var order models.Order
	err = database.DB.Collection(database.CollOrders).FindOne(
		c.Request().Context(),
		bson.M{"_id": orderID, "customerId": customerID},
	).Decode(&order)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

// GetMyOrderStatus is the lightweight polling endpoint for the
// storefront.
func GetMyOrderStatus(c echo.Context) error {
	customerID := c.Get("customerID").(primitive.ObjectID)
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var order models.Order
	err = database.DB.Collection(database.CollOrders).FindOne(
		c.Request().Context(),
		bson.M{"_id": orderID, "customerId": customerID},
	).Decode(&order)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(order.Status)})
}

// GetVendorOrders lists the vendor's orders, optionally filtered by
// status, newest first.
func GetVendorOrders(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	filter := bson.M{"vendorId": vendorID}
	if status := c.QueryParam("status"); status != "" {
		if _, err := models.ParseOrderStatus(status); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status filter"})
		}
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection(database.CollOrders).Find(
		ctx,
		filter,
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// VendorOrders holds the handlers that go through the lifecycle
// service.
type VendorOrders struct {
	lifecycle *services.Lifecycle
}

func NewVendorOrders(lifecycle *services.Lifecycle) *VendorOrders {
	return &VendorOrders{lifecycle: lifecycle}
}

// UpdateStatus handles PUT /api/vendor/orders?mongoId=<id> with body
// {"newStatus": ...}.
func (h *VendorOrders) UpdateStatus(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	orderID := c.QueryParam("mongoId")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing mongoId query parameter"})
	}

	var req struct {
		NewStatus string `json:"newStatus"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	order, err := h.lifecycle.UpdateOrderStatus(c.Request().Context(), orderID, req.NewStatus, vendorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	metrics.CountOrderStatusUpdate(string(order.Status))
	return c.JSON(http.StatusOK, order)
}
