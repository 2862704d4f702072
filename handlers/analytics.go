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

type analyticsSummary struct {
	OrdersByStatus map[string]int64  `json:"ordersByStatus"`
	TotalOrders    int64             `json:"totalOrders"`
	Revenue        float64           `json:"revenue"`
	TopProducts    []topProductEntry `json:"topProducts"`
}

type topProductEntry struct {
	Name     string `bson:"_id" json:"name"`
	Quantity int64  `bson:"quantity" json:"quantity"`
}

// GetAnalyticsSummary backs the vendor dashboard tiles: order counts
// by status, revenue from delivered orders, and best-selling products.
func GetAnalyticsSummary(c echo.Context) error {
	vendorID := c.Get("vendorID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders := database.DB.Collection(database.CollOrders)
	summary := analyticsSummary{
		OrdersByStatus: map[string]int64{},
		TopProducts:    []topProductEntry{},
	}

	statusCursor, err := orders.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"vendorId": vendorID}},
		bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute analytics"})
	}
	defer statusCursor.Close(ctx)

	var statusCounts []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := statusCursor.All(ctx, &statusCounts); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute analytics"})
	}
	for _, sc := range statusCounts {
		summary.OrdersByStatus[sc.Status] = sc.Count
		summary.TotalOrders += sc.Count
	}

	revenueCursor, err := orders.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"vendorId": vendorID, "status": models.OrderStatusDelivered}},
		bson.M{"$group": bson.M{"_id": nil, "revenue": bson.M{"$sum": "$totalAmount"}}},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute analytics"})
	}
	defer revenueCursor.Close(ctx)

	var revenue []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := revenueCursor.All(ctx, &revenue); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute analytics"})
	}
	if len(revenue) > 0 {
		summary.Revenue = revenue[0].Revenue
	}

	topCursor, err := orders.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"vendorId": vendorID, "status": models.OrderStatusDelivered}},
		bson.M{"$unwind": "$items"},
		bson.M{"$group": bson.M{"_id": "$items.name", "quantity": bson.M{"$sum": "$items.quantity"}}},
		bson.M{"$sort": bson.M{"quantity": -1}},
		bson.M{"$limit": 5},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute analytics"})
	}
	defer topCursor.Close(ctx)

	if err := topCursor.All(ctx, &summary.TopProducts); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute analytics"})
	}

	return c.JSON(http.StatusOK, summary)
}
