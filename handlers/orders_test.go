package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshkart/freshkart-backend-go/models"
	"github.com/freshkart/freshkart-backend-go/services"
)

type memOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
}

func (m *memOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	if o, ok := m.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, services.ErrNotFound
}

func (m *memOrderStore) SetStatus(_ context.Context, id, vendorID primitive.ObjectID, status models.OrderStatus) error {
	o, ok := m.orders[id]
	if !ok || o.VendorID != vendorID {
		return services.ErrNotFound
	}
	o.Status = status
	return nil
}

type memDeliveryStore struct {
	deliveries map[primitive.ObjectID]*models.Delivery
}

func (m *memDeliveryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Delivery, error) {
	if d, ok := m.deliveries[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, services.ErrNotFound
}

func (m *memDeliveryStore) Create(_ context.Context, delivery *models.Delivery) error {
	delivery.ID = primitive.NewObjectID()
	m.deliveries[delivery.ID] = delivery
	return nil
}

func (m *memDeliveryStore) ApplyState(_ context.Context, id, vendorID primitive.ObjectID, change services.DeliveryStateChange) error {
	d, ok := m.deliveries[id]
	if !ok || d.VendorID != vendorID {
		return services.ErrNotFound
	}
	d.Status = change.Status
	d.DeliveryAgentID = change.AgentID
	return nil
}

type memAgentLookup struct{}

func (memAgentLookup) FindByID(_ context.Context, _ primitive.ObjectID) (*models.DeliveryAgent, error) {
	return nil, services.ErrNotFound
}

func newOrderTestServer() (*VendorOrders, *memOrderStore) {
	orders := &memOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
	deliveries := &memDeliveryStore{deliveries: map[primitive.ObjectID]*models.Delivery{}}
	lifecycle := services.NewLifecycle(orders, deliveries, memAgentLookup{})
	return NewVendorOrders(lifecycle), orders
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	h, store := newOrderTestServer()
	vendorA := primitive.NewObjectID()

	order := &models.Order{ID: primitive.NewObjectID(), VendorID: vendorA, Status: models.OrderStatusPending}
	store.orders[order.ID] = order

	rec := doRequest(http.MethodPut, "/api/vendor/orders?mongoId="+order.ID.Hex(),
		`{"newStatus":"Preparing"}`, vendorA, h.UpdateStatus, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, models.OrderStatusPreparing, updated.Status)
	require.Equal(t, models.OrderStatusPreparing, store.orders[order.ID].Status)
}

func TestUpdateOrderStatusEndpointRejectsIllegalTransition(t *testing.T) {
	h, store := newOrderTestServer()
	vendorA := primitive.NewObjectID()

	order := &models.Order{ID: primitive.NewObjectID(), VendorID: vendorA, Status: models.OrderStatusPreparing}
	store.orders[order.ID] = order

	rec := doRequest(http.MethodPut, "/api/vendor/orders?mongoId="+order.ID.Hex(),
		`{"newStatus":"Delivered"}`, vendorA, h.UpdateStatus, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, models.OrderStatusPreparing, store.orders[order.ID].Status)
}

func TestUpdateOrderStatusEndpointForeignVendor(t *testing.T) {
	h, store := newOrderTestServer()
	vendorA := primitive.NewObjectID()
	vendorB := primitive.NewObjectID()

	order := &models.Order{ID: primitive.NewObjectID(), VendorID: vendorA, Status: models.OrderStatusPending}
	store.orders[order.ID] = order

	rec := doRequest(http.MethodPut, "/api/vendor/orders?mongoId="+order.ID.Hex(),
		`{"newStatus":"Preparing"}`, vendorB, h.UpdateStatus, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateOrderStatusEndpointMissingQueryParam(t *testing.T) {
	h, _ := newOrderTestServer()

	rec := doRequest(http.MethodPut, "/api/vendor/orders",
		`{"newStatus":"Preparing"}`, primitive.NewObjectID(), h.UpdateStatus, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
