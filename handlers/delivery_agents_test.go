package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshkart/freshkart-backend-go/models"
	"github.com/freshkart/freshkart-backend-go/services"
)

type memAgentStore struct {
	agents map[primitive.ObjectID]*models.DeliveryAgent
}

func newMemAgentStore() *memAgentStore {
	return &memAgentStore{agents: map[primitive.ObjectID]*models.DeliveryAgent{}}
}

func (m *memAgentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.DeliveryAgent, error) {
	if a, ok := m.agents[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, services.ErrNotFound
}

func (m *memAgentStore) ListByVendor(_ context.Context, vendorID primitive.ObjectID) ([]models.DeliveryAgent, error) {
	var out []models.DeliveryAgent
	for _, a := range m.agents {
		if a.VendorID == vendorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memAgentStore) Insert(_ context.Context, agent *models.DeliveryAgent) error {
	for _, existing := range m.agents {
		if existing.VendorID == agent.VendorID && existing.Phone == agent.Phone {
			return services.ErrDuplicatePhone
		}
	}
	cp := *agent
	m.agents[agent.ID] = &cp
	return nil
}

func (m *memAgentStore) Update(_ context.Context, id, vendorID primitive.ObjectID, update services.AgentUpdate) error {
	a, ok := m.agents[id]
	if !ok || a.VendorID != vendorID {
		return services.ErrNotFound
	}
	a.Name = update.Name
	a.Phone = update.Phone
	a.VehicleType = update.VehicleType
	a.Active = update.Active
	return nil
}

func (m *memAgentStore) Delete(_ context.Context, id, vendorID primitive.ObjectID) error {
	a, ok := m.agents[id]
	if !ok || a.VendorID != vendorID {
		return services.ErrNotFound
	}
	delete(m.agents, id)
	return nil
}

type noopUnassigner struct{}

func (noopUnassigner) ClearActiveAssignments(_ context.Context, _, _ primitive.ObjectID) error {
	return nil
}

func newAgentTestServer() (*DeliveryAgents, *memAgentStore) {
	store := newMemAgentStore()
	svc := services.NewAgents(store, noopUnassigner{})
	return NewDeliveryAgents(svc), store
}

func doRequest(method, target, body string, vendorID primitive.ObjectID, handler echo.HandlerFunc, pathParams map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("vendorID", vendorID)
	for k, v := range pathParams {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	_ = handler(c)
	return rec
}

func TestCreateAgentEndpoint(t *testing.T) {
	h, store := newAgentTestServer()
	vendorA := primitive.NewObjectID()

	rec := doRequest(http.MethodPost, "/api/vendor/delivery-agents",
		`{"name":"Ravi Kumar","phone":"9876543210","vehicleType":"bike"}`, vendorA, h.Create, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var agent models.DeliveryAgent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &agent))
	require.Equal(t, vendorA, agent.VendorID)
	require.Len(t, store.agents, 1)
}

func TestCreateAgentEndpointValidation(t *testing.T) {
	h, store := newAgentTestServer()

	rec := doRequest(http.MethodPost, "/api/vendor/delivery-agents",
		`{"name":"","phone":"","vehicleType":""}`, primitive.NewObjectID(), h.Create, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["error"], "name")
	require.Contains(t, body["error"], "phone")
	require.Contains(t, body["error"], "vehicleType")
	require.Empty(t, store.agents)
}

func TestCreateAgentEndpointDuplicatePhone(t *testing.T) {
	h, _ := newAgentTestServer()
	vendorA := primitive.NewObjectID()

	payload := `{"name":"Ravi","phone":"9876543210","vehicleType":"bike"}`
	rec := doRequest(http.MethodPost, "/api/vendor/delivery-agents", payload, vendorA, h.Create, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(http.MethodPost, "/api/vendor/delivery-agents", payload, vendorA, h.Create, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetAgentEndpointDistinguishesForbidden(t *testing.T) {
	h, store := newAgentTestServer()
	vendorA := primitive.NewObjectID()
	vendorB := primitive.NewObjectID()

	agent := &models.DeliveryAgent{ID: primitive.NewObjectID(), VendorID: vendorA, Name: "Ravi", Phone: "9876543210", VehicleType: models.VehicleBike}
	store.agents[agent.ID] = agent

	rec := doRequest(http.MethodGet, "/api/vendor/delivery-agents/"+agent.ID.Hex(), "", vendorB, h.Get,
		map[string]string{"id": agent.ID.Hex()})
	require.Equal(t, http.StatusForbidden, rec.Code)

	missing := primitive.NewObjectID().Hex()
	rec = doRequest(http.MethodGet, "/api/vendor/delivery-agents/"+missing, "", vendorA, h.Get,
		map[string]string{"id": missing})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAgentEndpoint(t *testing.T) {
	h, store := newAgentTestServer()
	vendorA := primitive.NewObjectID()

	agent := &models.DeliveryAgent{ID: primitive.NewObjectID(), VendorID: vendorA, Name: "Ravi", Phone: "9876543210", VehicleType: models.VehicleBike}
	store.agents[agent.ID] = agent

	rec := doRequest(http.MethodDelete, "/api/vendor/delivery-agents/"+agent.ID.Hex(), "", vendorA, h.Delete,
		map[string]string{"id": agent.ID.Hex()})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, store.agents)
}
