package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/live"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/repository"
)

type fakeOrders struct {
	createFn        func(p repository.CreateOrderParams) ([]models.OrderItem, error)
	getFn           func(orderID string) (models.OrderDetail, error)
	updateFn        func(orderID, status string) (models.Order, error)
	updateSessionFn func(orderID, sessionID, status string) (models.Session, error)
}

func (f *fakeOrders) Create(_ context.Context, p repository.CreateOrderParams) ([]models.OrderItem, error) {
	return f.createFn(p)
}

func (f *fakeOrders) GetByID(_ context.Context, orderID string) (models.OrderDetail, error) {
	return f.getFn(orderID)
}

func (f *fakeOrders) UpdateStatus(_ context.Context, orderID, status string) (models.Order, error) {
	return f.updateFn(orderID, status)
}

func (f *fakeOrders) UpdateSessionStatus(_ context.Context, orderID, sessionID, status string) (models.Session, error) {
	return f.updateSessionFn(orderID, sessionID, status)
}

type fakeBills struct {
	createFn func(orderID string) (models.BillRequest, error)
}

func (f *fakeBills) Create(_ context.Context, orderID string) (models.BillRequest, error) {
	return f.createFn(orderID)
}

func (f *fakeBills) List(_ context.Context) ([]models.BillRequest, error) {
	return []models.BillRequest{}, nil
}

func (f *fakeBills) UpdateStatus(_ context.Context, orderID, status string) (models.BillRequest, error) {
	return models.BillRequest{OrderID: orderID, BillStatus: status}, nil
}

type fakeUsers struct {
	setConvoFn func(clientID, convoID string) (bool, error)
}

func (f *fakeUsers) Create(_ context.Context, clientID, name, mailID string) (models.User, error) {
	return models.User{ClientID: clientID, Name: name, MailID: mailID}, nil
}

func (f *fakeUsers) GetByID(_ context.Context, clientID string) (models.User, error) {
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	return []models.User{}, nil
}

func (f *fakeUsers) Update(_ context.Context, clientID, name, mailID string) (models.User, error) {
	return models.User{ClientID: clientID, Name: name, MailID: mailID}, nil
}

func (f *fakeUsers) SetConversationID(_ context.Context, clientID, convoID string) (bool, error) {
	return f.setConvoFn(clientID, convoID)
}

type noopTables struct{}

func (noopTables) UpdateStatus(_ context.Context, tableID int, status string) (models.Table, error) {
	return models.Table{TableID: tableID, TableStatus: status}, nil
}

func (noopTables) List(_ context.Context) ([]models.Table, error) { return []models.Table{}, nil }

type noopFeedback struct {
	deleteErr error
}

func (noopFeedback) Add(_ context.Context, clientID, text string) (models.Feedback, error) {
	return models.Feedback{ClientID: clientID, FeedbackText: text}, nil
}

func (noopFeedback) List(_ context.Context) ([]models.Feedback, error) {
	return []models.Feedback{}, nil
}

func (noopFeedback) ListByClient(_ context.Context, clientID string) ([]models.Feedback, error) {
	return []models.Feedback{}, nil
}

func (f noopFeedback) Delete(_ context.Context, feedbackID int64) error { return f.deleteErr }

func testRouter(orders OrderStore, bills BillStore, users UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := NewHandler(orders, bills, noopTables{}, users, noopFeedback{}, live.NewHub(logrus.NewEntry(log)), logrus.NewEntry(log))
	return NewRouter(h, nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	called := false
	orders := &fakeOrders{createFn: func(p repository.CreateOrderParams) ([]models.OrderItem, error) {
		called = true
		return nil, nil
	}}
	r := testRouter(orders, &fakeBills{}, &fakeUsers{})

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_id":   "O1",
		"client_id":  "C1",
		"table_id":   1,
		"session_id": "S1",
		"items":      []any{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called, "repository must not be reached on invalid input")
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	orders := &fakeOrders{createFn: func(p repository.CreateOrderParams) ([]models.OrderItem, error) {
		t.Fatal("repository must not be reached")
		return nil, nil
	}}
	r := testRouter(orders, &fakeBills{}, &fakeUsers{})

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_id":   "O1",
		"client_id":  "C1",
		"table_id":   1,
		"session_id": "S1",
		"items":      []map[string]any{{"item_name": "Dosa", "quantity": 0}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderSuccess(t *testing.T) {
	orders := &fakeOrders{createFn: func(p repository.CreateOrderParams) ([]models.OrderItem, error) {
		assert.Equal(t, "O1", p.OrderID)
		assert.Equal(t, 2, p.TableID)
		return []models.OrderItem{{MenuItemID: 5, ItemName: "Dosa", Quantity: 1}}, nil
	}}
	r := testRouter(orders, &fakeBills{}, &fakeUsers{})

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_id":   "O1",
		"client_id":  "C1",
		"table_id":   2,
		"session_id": "S1",
		"items":      []map[string]any{{"item_name": "Dosa", "quantity": 1}},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		SessionID string             `json:"session_id"`
		Items     []models.OrderItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "S1", resp.SessionID)
	require.Len(t, resp.Items, 1)
}

func TestCreateOrderTableFull(t *testing.T) {
	orders := &fakeOrders{createFn: func(p repository.CreateOrderParams) ([]models.OrderItem, error) {
		return nil, repository.ErrTableFull
	}}
	r := testRouter(orders, &fakeBills{}, &fakeUsers{})

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_id":   "O1",
		"client_id":  "C1",
		"table_id":   1,
		"session_id": "S1",
		"items":      []map[string]any{{"item_name": "Dosa", "quantity": 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "full")
}

func TestUpdateSessionStatusCancelGuard(t *testing.T) {
	orders := &fakeOrders{updateSessionFn: func(orderID, sessionID, status string) (models.Session, error) {
		return models.Session{}, repository.ErrCancelNotAllowed
	}}
	r := testRouter(orders, &fakeBills{}, &fakeUsers{})

	w := doJSON(t, r, http.MethodPut, "/api/orders/O1/S1", map[string]any{
		"session_status": "Cancelled",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	orders := &fakeOrders{getFn: func(orderID string) (models.OrderDetail, error) {
		return models.OrderDetail{}, repository.ErrOrderNotFound
	}}
	r := testRouter(orders, &fakeBills{}, &fakeUsers{})

	w := doJSON(t, r, http.MethodGet, "/api/orders/O9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBillRequestRequiresActiveOrder(t *testing.T) {
	bills := &fakeBills{createFn: func(orderID string) (models.BillRequest, error) {
		return models.BillRequest{}, repository.ErrOrderNotActive
	}}
	r := testRouter(&fakeOrders{}, bills, &fakeUsers{})

	w := doJSON(t, r, http.MethodPost, "/api/bill-requests", map[string]any{"order_id": "O1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Active")
}

func TestUpdateConversationIDValidation(t *testing.T) {
	users := &fakeUsers{setConvoFn: func(clientID, convoID string) (bool, error) {
		return true, nil
	}}
	r := testRouter(&fakeOrders{}, &fakeBills{}, users)

	w := doJSON(t, r, http.MethodPost, "/api/users/conversation", map[string]any{"clientId": "C1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/conversation", map[string]any{
		"clientId": "C1",
		"convoId":  "conv-9",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "conv-9")
}

func TestDeleteFeedbackNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := NewHandler(
		&fakeOrders{},
		&fakeBills{},
		noopTables{},
		&fakeUsers{},
		noopFeedback{deleteErr: repository.ErrFeedbackNotFound},
		live.NewHub(logrus.NewEntry(log)),
		logrus.NewEntry(log),
	)
	r := NewRouter(h, nil)

	w := doJSON(t, r, http.MethodDelete, "/api/feedback/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
