package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func TestWebhookNotifierPostsOrderUpdate(t *testing.T) {
	var got map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL+"/order-update", srv.URL+"/bill-update", testLog())
	err := n.NotifyOrderUpdate(context.Background(), OrderUpdate{
		ClientID:       "C1",
		OrderID:        "O1",
		SessionID:      "S1",
		NewStatus:      "Accepted",
		ConversationID: "conv-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/order-update", path)
	assert.Equal(t, "C1", got["clientId"])
	assert.Equal(t, "O1", got["orderId"])
	assert.Equal(t, "S1", got["sessionId"])
	assert.Equal(t, "Accepted", got["newStatus"])
	assert.Equal(t, "order_update", got["type"])
	assert.Equal(t, "conv-1", got["conversationId"])
}

func TestWebhookNotifierPostsBillUpdate(t *testing.T) {
	var got map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL+"/order-update", srv.URL+"/bill-update", testLog())
	err := n.NotifyBillUpdate(context.Background(), BillUpdate{
		OrderID:        "O1",
		BillRequestID:  9,
		NewStatus:      "Generated",
		ClientID:       "C1",
		ConversationID: "C9",
	})
	require.NoError(t, err)

	assert.Equal(t, "/bill-update", path)
	assert.Equal(t, float64(9), got["billRequestId"])
	assert.Equal(t, "Generated", got["newStatus"])
	assert.Equal(t, "bill_update", got["type"])
}

func TestWebhookNotifierFailsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, srv.URL, testLog())
	err := n.NotifyOrderUpdate(context.Background(), OrderUpdate{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWebhookNotifierFailsOnConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	n := NewWebhookNotifier(srv.URL, srv.URL, testLog())
	err := n.NotifyBillUpdate(context.Background(), BillUpdate{})
	require.Error(t, err)
}
