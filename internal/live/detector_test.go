package live

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/config"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/notify"
)

type fakeStore struct {
	mu       sync.Mutex
	queries  int64
	err      error
	orders   []models.Order
	previous []models.Order
	bills    []models.BillRequestView
	sessions []models.SessionStatusRow
	genBills []models.BillStatusRow
}

func (f *fakeStore) hit() error {
	atomic.AddInt64(&f.queries, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeStore) KitchenOrders(ctx context.Context) ([]models.Order, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.orders, nil
}

func (f *fakeStore) PreviousOrders(ctx context.Context) ([]models.Order, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.previous, nil
}

func (f *fakeStore) PendingBillRequests(ctx context.Context) ([]models.BillRequestView, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.bills, nil
}

func (f *fakeStore) NotableSessions(ctx context.Context) ([]models.SessionStatusRow, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions, nil
}

func (f *fakeStore) GeneratedBills(ctx context.Context) ([]models.BillStatusRow, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.genBills, nil
}

func (f *fakeStore) setSessions(rows ...models.SessionStatusRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = rows
}

type fakeNotifier struct {
	mu     sync.Mutex
	fail   bool
	orders []notify.OrderUpdate
	bills  []notify.BillUpdate
}

func (f *fakeNotifier) NotifyOrderUpdate(ctx context.Context, ev notify.OrderUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("dispatch failed")
	}
	ev.Type = notify.TypeOrderUpdate
	f.orders = append(f.orders, ev)
	return nil
}

func (f *fakeNotifier) NotifyBillUpdate(ctx context.Context, ev notify.BillUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("dispatch failed")
	}
	ev.Type = notify.TypeBillUpdate
	f.bills = append(f.bills, ev)
	return nil
}

func newTestService(store Store, notifier notify.Notifier) (*Service, *Hub) {
	hub := NewHub(testLog())
	sched := NewScheduler(context.Background(), testLog())
	svc := NewService(hub, sched, store, notifier, config.Live{
		KitchenOrdersInterval:  5,
		PreviousOrdersInterval: 15,
		BillRequestsInterval:   5,
		SessionStatusInterval:  5,
		BillStatusInterval:     5,
	}, testLog())
	return svc, hub
}

func acceptedSession() models.SessionStatusRow {
	return models.SessionStatusRow{
		SessionID:     "S1",
		OrderID:       "O1",
		SessionStatus: models.SessionAccepted,
		ClientID:      "C1",
		ConvoID:       "conv-1",
	}
}

func TestSessionDetectorNotifiesOnceForATransition(t *testing.T) {
	store := &fakeStore{}
	store.setSessions(acceptedSession())
	notifier := &fakeNotifier{}
	svc, hub := newTestService(store, notifier)
	defer svc.sched.StopAll()
	hub.Register(testClient("sub", 8))

	ctx := context.Background()
	svc.checkSessionStatuses(ctx)

	require.Len(t, notifier.orders, 1)
	ev := notifier.orders[0]
	assert.Equal(t, "C1", ev.ClientID)
	assert.Equal(t, "O1", ev.OrderID)
	assert.Equal(t, "S1", ev.SessionID)
	assert.Equal(t, models.SessionAccepted, ev.NewStatus)
	assert.Equal(t, notify.TypeOrderUpdate, ev.Type)
	assert.Equal(t, "conv-1", ev.ConversationID)

	// Re-observing the same status emits nothing.
	svc.checkSessionStatuses(ctx)
	assert.Len(t, notifier.orders, 1)
}

func TestSessionDetectorNotifiesAgainOnStatusChange(t *testing.T) {
	store := &fakeStore{}
	store.setSessions(acceptedSession())
	notifier := &fakeNotifier{}
	svc, hub := newTestService(store, notifier)
	defer svc.sched.StopAll()
	hub.Register(testClient("sub", 8))

	ctx := context.Background()
	svc.checkSessionStatuses(ctx)

	row := acceptedSession()
	row.SessionStatus = models.SessionCompleted
	store.setSessions(row)
	svc.checkSessionStatuses(ctx)

	require.Len(t, notifier.orders, 2)
	assert.Equal(t, models.SessionCompleted, notifier.orders[1].NewStatus)
}

func TestSessionDetectorPrunesDepartedSessions(t *testing.T) {
	store := &fakeStore{}
	store.setSessions(acceptedSession())
	notifier := &fakeNotifier{}
	svc, hub := newTestService(store, notifier)
	defer svc.sched.StopAll()
	hub.Register(testClient("sub", 8))

	ctx := context.Background()
	svc.checkSessionStatuses(ctx)
	require.Equal(t, 1, svc.sessionSeen.Len())

	// Session leaves the notable set (say, back to Pending).
	store.setSessions()
	svc.checkSessionStatuses(ctx)
	assert.Equal(t, 0, svc.sessionSeen.Len())

	// Re-entering the same status notifies again.
	store.setSessions(acceptedSession())
	svc.checkSessionStatuses(ctx)
	assert.Len(t, notifier.orders, 2)
}

func TestSessionDetectorRetriesAfterDispatchFailure(t *testing.T) {
	store := &fakeStore{}
	store.setSessions(acceptedSession())
	notifier := &fakeNotifier{fail: true}
	svc, hub := newTestService(store, notifier)
	defer svc.sched.StopAll()
	hub.Register(testClient("sub", 8))

	ctx := context.Background()
	svc.checkSessionStatuses(ctx)
	assert.Empty(t, notifier.orders)
	assert.Equal(t, 0, svc.sessionSeen.Len(), "failed dispatch must not mark the cache")

	notifier.mu.Lock()
	notifier.fail = false
	notifier.mu.Unlock()

	svc.checkSessionStatuses(ctx)
	assert.Len(t, notifier.orders, 1, "the transition is retried on the next tick")
}

func TestBillDetectorPayload(t *testing.T) {
	store := &fakeStore{
		genBills: []models.BillStatusRow{{
			BillRequestID: 7,
			OrderID:       "O1",
			BillStatus:    models.BillGenerated,
			ClientID:      "C1",
			ConvoID:       "C9",
		}},
	}
	notifier := &fakeNotifier{}
	svc, hub := newTestService(store, notifier)
	defer svc.sched.StopAll()
	hub.Register(testClient("sub", 8))

	ctx := context.Background()
	svc.checkBillStatuses(ctx)

	require.Len(t, notifier.bills, 1)
	ev := notifier.bills[0]
	assert.Equal(t, "O1", ev.OrderID)
	assert.Equal(t, int64(7), ev.BillRequestID)
	assert.Equal(t, models.BillGenerated, ev.NewStatus)
	assert.Equal(t, "C1", ev.ClientID)
	assert.Equal(t, "C9", ev.ConversationID)
	assert.Equal(t, notify.TypeBillUpdate, ev.Type)

	svc.checkBillStatuses(ctx)
	assert.Len(t, notifier.bills, 1, "same generated bill must notify exactly once")
}

func TestTicksAreNoOpsWithoutSubscribers(t *testing.T) {
	store := &fakeStore{}
	store.setSessions(acceptedSession())
	notifier := &fakeNotifier{}
	svc, _ := newTestService(store, notifier)
	defer svc.sched.StopAll()

	ctx := context.Background()
	svc.checkSessionStatuses(ctx)
	svc.checkBillStatuses(ctx)
	svc.broadcastKitchenOrders(ctx)
	svc.broadcastPreviousOrders(ctx)
	svc.broadcastBillRequests(ctx)

	assert.Zero(t, atomic.LoadInt64(&store.queries), "no subscribers means no store queries")
	assert.Empty(t, notifier.orders)
}
