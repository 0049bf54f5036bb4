package live

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/config"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/notify"
)

// Broadcast event names, as consumed by the dashboard clients.
const (
	EventKitchenOrders  = "loadKitchenOrders"
	EventPreviousOrders = "loadPreviousOrders"
	EventBillRequests   = "loadBillRequests"
)

// Scheduler task names.
const (
	taskKitchenOrders  = "kitchen_orders"
	taskPreviousOrders = "previous_orders"
	taskBillRequests   = "bill_requests"
	taskSessionStatus  = "session_status"
	taskBillStatus     = "bill_status"
)

// Store is the read surface the polling loop needs from the database.
type Store interface {
	KitchenOrders(ctx context.Context) ([]models.Order, error)
	PreviousOrders(ctx context.Context) ([]models.Order, error)
	PendingBillRequests(ctx context.Context) ([]models.BillRequestView, error)
	NotableSessions(ctx context.Context) ([]models.SessionStatusRow, error)
	GeneratedBills(ctx context.Context) ([]models.BillStatusRow, error)
}

// Service wires the hub, scheduler, snapshot store and notifier
// together. Polling starts when the first subscriber connects and
// stops when the last one leaves.
type Service struct {
	hub       *Hub
	sched     *Scheduler
	store     Store
	notifier  notify.Notifier
	intervals config.Live
	log       *logrus.Entry

	sessionSeen *StatusCache
	billSeen    *StatusCache
}

func NewService(
	hub *Hub,
	sched *Scheduler,
	store Store,
	notifier notify.Notifier,
	intervals config.Live,
	log *logrus.Entry,
) *Service {
	s := &Service{
		hub:         hub,
		sched:       sched,
		store:       store,
		notifier:    notifier,
		intervals:   intervals,
		log:         log,
		sessionSeen: NewStatusCache(),
		billSeen:    NewStatusCache(),
	}
	hub.SetLifecycleHooks(s.startPolling, s.stopPolling)
	return s
}

func (s *Service) startPolling() {
	s.sched.Start(taskKitchenOrders, s.intervals.KitchenOrdersPeriod(), s.broadcastKitchenOrders)
	s.sched.Start(taskPreviousOrders, s.intervals.PreviousOrdersPeriod(), s.broadcastPreviousOrders)
	s.sched.Start(taskBillRequests, s.intervals.BillRequestsPeriod(), s.broadcastBillRequests)
	s.sched.Start(taskSessionStatus, s.intervals.SessionStatusPeriod(), s.checkSessionStatuses)
	s.sched.Start(taskBillStatus, s.intervals.BillStatusPeriod(), s.checkBillStatuses)
}

func (s *Service) stopPolling() {
	s.sched.Stop(taskKitchenOrders)
	s.sched.Stop(taskPreviousOrders)
	s.sched.Stop(taskBillRequests)
	s.sched.Stop(taskSessionStatus)
	s.sched.Stop(taskBillStatus)
}
