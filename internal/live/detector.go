package live

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/notify"
)

func billKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// The status detectors diff the current notable rows against the last
// notified status per entity and dispatch a notification only for
// genuine transitions. The cache is marked after a successful
// dispatch, so a failed one is retried on the next tick; entities
// that left the notable set are pruned so re-entry notifies again.

func (s *Service) checkSessionStatuses(ctx context.Context) {
	if s.hub.Count() == 0 {
		return
	}

	rows, err := s.store.NotableSessions(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to check session statuses")
		return
	}

	live := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		live[row.SessionID] = struct{}{}

		if !s.sessionSeen.Changed(row.SessionID, row.SessionStatus) {
			continue
		}

		ev := notify.OrderUpdate{
			ClientID:       row.ClientID,
			OrderID:        row.OrderID,
			SessionID:      row.SessionID,
			NewStatus:      row.SessionStatus,
			ConversationID: row.ConvoID,
		}
		if err := s.notifier.NotifyOrderUpdate(ctx, ev); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"session_id": row.SessionID,
				"status":     row.SessionStatus,
			}).Error("order update notification failed")
			continue
		}

		s.sessionSeen.Mark(row.SessionID, row.SessionStatus)
		s.log.WithFields(logrus.Fields{
			"session_id": row.SessionID,
			"order_id":   row.OrderID,
			"status":     row.SessionStatus,
		}).Info("order update notified")
	}

	s.sessionSeen.Retain(live)
}

func (s *Service) checkBillStatuses(ctx context.Context) {
	if s.hub.Count() == 0 {
		return
	}

	rows, err := s.store.GeneratedBills(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to check bill statuses")
		return
	}

	live := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		key := billKey(row.BillRequestID)
		live[key] = struct{}{}

		if !s.billSeen.Changed(key, row.BillStatus) {
			continue
		}

		ev := notify.BillUpdate{
			OrderID:        row.OrderID,
			BillRequestID:  row.BillRequestID,
			NewStatus:      row.BillStatus,
			ClientID:       row.ClientID,
			ConversationID: row.ConvoID,
		}
		if err := s.notifier.NotifyBillUpdate(ctx, ev); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"bill_request_id": row.BillRequestID,
				"status":          row.BillStatus,
			}).Error("bill update notification failed")
			continue
		}

		s.billSeen.Mark(key, row.BillStatus)
		s.log.WithFields(logrus.Fields{
			"bill_request_id": row.BillRequestID,
			"order_id":        row.OrderID,
			"status":          row.BillStatus,
		}).Info("bill update notified")
	}

	s.billSeen.Retain(live)
}
