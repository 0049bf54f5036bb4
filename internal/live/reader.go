package live

import "context"

// The snapshot readers broadcast full replacement views on every
// tick; clients swap out their whole state rather than applying
// diffs. A failed store query skips the broadcast for that tick only.

func (s *Service) broadcastKitchenOrders(ctx context.Context) {
	if s.hub.Count() == 0 {
		return
	}

	orders, err := s.store.KitchenOrders(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch kitchen orders")
		return
	}
	s.hub.Broadcast(EventKitchenOrders, orders)
}

func (s *Service) broadcastPreviousOrders(ctx context.Context) {
	if s.hub.Count() == 0 {
		return
	}

	orders, err := s.store.PreviousOrders(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch previous orders")
		return
	}
	s.hub.Broadcast(EventPreviousOrders, orders)
}

func (s *Service) broadcastBillRequests(ctx context.Context) {
	if s.hub.Count() == 0 {
		return
	}

	bills, err := s.store.PendingBillRequests(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch bill requests")
		return
	}
	s.hub.Broadcast(EventBillRequests, bills)
}
