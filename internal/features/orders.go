package features

import (
	"context"
	"log/slog"

	"fraudcli/internal/dataset"
	"fraudcli/pkg/contracts/domain"
)

// OrdersAggregator groups the orders table by customer email and computes the
// per-customer order features.
type OrdersAggregator struct {
	logger *slog.Logger
}

// NewOrdersAggregator creates an orders aggregator.
func NewOrdersAggregator(logger *slog.Logger) *OrdersAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrdersAggregator{logger: logger}
}

// Aggregate computes order aggregates keyed by canonical customer email.
// FailedOrderRatio is FailedOrders/TotalOrders; the group always has at least
// one order here, so the 0/0 case only arises for customers absent from the
// map, which Merge resolves to the zero default.
func (a *OrdersAggregator) Aggregate(ctx context.Context, orders []domain.Order) map[string]OrderAggregates {
	type group struct {
		count     int
		amountSum float64
		failed    int
		addresses map[string]struct{}
	}

	groups := make(map[string]*group)
	for _, order := range orders {
		key := dataset.CanonicalKey(order.CustomerEmail)
		g, ok := groups[key]
		if !ok {
			g = &group{addresses: make(map[string]struct{})}
			groups[key] = g
		}
		g.count++
		g.amountSum += order.OrderAmount
		if order.OrderState == domain.OrderStateFailed {
			g.failed++
		}
		g.addresses[order.OrderShippingAddress] = struct{}{}
	}

	aggregates := make(map[string]OrderAggregates, len(groups))
	for email, g := range groups {
		aggregates[email] = OrderAggregates{
			TotalOrders:             g.count,
			AverageOrderAmount:      g.amountSum / float64(g.count),
			FailedOrders:            g.failed,
			FailedOrderRatio:        float64(g.failed) / float64(g.count),
			UniqueShippingAddresses: len(g.addresses),
		}
	}

	a.logger.InfoContext(ctx, "aggregated orders",
		slog.Int("order_count", len(orders)),
		slog.Int("customer_count", len(aggregates)))

	return aggregates
}

// Merge left-joins the aggregates onto the customer rows. Every customer row
// survives; a customer with no orders keeps the zero-value aggregates.
func (a *OrdersAggregator) Merge(rows []CustomerRow, aggregates map[string]OrderAggregates) []CustomerRow {
	for i := range rows {
		rows[i].OrderAggregates = aggregates[dataset.CanonicalKey(rows[i].CustomerEmail)]
	}
	return rows
}
