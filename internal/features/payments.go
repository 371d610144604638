package features

import (
	"context"
	"log/slog"

	"fraudcli/internal/dataset"
	"fraudcli/pkg/contracts/domain"
)

// PaymentsAggregator groups the payment-methods table by customer email and
// computes the per-customer payment features.
type PaymentsAggregator struct {
	logger *slog.Logger
}

// NewPaymentsAggregator creates a payment-methods aggregator.
func NewPaymentsAggregator(logger *slog.Logger) *PaymentsAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentsAggregator{logger: logger}
}

// Aggregate computes payment aggregates keyed by canonical customer email.
// The four type indicators form a closed world: method types outside
// card/apple pay/paypal/bitcoin produce no indicator but still count toward
// the distinct-type and distinct-method features. FailureRatio is
// PaymentRegistrationFailures/NumberOfUniquePaymentMethods with 0/0 resolved
// to 0.
func (a *PaymentsAggregator) Aggregate(ctx context.Context, methods []domain.PaymentMethod) map[string]PaymentAggregates {
	type group struct {
		types    map[string]struct{}
		ids      map[string]struct{}
		failures int
		agg      PaymentAggregates
	}

	groups := make(map[string]*group)
	for _, method := range methods {
		key := dataset.CanonicalKey(method.CustomerEmail)
		g, ok := groups[key]
		if !ok {
			g = &group{
				types: make(map[string]struct{}),
				ids:   make(map[string]struct{}),
			}
			groups[key] = g
		}

		switch method.PaymentMethodType {
		case domain.PaymentTypeCard:
			g.agg.HasCard = true
		case domain.PaymentTypeApplePay:
			g.agg.HasApplePay = true
		case domain.PaymentTypePaypal:
			g.agg.HasPaypal = true
		case domain.PaymentTypeBitcoin:
			g.agg.HasBitcoin = true
		}

		g.types[method.PaymentMethodType] = struct{}{}
		g.ids[method.PaymentMethodID] = struct{}{}
		if method.PaymentMethodRegistrationFailure {
			g.failures++
		}
	}

	aggregates := make(map[string]PaymentAggregates, len(groups))
	for email, g := range groups {
		agg := g.agg
		agg.UniquePaymentMethodTypes = len(g.types)
		agg.NumberOfUniquePaymentMethods = len(g.ids)
		agg.PaymentRegistrationFailures = g.failures
		if agg.NumberOfUniquePaymentMethods > 0 {
			agg.FailureRatio = float64(g.failures) / float64(agg.NumberOfUniquePaymentMethods)
		}
		aggregates[email] = agg
	}

	a.logger.InfoContext(ctx, "aggregated payment methods",
		slog.Int("payment_method_count", len(methods)),
		slog.Int("customer_count", len(aggregates)))

	return aggregates
}

// Merge left-joins the aggregates onto the customer rows with zero defaults
// for customers without payment methods.
func (a *PaymentsAggregator) Merge(rows []CustomerRow, aggregates map[string]PaymentAggregates) []CustomerRow {
	for i := range rows {
		rows[i].PaymentAggregates = aggregates[dataset.CanonicalKey(rows[i].CustomerEmail)]
	}
	return rows
}
