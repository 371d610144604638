package features

import (
	"context"
	"log/slog"

	"fraudcli/internal/dataset"
	"fraudcli/pkg/contracts/domain"
)

// TransactionsAggregator groups the transactions table by customer email and
// computes the per-customer transaction features.
type TransactionsAggregator struct {
	logger *slog.Logger
}

// NewTransactionsAggregator creates a transactions aggregator.
func NewTransactionsAggregator(logger *slog.Logger) *TransactionsAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionsAggregator{logger: logger}
}

// Aggregate computes transaction aggregates keyed by canonical customer email.
// FailedTransactionFraction is NumberOfFailedTransactions/NumberOfTransactions
// over the group, which is never empty here; absent customers default to 0
// through Merge.
func (a *TransactionsAggregator) Aggregate(ctx context.Context, txns []domain.Transaction) map[string]TransactionAggregates {
	type group struct {
		count     int
		amountSum float64
		failed    int
	}

	groups := make(map[string]*group)
	for _, txn := range txns {
		key := dataset.CanonicalKey(txn.CustomerEmail)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
		}
		g.count++
		g.amountSum += txn.TransactionAmount
		if txn.TransactionFailed {
			g.failed++
		}
	}

	aggregates := make(map[string]TransactionAggregates, len(groups))
	for email, g := range groups {
		aggregates[email] = TransactionAggregates{
			NumberOfTransactions:       g.count,
			AverageTransactionAmount:   g.amountSum / float64(g.count),
			NumberOfFailedTransactions: g.failed,
			FailedTransactionFraction:  float64(g.failed) / float64(g.count),
		}
	}

	a.logger.InfoContext(ctx, "aggregated transactions",
		slog.Int("transaction_count", len(txns)),
		slog.Int("customer_count", len(aggregates)))

	return aggregates
}

// Merge left-joins the aggregates onto the customer rows with zero defaults
// for customers without transactions.
func (a *TransactionsAggregator) Merge(rows []CustomerRow, aggregates map[string]TransactionAggregates) []CustomerRow {
	for i := range rows {
		rows[i].TransactionAggregates = aggregates[dataset.CanonicalKey(rows[i].CustomerEmail)]
	}
	return rows
}
