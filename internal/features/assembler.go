package features

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fraudcli/internal/dataset"
)

// LabelColumn is the name of the supervised label column. When the input batch
// is labeled it is the sole label column of the assembled matrix; every other
// column is a feature.
const LabelColumn = "fraudulent"

// AssemblerConfig holds configuration options for the Assembler.
type AssemblerConfig struct {
	// Parallel computes the three related-table aggregations concurrently.
	// The merges still run in the fixed stage order, so output is identical
	// to the sequential path.
	Parallel bool
}

// Assembler composes the base builder and the three aggregators in a fixed
// order and emits the final numeric matrix plus the ordered email list.
type Assembler struct {
	logger       *slog.Logger
	parallel     bool
	base         *BaseBuilder
	orders       *OrdersAggregator
	payments     *PaymentsAggregator
	transactions *TransactionsAggregator
}

// NewAssembler creates a feature matrix assembler.
func NewAssembler(logger *slog.Logger, config AssemblerConfig) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		logger:       logger,
		parallel:     config.Parallel,
		base:         NewBaseBuilder(logger),
		orders:       NewOrdersAggregator(logger),
		payments:     NewPaymentsAggregator(logger),
		transactions: NewTransactionsAggregator(logger),
	}
}

// Assemble runs base -> orders -> payments -> transactions over the batch and
// returns the numeric matrix and the customer emails in row order. The email
// column itself is not part of the matrix; the fraudulent column is present
// iff the batch is labeled. Matrix row count always equals the customer row
// count of the batch.
func (a *Assembler) Assemble(ctx context.Context, batch *dataset.Batch) (*Matrix, []string, error) {
	rows := a.base.BuildBase(ctx, batch.Customers)

	orderAggs, paymentAggs, txnAggs, err := a.aggregate(ctx, batch)
	if err != nil {
		return nil, nil, err
	}

	rows = a.orders.Merge(rows, orderAggs)
	rows = a.payments.Merge(rows, paymentAggs)
	rows = a.transactions.Merge(rows, txnAggs)

	matrix, emails, err := a.toMatrix(rows, batch.Labeled)
	if err != nil {
		return nil, nil, err
	}

	a.logger.InfoContext(ctx, "assembled feature matrix",
		slog.Int("rows", matrix.Rows()),
		slog.Int("columns", len(matrix.Columns())),
		slog.Bool("labeled", batch.Labeled))

	return matrix, emails, nil
}

// aggregate computes the three independent aggregate maps, concurrently when
// configured.
func (a *Assembler) aggregate(ctx context.Context, batch *dataset.Batch) (
	map[string]OrderAggregates, map[string]PaymentAggregates, map[string]TransactionAggregates, error) {

	if !a.parallel {
		return a.orders.Aggregate(ctx, batch.Orders),
			a.payments.Aggregate(ctx, batch.PaymentMethods),
			a.transactions.Aggregate(ctx, batch.Transactions),
			nil
	}

	var (
		orderAggs   map[string]OrderAggregates
		paymentAggs map[string]PaymentAggregates
		txnAggs     map[string]TransactionAggregates
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orderAggs = a.orders.Aggregate(gctx, batch.Orders)
		return nil
	})
	g.Go(func() error {
		paymentAggs = a.payments.Aggregate(gctx, batch.PaymentMethods)
		return nil
	})
	g.Go(func() error {
		txnAggs = a.transactions.Aggregate(gctx, batch.Transactions)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return orderAggs, paymentAggs, txnAggs, nil
}

// toMatrix converts the finished rows into the numeric matrix, casting boolean
// features to 0/1 and splitting off the email list.
func (a *Assembler) toMatrix(rows []CustomerRow, labeled bool) (*Matrix, []string, error) {
	n := len(rows)
	emails := make([]string, n)
	for i, row := range rows {
		emails[i] = row.CustomerEmail
	}

	matrix := NewMatrix(n)

	columns := []struct {
		name    string
		include bool
		value   func(CustomerRow) float64
	}{
		{LabelColumn, labeled, func(r CustomerRow) float64 { return boolToFloat(r.Fraudulent) }},
		{"EmailCount", true, func(r CustomerRow) float64 { return float64(r.EmailCount) }},
		{"IsBillingAddressShared", true, func(r CustomerRow) float64 { return boolToFloat(r.IsBillingAddressShared) }},
		{"TotalOrders", true, func(r CustomerRow) float64 { return float64(r.TotalOrders) }},
		{"AverageOrderAmount", true, func(r CustomerRow) float64 { return r.AverageOrderAmount }},
		{"FailedOrders", true, func(r CustomerRow) float64 { return float64(r.FailedOrders) }},
		{"FailedOrderRatio", true, func(r CustomerRow) float64 { return r.FailedOrderRatio }},
		{"UniqueShippingAddresses", true, func(r CustomerRow) float64 { return float64(r.UniqueShippingAddresses) }},
		{"HasCard", true, func(r CustomerRow) float64 { return boolToFloat(r.HasCard) }},
		{"HasApplePay", true, func(r CustomerRow) float64 { return boolToFloat(r.HasApplePay) }},
		{"HasPaypal", true, func(r CustomerRow) float64 { return boolToFloat(r.HasPaypal) }},
		{"HasBitcoin", true, func(r CustomerRow) float64 { return boolToFloat(r.HasBitcoin) }},
		{"UniquePaymentMethodTypes", true, func(r CustomerRow) float64 { return float64(r.UniquePaymentMethodTypes) }},
		{"NumberOfUniquePaymentMethods", true, func(r CustomerRow) float64 { return float64(r.NumberOfUniquePaymentMethods) }},
		{"PaymentRegistrationFailures", true, func(r CustomerRow) float64 { return float64(r.PaymentRegistrationFailures) }},
		{"FailureRatio", true, func(r CustomerRow) float64 { return r.FailureRatio }},
		{"NumberOfTransactions", true, func(r CustomerRow) float64 { return float64(r.NumberOfTransactions) }},
		{"AverageTransactionAmount", true, func(r CustomerRow) float64 { return r.AverageTransactionAmount }},
		{"NumberOfFailedTransactions", true, func(r CustomerRow) float64 { return float64(r.NumberOfFailedTransactions) }},
		{"FailedTransactionFraction", true, func(r CustomerRow) float64 { return r.FailedTransactionFraction }},
	}

	for _, col := range columns {
		if !col.include {
			continue
		}
		values := make([]float64, n)
		for i, row := range rows {
			values[i] = col.value(row)
		}
		if err := matrix.AddColumn(col.name, values); err != nil {
			return nil, nil, err
		}
	}

	return matrix, emails, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
