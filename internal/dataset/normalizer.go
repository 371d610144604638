package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fraudcli/internal/errors"
	"fraudcli/pkg/contracts/domain"
)

// Batch holds the four relational collections produced from a set of nested
// raw records. Every related row is stamped with the owning customer's
// canonical email, the sole join key across all four tables.
type Batch struct {
	Customers      []domain.CustomerRecord
	Orders         []domain.Order
	PaymentMethods []domain.PaymentMethod
	Transactions   []domain.Transaction

	// Labeled reports whether every input record carried a fraud label.
	// A training batch is fully labeled; a scoring batch carries none.
	Labeled bool
}

// Normalizer flattens nested per-customer records into relational collections.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer. A nil logger falls back to slog.Default.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// CanonicalKey coerces a join-key value to the single representation used on
// both sides of every merge. Keys are normalized here, once, so no later join
// can silently miss on a representation mismatch.
func CanonicalKey(email string) string {
	return strings.TrimSpace(email)
}

// Normalize flattens raw records into a Batch. A record without a customer
// sub-record or with an empty email is a fatal structural error; records are
// never silently skipped. Output sizes are exactly the totals of the nested
// collections plus one customer row per input record.
func (n *Normalizer) Normalize(ctx context.Context, records []domain.RawRecord) (*Batch, error) {
	batch := &Batch{}

	labeledCount := 0
	for i, record := range records {
		if record.Customer == nil {
			return nil, errors.NewParsingError(fmt.Sprintf("record %d has no customer sub-record", i), nil).
				WithContext("record_index", i)
		}

		email := CanonicalKey(record.Customer.CustomerEmail)
		if email == "" {
			return nil, errors.NewParsingError(fmt.Sprintf("record %d has no customer email", i), nil).
				WithContext("record_index", i)
		}

		for _, order := range record.Orders {
			order.CustomerEmail = email
			batch.Orders = append(batch.Orders, order)
		}
		for _, method := range record.PaymentMethods {
			method.CustomerEmail = email
			batch.PaymentMethods = append(batch.PaymentMethods, method)
		}
		for _, txn := range record.Transactions {
			txn.CustomerEmail = email
			batch.Transactions = append(batch.Transactions, txn)
		}

		customer := domain.CustomerRecord{Customer: *record.Customer}
		customer.CustomerEmail = email
		if record.Fraudulent != nil {
			customer.Fraudulent = *record.Fraudulent
			labeledCount++
		}
		batch.Customers = append(batch.Customers, customer)
	}

	// A batch is either fully labeled (training) or fully unlabeled (scoring).
	if labeledCount > 0 && labeledCount < len(records) {
		return nil, errors.NewParsingError(
			fmt.Sprintf("mixed batch: %d of %d records carry a fraud label", labeledCount, len(records)), nil)
	}
	batch.Labeled = labeledCount > 0 && labeledCount == len(records)

	n.logger.InfoContext(ctx, "normalized raw records",
		slog.Int("customer_count", len(batch.Customers)),
		slog.Int("order_count", len(batch.Orders)),
		slog.Int("payment_method_count", len(batch.PaymentMethods)),
		slog.Int("transaction_count", len(batch.Transactions)),
		slog.Bool("labeled", batch.Labeled))

	return batch, nil
}
