package features

import (
	"context"
	"log/slog"

	"fraudcli/pkg/contracts/domain"
)

// BaseBuilder derives customer-level features that depend on no related table
// and projects the raw PII attributes out of the schema.
type BaseBuilder struct {
	logger *slog.Logger
}

// NewBaseBuilder creates a base feature builder. A nil logger falls back to
// slog.Default.
func NewBaseBuilder(logger *slog.Logger) *BaseBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseBuilder{logger: logger}
}

// BuildBase turns normalized customer records into feature rows.
//
// EmailCount is the number of customer rows sharing the row's email, broadcast
// to every such row; after normalization it is normally 1 and values above 1
// signal upstream duplication. IsBillingAddressShared is true iff the row's
// billing address appears on more than one customer row in the whole batch.
// Rows without a billing address are never flagged shared.
func (b *BaseBuilder) BuildBase(ctx context.Context, customers []domain.CustomerRecord) []CustomerRow {
	emailCounts := make(map[string]int, len(customers))
	addressCounts := make(map[string]int, len(customers))
	for _, c := range customers {
		emailCounts[c.CustomerEmail]++
		if c.CustomerBillingAddress != "" {
			addressCounts[c.CustomerBillingAddress]++
		}
	}

	rows := make([]CustomerRow, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, CustomerRow{
			CustomerEmail:          c.CustomerEmail,
			Fraudulent:             c.Fraudulent,
			EmailCount:             emailCounts[c.CustomerEmail],
			IsBillingAddressShared: c.CustomerBillingAddress != "" && addressCounts[c.CustomerBillingAddress] > 1,
		})
	}

	b.logger.InfoContext(ctx, "built customer base features",
		slog.Int("customer_count", len(rows)),
		slog.Int("distinct_emails", len(emailCounts)))

	return rows
}
