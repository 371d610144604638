// Package features builds the per-customer feature matrix that feeds the
// fraud classifier. It consolidates the base customer features and the three
// related-table aggregations into one assembly path.
//
// # Architecture
//
// The package is organized into four stages run in a fixed order:
//
// 1. BaseBuilder: customer-level features (email frequency, shared billing address)
// 2. OrdersAggregator: per-customer order counts, means and failure ratio
// 3. PaymentsAggregator: payment-type indicators, distinct counts, failure ratio
// 4. TransactionsAggregator: transaction counts, mean amount, failure fraction
//
// The Assembler composes the stages and emits a fully numeric Matrix plus the
// ordered list of customer emails, positions corresponding 1:1 with rows.
//
// # Join semantics
//
// Every aggregation is grouped by the canonical customer email and merged back
// onto the customer rows as a left join: a customer with no related rows keeps
// its row and receives the documented zero defaults. Ratio features with a
// zero denominator resolve to 0, never NaN or Inf. No missing value reaches
// the final matrix.
package features
